package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proto "github.com/oriontec/mculink/protocol"
)

func TestBuilderAssignsSequentialIDs(t *testing.T) {
	b := New()
	idA := b.Parser("a", 0, func([]proto.Arg) {})
	idB := b.Parser("b", 0, func([]proto.Arg) {})
	assert.EqualValues(t, 0, idA)
	assert.EqualValues(t, 1, idB)
}

func TestBuilderBuildProducesWorkingSchema(t *testing.T) {
	b := New()
	var seen uint32
	id := b.Parser("set", 0, func(args []proto.Arg) { seen = args[0].AsU32() }, proto.ParamUint32)

	s, err := b.Build()
	require.NoError(t, err)

	entry, ok := s.ParserFor(id)
	require.True(t, ok)
	assert.Equal(t, "set", entry.Name)

	args, _, _, err := proto.Parse(proto.EncodeVLQ(nil, 123), entry, nil)
	require.NoError(t, err)
	entry.Handler(args)
	assert.EqualValues(t, 123, seen)
}

func TestBuilderEncoderByName(t *testing.T) {
	b := New()
	b.Encoder("status", 9, 4, proto.ParamUint32)

	entry, ok := b.EncoderByName("status")
	require.True(t, ok)
	assert.Equal(t, byte(9), entry.MsgID)

	_, ok = b.EncoderByName("missing")
	assert.False(t, ok)
}

func TestBuilderBuildRejectsUnknownParamType(t *testing.T) {
	b := New()
	b.Parser("bad", 0, func([]proto.Arg) {}, proto.ParamType(200))
	_, err := b.Build()
	assert.Error(t, err)
}
