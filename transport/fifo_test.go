package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proto "github.com/oriontec/mculink/protocol"
)

func TestFIFOImplementsTransport(t *testing.T) {
	var _ proto.Transport = NewFIFO(64, 64)
}

func TestFIFOWriteThenInputPeekAndPop(t *testing.T) {
	f := NewFIFO(16, 16)
	n := f.Write([]byte{1, 2, 3})
	assert.Equal(t, 3, n)

	assert.Equal(t, []byte{1, 2, 3}, f.InputPeek())
	f.InputPop(1)
	assert.Equal(t, []byte{2, 3}, f.InputPeek())
}

func TestFIFOInputPeekWrapsAround(t *testing.T) {
	f := NewFIFO(4, 4)
	f.Write([]byte{1, 2, 3})
	f.InputPop(2) // head now at index 2, tail at index 3
	f.Write([]byte{4, 5})
	// Backing array: [?, ?, 3, 4] with wraparound placing 5 at index 0.
	assert.Equal(t, []byte{3, 4, 5}, f.InputPeek())
}

func TestFIFOWriteDropsBytesPastCapacity(t *testing.T) {
	f := NewFIFO(4, 4)
	n := f.Write([]byte{1, 2, 3, 4, 5, 6})
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, f.InputPeek())
}

func TestFIFOOutputReserveCommitThenRead(t *testing.T) {
	f := NewFIFO(16, 16)
	buf, ok := f.OutputReserve(3)
	require.True(t, ok)
	copy(buf, []byte{9, 8, 7})
	f.OutputCommit(3)

	assert.Equal(t, 3, f.Pending())
	out := make([]byte, 3)
	n := f.Read(out)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{9, 8, 7}, out)
	assert.Equal(t, 0, f.Pending())
}

func TestFIFOOutputReserveFailsWhenFull(t *testing.T) {
	f := NewFIFO(16, 4)
	buf, ok := f.OutputReserve(4)
	require.True(t, ok)
	copy(buf, []byte{1, 2, 3, 4})
	f.OutputCommit(4)

	_, ok = f.OutputReserve(1)
	assert.False(t, ok)
}

func TestFIFOOutputCommitLessThanReserved(t *testing.T) {
	f := NewFIFO(16, 16)
	buf, ok := f.OutputReserve(8)
	require.True(t, ok)
	copy(buf, []byte{1, 2, 3})
	f.OutputCommit(3)
	assert.Equal(t, 3, f.Pending())
}

func TestFIFOCarriesALinkFrameAcrossTheWire(t *testing.T) {
	senderFIFO := NewFIFO(64, 64)
	sender := proto.NewLink()
	entry := proto.EncoderEntry{MsgID: 5, ParamTypes: []proto.ParamType{proto.ParamUint32}, MaxSize: 8}
	require.NoError(t, sender.EncodeAndSend(senderFIFO, proto.DefaultROM, entry, proto.U32(7)))

	wire := make([]byte, senderFIFO.Pending())
	senderFIFO.Read(wire)

	receiverFIFO := NewFIFO(64, 64)
	receiverFIFO.Write(wire)
	receiver := proto.NewLink()
	frame, ok := receiver.TryReadFrame(receiverFIFO)
	require.True(t, ok)
	assert.Equal(t, byte(5), frame.Payload[0])

	args, _, skip, err := proto.Parse(frame.Payload[1:], proto.ParserEntry{ParamTypes: []proto.ParamType{proto.ParamUint32}}, nil)
	require.NoError(t, err)
	assert.False(t, skip)
	assert.EqualValues(t, 7, args[0].AsI32())
}
