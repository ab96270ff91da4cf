package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proto "github.com/oriontec/mculink/protocol"
	"github.com/oriontec/mculink/transport"
)

// buildFrame assembles one wire frame around payload, stamped with seq.
// Dispatcher tests live outside package protocol and so cannot reach
// finishFrame directly; this reproduces only its exported-constant
// arithmetic, not any logic under test.
func buildFrame(seq byte, payload []byte) []byte {
	buf := make([]byte, proto.HeaderSize+len(payload)+proto.TrailerSize)
	buf[0] = byte(len(buf))
	buf[1] = seq
	copy(buf[proto.HeaderSize:], payload)
	crc := proto.CRC16(buf[:len(buf)-3])
	buf[len(buf)-3] = byte(crc >> 8)
	buf[len(buf)-2] = byte(crc)
	buf[len(buf)-1] = proto.SyncByte
	return buf
}

func TestDispatcherInvokesHandlerWithParsedArgs(t *testing.T) {
	var got []proto.Arg
	schema, err := proto.NewSchema([]proto.ParserEntry{
		{Name: "set", ParamTypes: []proto.ParamType{proto.ParamUint32}, Handler: func(args []proto.Arg) {
			got = args
		}},
	}, nil)
	require.NoError(t, err)

	link := proto.NewLink()
	d := New(link, schema)
	tr := transport.NewFIFO(64, 64)

	payload := append([]byte{0}, proto.EncodeVLQ(nil, 99)...)
	tr.Write(buildFrame(link.NextSeq(), payload))

	d.Poll(tr)

	require.Len(t, got, 1)
	assert.EqualValues(t, 99, got[0].AsI32())
	assert.Zero(t, len(tr.InputPeek()))
}

func TestDispatcherRunsTwoCommandsInOneFrameInOrder(t *testing.T) {
	var order []string
	schema, err := proto.NewSchema([]proto.ParserEntry{
		{Name: "a", Handler: func(args []proto.Arg) { order = append(order, "a") }},
		{Name: "b", Handler: func(args []proto.Arg) { order = append(order, "b") }},
	}, nil)
	require.NoError(t, err)

	link := proto.NewLink()
	d := New(link, schema)
	tr := transport.NewFIFO(64, 64)
	tr.Write(buildFrame(link.NextSeq(), []byte{0, 1}))

	d.Poll(tr)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestDispatcherUnknownCommandShutsDownAndStops(t *testing.T) {
	var called bool
	schema, err := proto.NewSchema([]proto.ParserEntry{
		{Name: "a", Handler: func(args []proto.Arg) { called = true }},
	}, nil)
	require.NoError(t, err)

	link := proto.NewLink()
	d := New(link, schema)
	tr := transport.NewFIFO(64, 64)
	tr.Write(buildFrame(link.NextSeq(), []byte{5}))

	d.Poll(tr)
	assert.False(t, called)
	assert.True(t, d.Shutdown().IsShutdown())
	assert.Equal(t, proto.ReasonInvalidCommand, d.Shutdown().Reason())
}

func TestDispatcherPollWithNoFrameIsANoop(t *testing.T) {
	schema, err := proto.NewSchema(nil, nil)
	require.NoError(t, err)
	d := New(proto.NewLink(), schema)
	tr := transport.NewFIFO(64, 64)

	d.Poll(tr) // must not panic on an empty input
	assert.False(t, d.Shutdown().IsShutdown())
}

func TestDispatcherSkippedShutdownGuardedCommandStopsFrame(t *testing.T) {
	var called bool
	schema, err := proto.NewSchema([]proto.ParserEntry{
		{Name: "guarded", ParamTypes: []proto.ParamType{proto.ParamByte}, Handler: func(args []proto.Arg) { called = true }},
	}, nil)
	require.NoError(t, err)

	link := proto.NewLink()
	d := New(link, schema)
	d.Shutdown().Shutdown(proto.ReasonInvalidCommand)
	tr := transport.NewFIFO(64, 64)
	tr.Write(buildFrame(link.NextSeq(), []byte{0, 7}))

	d.Poll(tr)
	assert.False(t, called)

	out := make([]byte, tr.Pending())
	tr.Read(out)

	// The frame's own ACK (empty payload, sent by TryReadFrame on receipt)
	// precedes the is_shutdown reply in the output stream.
	_, ackPayload, ackConsumed, ok := proto.DecodeFrame(out)
	require.True(t, ok)
	assert.Empty(t, ackPayload)

	_, payload, _, ok := proto.DecodeFrame(out[ackConsumed:])
	require.True(t, ok)
	require.Len(t, payload, 2)
	assert.Equal(t, proto.ShutdownEncoder.MsgID, payload[0])
	v, _, err := proto.DecodeVLQ(payload[1:])
	require.NoError(t, err)
	assert.EqualValues(t, proto.ReasonInvalidCommand, v)
}
