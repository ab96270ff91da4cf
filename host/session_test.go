package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriontec/mculink/device"
	"github.com/oriontec/mculink/dispatch"
	proto "github.com/oriontec/mculink/protocol"
	"github.com/oriontec/mculink/transport"
)

// pump moves whatever one side has queued to send into the other side's
// input, standing in for the physical wire between two independent FIFOs.
func pump(from, to *transport.FIFO) {
	buf := make([]byte, from.Pending())
	if len(buf) == 0 {
		return
	}
	from.Read(buf)
	to.Write(buf)
}

func TestSessionEchoRoundTripsThroughDispatcher(t *testing.T) {
	deviceTr := transport.NewFIFO(256, 256)
	hostTr := transport.NewFIFO(256, 256)

	deviceLink := proto.NewLink()
	dev, err := device.New(deviceLink, "bench-mcu")
	require.NoError(t, err)
	dev.Bind(deviceTr)
	disp := dispatch.New(deviceLink, dev.Schema)

	sess := NewSession(hostTr)
	echoCmd := device.ClientEncoders()[device.CmdEcho]

	require.NoError(t, sess.Send(echoCmd, proto.Buf([]byte("hello"))))
	pump(hostTr, deviceTr)
	disp.Poll(deviceTr)
	pump(deviceTr, hostTr)

	replies := sess.ReadReplies()
	require.Len(t, replies, 1)
	assert.Equal(t, device.RspEcho, replies[0][0])
	bufLen := int(replies[0][1])
	assert.Equal(t, "hello", string(replies[0][2:2+bufLen]))
}

func TestSessionSecondCommandAdvancesSequence(t *testing.T) {
	deviceTr := transport.NewFIFO(256, 256)
	hostTr := transport.NewFIFO(256, 256)

	deviceLink := proto.NewLink()
	dev, err := device.New(deviceLink, "bench-mcu")
	require.NoError(t, err)
	dev.Bind(deviceTr)
	disp := dispatch.New(deviceLink, dev.Schema)

	sess := NewSession(hostTr)
	uptimeCmd := device.ClientEncoders()[device.CmdGetUptime]

	for i := 0; i < 2; i++ {
		require.NoError(t, sess.Send(uptimeCmd))
		pump(hostTr, deviceTr)
		disp.Poll(deviceTr)
		pump(deviceTr, hostTr)

		replies := sess.ReadReplies()
		require.Len(t, replies, 1)
		assert.Equal(t, device.RspUptime, replies[0][0])
	}
}
