// Package device bundles a small set of example command handlers — echo,
// uptime, a settable toggle, and identification — registered into a
// schema.Builder. It exists to give the core something to dispatch to in
// tests and in the bundled host/device demo; none of it is part of the
// wire protocol itself.
package device

import (
	"time"

	proto "github.com/oriontec/mculink/protocol"
	"github.com/oriontec/mculink/schema"
)

// Command ids, fixed at registration time below. Exported so a host-side
// client (cmd/mculinkctl) can address them without re-deriving the
// registration order.
const (
	CmdEcho byte = iota
	CmdGetUptime
	CmdSetToggle
	CmdGetIdentifyInfo
)

// Response message ids, mirroring the command ids they answer.
const (
	RspEcho byte = iota
	RspUptime
	RspToggleAck
	RspIdentifyInfo
)

// Device holds the mutable state the demo handlers read and write, plus
// the Link they reply through. One Device drives exactly one Link/Transport
// pair, matching the core's single-task assumption.
type Device struct {
	link     *proto.Link
	tr       proto.Transport
	started  time.Time
	toggleOn bool
	identity string

	echoRsp     proto.EncoderEntry
	uptimeRsp   proto.EncoderEntry
	toggleRsp   proto.EncoderEntry
	identifyRsp proto.EncoderEntry

	Schema  *proto.Schema
	Builder *schema.Builder
}

// New builds a Device with its demo handlers registered into a fresh
// schema.Builder and returns it with Schema already populated. identity is
// the string CmdGetIdentifyInfo reports back (standing in for the
// original's compiled-in identify data block).
func New(link *proto.Link, identity string) (*Device, error) {
	d := &Device{
		link:     link,
		started:  time.Now(),
		identity: identity,
		Builder:  schema.New(),
	}

	d.Builder.Encoder("echo_response", RspEcho, proto.MaxPayloadSize, proto.ParamBuffer)
	d.Builder.Encoder("uptime_response", RspUptime, 5, proto.ParamUint32)
	d.Builder.Encoder("toggle_ack", RspToggleAck, 2, proto.ParamByte)
	d.Builder.Encoder("identify_response", RspIdentifyInfo, proto.MaxPayloadSize, proto.ParamString)
	d.echoRsp, _ = d.Builder.EncoderByName("echo_response")
	d.uptimeRsp, _ = d.Builder.EncoderByName("uptime_response")
	d.toggleRsp, _ = d.Builder.EncoderByName("toggle_ack")
	d.identifyRsp, _ = d.Builder.EncoderByName("identify_response")

	d.Builder.Parser("echo", 0, d.handleEcho, proto.ParamBuffer)
	d.Builder.Parser("get_uptime", 0, d.handleGetUptime)
	d.Builder.Parser("set_toggle", 0, d.handleSetToggle, proto.ParamByte)
	d.Builder.Parser("get_identify_info", proto.FlagInShutdown, d.handleGetIdentifyInfo)

	s, err := d.Builder.Build()
	if err != nil {
		return nil, err
	}
	d.Schema = s
	return d, nil
}

// Bind sets the transport the device's handlers send their replies through.
// Poll-driving code must call Bind with the same Transport it passes to
// dispatch.Dispatcher.Poll.
func (d *Device) Bind(tr proto.Transport) { d.tr = tr }

// handleEcho replies with the bytes it was sent. args[0] is the buffer's
// decoded length (see Parse's buffer expansion); args[1] is the bytes.
func (d *Device) handleEcho(args []proto.Arg) {
	_ = d.link.EncodeAndSend(d.tr, proto.DefaultROM, d.echoRsp, proto.Buf(args[1].Buf))
}

func (d *Device) handleGetUptime(args []proto.Arg) {
	seconds := uint32(time.Since(d.started) / time.Second)
	_ = d.link.EncodeAndSend(d.tr, proto.DefaultROM, d.uptimeRsp, proto.U32(seconds))
}

func (d *Device) handleSetToggle(args []proto.Arg) {
	d.toggleOn = args[0].AsI32() != 0
	var state byte
	if d.toggleOn {
		state = 1
	}
	_ = d.link.EncodeAndSend(d.tr, proto.DefaultROM, d.toggleRsp, proto.Byte(state))
}

func (d *Device) handleGetIdentifyInfo(args []proto.Arg) {
	_ = d.link.EncodeAndSend(d.tr, proto.DefaultROM, d.identifyRsp, proto.Str(d.identity))
}

// ToggleState reports the current toggle value, for tests and the CLI's
// local echo of state it already knows without a round trip.
func (d *Device) ToggleState() bool { return d.toggleOn }

// ClientEncoders returns, keyed by command id, the EncoderEntry a host
// uses to build each demo command's wire payload — the host-side half of
// the same schema whose parser half New registers on the device. A real
// deployment would generate this table at build time from one shared
// schema description instead of hand-mirroring it like this.
func ClientEncoders() map[byte]proto.EncoderEntry {
	return map[byte]proto.EncoderEntry{
		CmdEcho: {
			Name: "echo", MsgID: CmdEcho,
			ParamTypes: []proto.ParamType{proto.ParamBuffer}, MaxSize: proto.MaxPayloadSize,
		},
		CmdGetUptime: {
			Name: "get_uptime", MsgID: CmdGetUptime, MaxSize: proto.MaxPayloadSize,
		},
		CmdSetToggle: {
			Name: "set_toggle", MsgID: CmdSetToggle,
			ParamTypes: []proto.ParamType{proto.ParamByte}, MaxSize: proto.MaxPayloadSize,
		},
		CmdGetIdentifyInfo: {
			Name: "get_identify_info", MsgID: CmdGetIdentifyInfo, MaxSize: proto.MaxPayloadSize,
		},
	}
}
