// Package dispatch provides the polled entrypoint that turns validated
// frames from protocol.Link into handler invocations against a
// protocol.Schema, the Go analogue of the firmware's command_dispatch loop.
package dispatch

import (
	"github.com/golang/glog"

	proto "github.com/oriontec/mculink/protocol"
)

// Dispatcher drains one complete frame per Poll call, walks its payload as
// a sequence of id-prefixed commands, and invokes each command's handler in
// on-wire order.
type Dispatcher struct {
	link     *proto.Link
	schema   *proto.Schema
	shutdown *proto.ShutdownState
}

// New returns a Dispatcher wired to link and schema, with its own
// ShutdownState. The caller retains link and schema to also drive
// EncodeAndSend and handler registration respectively.
func New(link *proto.Link, schema *proto.Schema) *Dispatcher {
	return &Dispatcher{link: link, schema: schema, shutdown: &proto.ShutdownState{}}
}

// Shutdown returns the dispatcher's shutdown latch, for handlers that need
// to query or clear it (e.g. a "clear_shutdown" command flagged
// FlagInShutdown).
func (d *Dispatcher) Shutdown() *proto.ShutdownState { return d.shutdown }

// Poll processes at most one frame: it asks link for the next complete,
// validated frame, dispatches every command packed into its payload, and
// pops the frame from tr. On no frame being ready it returns immediately
// having let link make whatever partial progress (resync, swallow a stray
// sync byte, NAK) TryReadFrame already makes on tr's behalf.
func (d *Dispatcher) Poll(tr proto.Transport) {
	frame, ok := d.link.TryReadFrame(tr)
	if !ok {
		return
	}

	p := 0
	for p < len(frame.Payload) {
		cmdID := frame.Payload[p]
		p++

		entry, found := d.schema.ParserFor(cmdID)
		if !found {
			glog.Errorf("dispatch: unknown command id %d", cmdID)
			d.shutdown.Shutdown(proto.ReasonInvalidCommand)
			break
		}

		args, consumed, skip, err := proto.Parse(frame.Payload[p:], entry, d.shutdown)
		if err != nil {
			glog.Errorf("dispatch: %q: %v", entry.Name, err)
			break
		}
		if skip {
			reason := uint16(d.shutdown.Reason())
			if sendErr := d.link.EncodeAndSend(tr, proto.DefaultROM, proto.ShutdownEncoder, proto.U16(reason)); sendErr != nil {
				glog.Errorf("dispatch: sending is_shutdown reply: %v", sendErr)
			}
			break
		}
		p += consumed

		entry.Handler(args)
	}

	msglen := proto.HeaderSize + len(frame.Payload) + proto.TrailerSize
	tr.InputPop(msglen)
}
