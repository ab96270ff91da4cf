// Package host is the counterpart to package device: it plays the host
// side of one wire link — the side that originates commands and watches
// for ACK/NAK/replies — without reimplementing the device's receive-side
// sequence gate. That state machine belongs to the device alone; a host
// only needs to stamp outgoing frames with what the device currently
// expects and decode whatever comes back.
package host

import (
	proto "github.com/oriontec/mculink/protocol"
)

// Session tracks one host-to-device conversation over a Transport. It is
// not safe for concurrent use; one goroutine should own a Session the same
// way one task owns a device's Link.
type Session struct {
	link *proto.Link
	tr   proto.Transport
}

// NewSession returns a Session ready to talk to a device across tr. Both
// sides start a fresh link with next_sequence at destination-tag-0, per
// the wire format's static initializer.
func NewSession(tr proto.Transport) *Session {
	return &Session{link: proto.NewLink(), tr: tr}
}

// Send encodes one command as a frame's sole payload and writes it to the
// transport, stamped with whatever sequence the device is currently
// expected to be waiting for. It does not wait for an ACK; call
// ReadReplies to drain whatever the device has sent back so far.
func (s *Session) Send(entry proto.EncoderEntry, args ...proto.Arg) error {
	return s.link.EncodeAndSend(s.tr, proto.DefaultROM, entry, args...)
}

// ReadReplies decodes every complete frame currently sitting in the
// transport's input, in arrival order. Empty-payload frames are ACK/NAK
// only: ReadReplies uses their sequence byte to update what it will stamp
// on the next Send, then discards them. Frames carrying a payload are
// returned with their payload, copied out so they stay valid after their
// frame is popped.
func (s *Session) ReadReplies() [][]byte {
	var replies [][]byte
	for {
		buf := s.tr.InputPeek()
		seq, payload, consumed, ok := proto.DecodeFrame(buf)
		if !ok {
			return replies
		}
		s.tr.InputPop(consumed)
		s.link.SetExpected(seq)
		if len(payload) > 0 {
			replies = append(replies, append([]byte(nil), payload...))
		}
	}
}
