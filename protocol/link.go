package protocol

// Link holds the two pieces of mutable core state described by the wire
// protocol: the rolling sequence number expected from the host, and the
// resync/dedupe-NAK latch. One Link corresponds to one serial link; it
// must only ever be driven from a single goroutine (see the concurrency
// notes in transport.go).
type Link struct {
	nextSeq  byte
	needSync bool
	needReal bool // NEED_VALID: suppress duplicate NAKs until one valid frame

	lastAction LinkAction
}

// LinkAction records what the most recent TryReadFrame call actually did,
// so a caller can distinguish "no frame yet" from "frame dropped" without
// inferring it from a nil return alone (see DESIGN.md's resolution of the
// original's command_get_message NULL ambiguity).
type LinkAction int

const (
	ActionNone LinkAction = iota
	ActionFrame
	ActionNak
	ActionResync
)

// NewLink returns a Link with next_sequence initialized to sequence 0 with
// the destination tag set, matching the original's static initializer.
func NewLink() *Link {
	return &Link{nextSeq: DestTag}
}

// NextSeq returns the sequence byte the link currently expects from the
// host (or will stamp on its next ACK).
func (l *Link) NextSeq() byte { return l.nextSeq }

// LastAction reports what the previous TryReadFrame call did.
func (l *Link) LastAction() LinkAction { return l.lastAction }

// SetExpected overrides the sequence the link will stamp on its next
// outgoing frame. A host session calls this after decoding a device's
// ACK/NAK (via DecodeFrame) to track what the device now expects, without
// running the device's own receive-side ACK/NAK state machine itself.
func (l *Link) SetExpected(seq byte) {
	l.nextSeq = seq
}

// TryReadFrame inspects tr's input and, per call, either returns one
// complete validated frame or returns ok=false having made whatever
// progress is possible (swallowing a sync byte, resyncing, NAKing, or
// simply waiting for more bytes). A returned frame is left in tr's input,
// since its Payload aliases those bytes; the caller pops it once it has
// processed the payload. It never blocks.
func (l *Link) TryReadFrame(tr Transport) (frame Frame, ok bool) {
	buf := tr.InputPeek()

	// A NEED_SYNC latch only drives resync once bytes actually arrive; an
	// empty buffer falls through to the ordinary "not enough bytes yet"
	// wait below instead of resyncing against nothing.
	if l.needSync && len(buf) > 0 {
		return l.resync(tr)
	}

	status, msglen := inspectFrame(buf)

	switch status {
	case statusNeedMore:
		l.lastAction = ActionNone
		return Frame{}, false

	case statusInvalid:
		if len(buf) > 0 && buf[0] == SyncByte {
			// Swallow a leading sync byte quietly; no NAK storm on a
			// stream of idle syncs.
			tr.InputPop(1)
			l.lastAction = ActionNone
			return Frame{}, false
		}
		l.needSync = true
		return l.resync(tr)

	default: // statusValid
		seq := buf[seqOffset]
		l.needReal = false
		if seq == l.nextSeq {
			payload := buf[HeaderSize : msglen-TrailerSize]
			l.nextSeq = DestTag | ((seq + 1) & SeqMask)
			l.SendAck(tr)
			l.lastAction = ActionFrame
			return Frame{Seq: seq, Payload: payload}, true
		}
		tr.InputPop(msglen)
		l.SendNak(tr)
		l.lastAction = ActionNak
		return Frame{}, false
	}
}

// resync scans for the next SYNC byte, consumes through it (or discards
// everything if none is found), and NAKs at most once per contiguous run
// of bad bytes via the NEED_VALID latch.
func (l *Link) resync(tr Transport) (Frame, bool) {
	buf := tr.InputPeek()
	idx := -1
	for i, b := range buf {
		if b == SyncByte {
			idx = i
			break
		}
	}
	if idx >= 0 {
		l.needSync = false
		tr.InputPop(idx + 1)
	} else {
		tr.InputPop(len(buf))
	}

	l.lastAction = ActionResync
	if l.needReal {
		return Frame{}, false
	}
	l.needReal = true
	l.SendNak(tr)
	return Frame{}, false
}

// sendEmpty emits an empty-payload frame stamped with the link's current
// next_sequence. Whether that reads as an ACK or a NAK to the host is
// entirely a function of whether next_sequence just advanced.
func (l *Link) sendEmpty(tr Transport) {
	buf, ok := tr.OutputReserve(MinFrameSize)
	if !ok {
		return
	}
	finishFrame(buf[:MinFrameSize], l.nextSeq, 0)
	tr.OutputCommit(MinFrameSize)
}

// SendAck sends an empty frame stamped with next_sequence, acknowledging
// everything received up to and including the frame that last advanced it.
// It is sendEmpty under a name that matches what the call site means.
func (l *Link) SendAck(tr Transport) {
	l.sendEmpty(tr)
}

// SendNak sends an empty frame stamped with next_sequence without having
// advanced it, telling the host to retransmit starting at that sequence.
func (l *Link) SendNak(tr Transport) {
	l.sendEmpty(tr)
}

// EncodeAndSend encodes one message per entry/args via Encode and sends it
// as a frame's sole command, stamped with the link's current sequence. If
// the transport cannot reserve entry.MaxSize+MinFrameSize bytes, nothing is
// sent and ErrTransportFull is returned; the message is not queued for a
// later attempt.
func (l *Link) EncodeAndSend(tr Transport, rom ROMReader, entry EncoderEntry, args ...Arg) error {
	need := entry.MaxSize + MinFrameSize
	buf, ok := tr.OutputReserve(need)
	if !ok {
		return ErrTransportFull
	}

	n, err := Encode(buf[HeaderSize:], rom, entry, args...)
	if err != nil {
		return err
	}

	msglen := HeaderSize + n + TrailerSize
	finishFrame(buf[:msglen], l.nextSeq, n)
	tr.OutputCommit(msglen)
	return nil
}
