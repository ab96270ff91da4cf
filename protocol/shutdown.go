package protocol

import "sync"

// ShutdownReason is a small static-string-id, mirroring the firmware's
// convention of identifying shutdown causes by an index into a fixed table
// rather than by an allocated string.
type ShutdownReason uint16

const (
	ReasonNone ShutdownReason = iota
	ReasonInvalidCommand
	ReasonParserError
	ReasonEncoderError
)

var reasonNames = map[ShutdownReason]string{
	ReasonNone:           "none",
	ReasonInvalidCommand: "Invalid command",
	ReasonParserError:    "Command parser error",
	ReasonEncoderError:   "Message encode error",
}

// String returns the static reason text, including text added via
// RegisterReason, or "unknown shutdown reason" for an id with no entry.
func (r ShutdownReason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown shutdown reason"
}

// RegisterReason adds a caller-defined reason to the static table, for
// handler code that wants its own shutdown causes to print meaningfully.
// It is meant to be called during wiring, not from the hot path.
func RegisterReason(r ShutdownReason, text string) {
	reasonNames[r] = text
}

// Shutdown is the boolean-state-plus-reason-code collaborator the dispatcher
// and frame layer query and trigger. It stands in for the scheduler's
// sched_is_shutdown/shutdown_reason/shutdown trio, which this protocol
// treats as external.
type Shutdown interface {
	IsShutdown() bool
	Reason() ShutdownReason
	Shutdown(reason ShutdownReason)
}

// ShutdownState is a concrete, concurrency-safe Shutdown implementation.
// Unlike the embedded original's shutdown(), which never returns,
// ShutdownState.Shutdown only flips the latch: callers (the dispatcher)
// are expected to stop processing the current frame and return, not to
// assume the process has ended. This is the one place this port cannot be
// literal about the original's control flow — see DESIGN.md.
type ShutdownState struct {
	mu     sync.Mutex
	down   bool
	reason ShutdownReason
}

func (s *ShutdownState) IsShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.down
}

func (s *ShutdownState) Reason() ShutdownReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

func (s *ShutdownState) Shutdown(reason ShutdownReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.down {
		s.down = true
		s.reason = reason
	}
}

// Reset clears the latch. Not part of the original's contract — it exists
// so tests can drive a Dispatcher through a fatal shutdown and then resume.
func (s *ShutdownState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = false
	s.reason = ReasonNone
}

// ShutdownEncoder is the reserved reply a dispatcher sends in place of
// running a shutdown-guarded command's handler while the device is down.
// Its message id is not addressable from a schema's own command space —
// schemas are built from a caller-supplied table indexed by command id, and
// a real build would simply never assign 0xFF to one.
var ShutdownEncoder = EncoderEntry{
	Name:       "is_shutdown",
	MsgID:      0xFF,
	ParamTypes: []ParamType{ParamUint16},
	MaxSize:    3,
}
