package protocol

import "fmt"

// ParamType enumerates the argument types a schema entry can name. It
// mirrors the firmware's PT_* enum.
type ParamType uint8

const (
	ParamUint32 ParamType = iota
	ParamInt32
	ParamUint16
	ParamInt16
	ParamByte
	ParamString        // encode-only
	ParamBuffer        // parse and encode
	ParamProgmemBuffer // encode-only, read-only-memory source
)

// HandlerFlags are schema-entry flags; the only one this protocol defines is
// FlagInShutdown, mirroring HF_IN_SHUTDOWN.
type HandlerFlags uint8

const (
	// FlagInShutdown marks a parser as safe to run while the device is in
	// shutdown state (e.g. a "clear shutdown" or diagnostic command).
	FlagInShutdown HandlerFlags = 1 << 0
)

// HandlerFunc is invoked by the dispatcher with a command's parsed
// arguments, in schema order.
type HandlerFunc func(args []Arg)

// ParserEntry is one row of the read-only parser table, addressed by
// command id (array index). The zero value (nil ParamTypes, nil Handler) is
// treated as "no such command" by the dispatcher, mirroring a NULL pointer
// in command_index.
type ParserEntry struct {
	Name       string
	ParamTypes []ParamType
	Handler    HandlerFunc
	Flags      HandlerFlags

	// NumArgs is the decoded-argument-vector size: len(ParamTypes) plus one
	// extra slot per ParamBuffer entry (length, then bytes), matching the
	// original's "num_args >= num_params" invariant. Computed by NewSchema.
	NumArgs int
}

func (p ParserEntry) empty() bool { return p.ParamTypes == nil && p.Handler == nil }

// EncoderEntry is one row of the read-only encoder table, addressed by a
// caller-chosen encoder id (also just an array index here).
type EncoderEntry struct {
	Name       string
	MsgID      byte
	ParamTypes []ParamType
	MaxSize    int
}

// Schema bundles the two read-only tables the dispatcher and command codec
// consume. Build one with NewSchema; the result must never be mutated after
// construction — the core assumes it is as immutable as a flash-resident C
// array.
type Schema struct {
	Parsers  []ParserEntry
	Encoders []EncoderEntry
}

// NewSchema validates and returns a Schema. Validation happens once, here,
// at startup, so that a malformed schema (unknown ParamType, a Handler-less
// non-empty entry) fails loudly during wiring instead of producing a
// mysterious shutdown mid-dispatch.
func NewSchema(parsers []ParserEntry, encoders []EncoderEntry) (*Schema, error) {
	out := make([]ParserEntry, len(parsers))
	for i, p := range parsers {
		if p.empty() {
			out[i] = p
			continue
		}
		if p.Handler == nil {
			return nil, fmt.Errorf("protocol: schema entry %q (cmd %d): nil handler", p.Name, i)
		}
		n := 0
		for _, t := range p.ParamTypes {
			switch t {
			case ParamUint32, ParamInt32, ParamUint16, ParamInt16, ParamByte:
				n++
			case ParamBuffer:
				n += 2
			default:
				return nil, fmt.Errorf("protocol: schema entry %q (cmd %d): %w: %d", p.Name, i, ErrUnknownParamType, t)
			}
		}
		p.NumArgs = n
		out[i] = p
	}

	outEnc := make([]EncoderEntry, len(encoders))
	for i, e := range encoders {
		for _, t := range e.ParamTypes {
			switch t {
			case ParamUint32, ParamInt32, ParamUint16, ParamInt16, ParamByte,
				ParamString, ParamBuffer, ParamProgmemBuffer:
			default:
				return nil, fmt.Errorf("protocol: encoder entry %q (id %d): %w: %d", e.Name, i, ErrUnknownParamType, t)
			}
		}
		outEnc[i] = e
	}

	return &Schema{Parsers: out, Encoders: outEnc}, nil
}

// ParserFor returns the parser entry for cmdID, or ok=false if cmdID is out
// of range or maps to an empty (unpopulated) entry — the Go equivalent of
// command_get_handler's NULL check.
func (s *Schema) ParserFor(cmdID byte) (ParserEntry, bool) {
	if int(cmdID) >= len(s.Parsers) {
		return ParserEntry{}, false
	}
	p := s.Parsers[cmdID]
	if p.empty() {
		return ParserEntry{}, false
	}
	return p, true
}
