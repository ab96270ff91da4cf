// Package schema provides a fluent assembly helper for protocol.Schema,
// standing in for the separate build-time tool the original source
// generates its command tables from. Call sites build a Schema once, at
// wiring time, and hand the immutable result to dispatch.Dispatcher and
// protocol.Link.
package schema

import proto "github.com/oriontec/mculink/protocol"

// Builder accumulates parser and encoder entries by name, assigning each a
// stable numeric id in registration order, then produces an immutable
// protocol.Schema via Build.
type Builder struct {
	parserNames  []string
	parsers      []proto.ParserEntry
	encoderNames []string
	encoders     []proto.EncoderEntry
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Parser registers a command: name is for diagnostics only, the command's
// wire id is its registration index (0-based, matching command_index in the
// original). Returns the assigned id for use by callers that need to embed
// it in documentation or tests.
func (b *Builder) Parser(name string, flags proto.HandlerFlags, handler proto.HandlerFunc, params ...proto.ParamType) byte {
	id := len(b.parsers)
	b.parserNames = append(b.parserNames, name)
	b.parsers = append(b.parsers, proto.ParserEntry{
		Name:       name,
		ParamTypes: params,
		Handler:    handler,
		Flags:      flags,
	})
	return byte(id)
}

// Encoder registers a response/notification message: maxSize is the
// largest encoded payload size Encode may ever produce for this entry,
// after the leading message id byte.
func (b *Builder) Encoder(name string, msgID byte, maxSize int, params ...proto.ParamType) byte {
	id := len(b.encoders)
	b.encoderNames = append(b.encoderNames, name)
	b.encoders = append(b.encoders, proto.EncoderEntry{
		Name:       name,
		MsgID:      msgID,
		ParamTypes: params,
		MaxSize:    maxSize,
	})
	return byte(id)
}

// EncoderByName returns the registered EncoderEntry for name, for call
// sites that would rather look an entry up by name than carry around the
// numeric id Encoder returned. It is O(n) and meant for wiring time, not
// the hot path.
func (b *Builder) EncoderByName(name string) (proto.EncoderEntry, bool) {
	for i, n := range b.encoderNames {
		if n == name {
			return b.encoders[i], true
		}
	}
	return proto.EncoderEntry{}, false
}

// Build validates the accumulated tables and returns the immutable Schema,
// exactly as NewSchema would from hand-written literals.
func (b *Builder) Build() (*proto.Schema, error) {
	return proto.NewSchema(b.parsers, b.encoders)
}
