package protocol

import "errors"

var (
	// ErrFrameIncomplete means the transport has not yet delivered a full frame.
	ErrFrameIncomplete = errors.New("frame incomplete")
	// ErrFrameInvalid means the bytes at the head of the input did not parse as a frame.
	ErrFrameInvalid = errors.New("frame invalid")
	// ErrUnknownCommand means a command id has no entry in the parser schema.
	ErrUnknownCommand = errors.New("unknown command id")
	// ErrParserBounds means a parser ran past the end of its frame's payload.
	ErrParserBounds = errors.New("command parser error")
	// ErrEncoderBounds means an encoder call exceeded its declared max size.
	ErrEncoderBounds = errors.New("message encode error")
	// ErrUnknownParamType means a schema entry named a ParamType this build does not recognize.
	ErrUnknownParamType = errors.New("unknown parameter type")
	// ErrArgMismatch means an Encode call's argument list does not match the schema entry's shape.
	ErrArgMismatch = errors.New("argument list does not match schema")
	// ErrTransportFull means the output side could not reserve room for a message; the send is dropped.
	ErrTransportFull = errors.New("output transport full")
	// ErrTimeout is returned by Transport implementations that model a blocking read with a deadline.
	ErrTimeout = errors.New("operation timed out")
)
