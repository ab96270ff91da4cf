package protocol

// ArgKind tags the dynamic payload carried by an Arg.
type ArgKind uint8

const (
	ArgInt ArgKind = iota
	ArgBuf
)

// Arg is a single decoded or to-be-encoded command argument. It replaces the
// C implementation's flat uint32_t argument vector (where a buffer argument
// expands to two consecutive slots: length, then pointer) with a small
// tagged union, and replaces the variadic "..." encode call with a typed
// builder per the "Variadic encode" design note: callers build an Arg slice
// with the constructors below instead of passing bare interface{} values.
type Arg struct {
	Kind ArgKind
	I32  int32
	// Buf aliases caller- or frame-owned bytes directly; for a parsed
	// `buffer` argument it points into the dispatcher's frame payload and
	// is only valid until that frame is popped. See ParamBuffer.
	Buf []byte
}

// U32 builds an Arg carrying an unsigned 32-bit value (ParamUint32).
func U32(v uint32) Arg { return Arg{Kind: ArgInt, I32: int32(v)} }

// I32Arg builds an Arg carrying a signed 32-bit value (ParamInt32).
func I32Arg(v int32) Arg { return Arg{Kind: ArgInt, I32: v} }

// U16 builds an Arg carrying a 16-bit value (ParamUint16); the low 16 bits
// are all that ever reach the wire.
func U16(v uint16) Arg { return Arg{Kind: ArgInt, I32: int32(v)} }

// I16 builds an Arg carrying a signed 16-bit value (ParamInt16).
func I16(v int16) Arg { return Arg{Kind: ArgInt, I32: int32(v)} }

// Byte builds an Arg carrying a single byte value (ParamByte).
func Byte(v byte) Arg { return Arg{Kind: ArgInt, I32: int32(v)} }

// Str builds an Arg carrying string bytes (ParamString). Strings are only
// ever encoded, never parsed, per the schema contract.
func Str(s string) Arg { return Arg{Kind: ArgBuf, Buf: []byte(s)} }

// Buf builds an Arg carrying RAM-resident buffer bytes (ParamBuffer).
func Buf(b []byte) Arg { return Arg{Kind: ArgBuf, Buf: b} }

// PBuf builds an Arg carrying read-only-memory buffer bytes
// (ParamProgmemBuffer). On the wire it is indistinguishable from Buf; the
// distinction only matters to the ROMReader used while encoding.
func PBuf(b []byte) Arg { return Arg{Kind: ArgBuf, Buf: b} }

// AsU32 returns the argument's value reinterpreted as uint32.
func (a Arg) AsU32() uint32 { return uint32(a.I32) }

// AsI32 returns the argument's value as int32.
func (a Arg) AsI32() int32 { return a.I32 }

// Len returns the length of a buffer-kind argument.
func (a Arg) Len() int { return len(a.Buf) }
