package protocol

// Transport is the narrow byte-FIFO interface the frame layer consumes. It
// is deliberately out of scope for this protocol's own concerns (framing,
// sequencing, codec) — the transport package provides a concrete
// implementation, and any byte-oriented serial link can supply another.
//
// The frame layer assumes InputPeek's view is stable for the duration of
// one TryReadFrame/Poll call; a concurrently-filled transport must snapshot
// rather than mutate the slice InputPeek returns while the caller holds it.
type Transport interface {
	// InputPeek returns a contiguous view of the bytes currently available
	// to read. The slice is only valid until the next InputPop call.
	InputPeek() []byte
	// InputPop consumes the first n bytes of the input.
	InputPop(n int)
	// OutputReserve best-effort-reserves n bytes of output space and
	// returns a slice to write into, or ok=false if no room exists.
	OutputReserve(n int) (buf []byte, ok bool)
	// OutputCommit publishes the first n bytes of the slice last returned
	// by OutputReserve.
	OutputCommit(n int)
}

// ROMReader abstracts a read from program/flash memory, preserving the
// Harvard-architecture distinction the original source draws between
// READP/memcpy_P and ordinary RAM reads. On hosted Go this collapses to a
// plain copy; DefaultROM is that pass-through. A TinyGo build targeting a
// device with a separate code address space can supply its own ROMReader
// backed by flash-resident data without the command codec changing at all.
type ROMReader interface {
	ReadROM(dst []byte, src []byte) int
}

type defaultROM struct{}

func (defaultROM) ReadROM(dst []byte, src []byte) int {
	return copy(dst, src)
}

// DefaultROM is the host-Go ROMReader: a plain copy.
var DefaultROM ROMReader = defaultROM{}
