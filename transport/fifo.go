// Package transport provides a concrete byte-FIFO implementation of
// protocol.Transport, standing in for the firmware's console_sendf/
// console_pop_input/console_get_input pair over a fixed-size ring buffer.
package transport

import (
	"sync"

	proto "github.com/oriontec/mculink/protocol"
)

// FIFO is a fixed-capacity byte ring buffer satisfying protocol.Transport.
// One FIFO owns its own input and output rings; a serial driver feeds bytes
// in on one side (Write) and drains bytes out the other (Read), while the
// frame layer drives InputPeek/InputPop/OutputReserve/OutputCommit from a
// single goroutine per protocol.Link's concurrency contract.
type FIFO struct {
	mu  sync.Mutex
	rx  ring
	tx  ring
	res []byte // scratch buffer backing the last OutputReserve call
}

// NewFIFO returns a FIFO with the given input/output ring capacities. A
// capacity smaller than protocol.MaxFrameSize will make OutputReserve fail
// for a maximum-size message; callers sizing a real link should use at
// least protocol.MaxFrameSize.
func NewFIFO(rxCapacity, txCapacity int) *FIFO {
	return &FIFO{
		rx: newRing(rxCapacity),
		tx: newRing(txCapacity),
	}
}

// Write feeds bytes received from the wire into the input ring. It returns
// the number of bytes actually accepted; a full ring silently drops the
// remainder, matching the firmware's fixed receive buffer.
func (f *FIFO) Write(p []byte) (n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rx.push(p)
}

// Read drains up to len(p) bytes the frame layer has written to the output
// ring (via OutputCommit) onto the wire.
func (f *FIFO) Read(p []byte) (n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tx.pop(p)
}

// Pending reports how many unread bytes currently sit in the output ring,
// for a serial driver polling whether it has anything to transmit.
func (f *FIFO) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tx.len()
}

func (f *FIFO) InputPeek() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rx.contiguous()
}

func (f *FIFO) InputPop(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rx.discard(n)
}

func (f *FIFO) OutputReserve(n int) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tx.free() < n {
		return nil, false
	}
	if cap(f.res) < n {
		f.res = make([]byte, n)
	}
	return f.res[:n], true
}

func (f *FIFO) OutputCommit(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tx.push(f.res[:n])
}

var _ proto.Transport = (*FIFO)(nil)

// ring is a fixed-capacity byte ring buffer. Unlike the stub radio driver's
// ring of whole frames, this ring holds a raw byte stream: the frame layer,
// not the transport, is responsible for finding message boundaries in it.
type ring struct {
	buf        []byte
	head, tail int
	count      int
}

func newRing(capacity int) ring {
	return ring{buf: make([]byte, capacity)}
}

func (r *ring) free() int { return len(r.buf) - r.count }

func (r *ring) len() int { return r.count }

func (r *ring) push(p []byte) int {
	n := len(p)
	if n > r.free() {
		n = r.free()
	}
	for i := 0; i < n; i++ {
		r.buf[r.tail] = p[i]
		r.tail = (r.tail + 1) % len(r.buf)
	}
	r.count += n
	return n
}

func (r *ring) pop(p []byte) int {
	n := len(p)
	if n > r.count {
		n = r.count
	}
	for i := 0; i < n; i++ {
		p[i] = r.buf[r.head]
		r.head = (r.head + 1) % len(r.buf)
	}
	r.count -= n
	return n
}

// contiguous returns the ring's unread bytes as a single slice, copying
// only when the data wraps around the end of the backing array. The
// frame layer's inspectFrame never needs more than protocol.MaxFrameSize
// bytes, so the copy path is cold in practice once a link is synced.
func (r *ring) contiguous() []byte {
	if r.count == 0 {
		return nil
	}
	if r.head+r.count <= len(r.buf) {
		return r.buf[r.head : r.head+r.count]
	}
	out := make([]byte, r.count)
	n := copy(out, r.buf[r.head:])
	copy(out[n:], r.buf[:r.count-n])
	return out
}

func (r *ring) discard(n int) {
	if n > r.count {
		n = r.count
	}
	r.head = (r.head + n) % len(r.buf)
	r.count -= n
}
