// Package ring implements the single-producer/single-consumer sample queue
// shared between the acquisition context and the render loop.
package ring

import (
	"fmt"
	"sync/atomic"

	"picospectrum/analyzer"
)

// DefaultCapacity matches the firmware sample buffer.
const DefaultCapacity = 1024

// Ring is a lock-free SPSC queue of 12-bit samples.
//
// write and read advance monotonically and are masked on access. Only the
// producer stores write; read is stored by the consumer, and by the producer
// when a push would overrun (drop-oldest). Both indices are accessed with
// atomic loads/stores, which gives the release/acquire pairing the buffer
// needs.
type Ring struct {
	buf  []uint16
	mask uint32

	write atomic.Uint32
	read  atomic.Uint32
}

// New returns an empty ring. capacity must be a power of two, at least 2.
func New(capacity int) (*Ring, error) {
	if capacity < 2 || capacity&(capacity-1) != 0 || capacity > 1<<30 {
		return nil, fmt.Errorf("ring: capacity %d is not a power of two >= 2: %w", capacity, analyzer.ErrConfiguration)
	}
	return &Ring{
		buf:  make([]uint16, capacity),
		mask: uint32(capacity - 1),
	}, nil
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Push appends one sample. When the ring is full the oldest sample is dropped
// first. Producer side only.
func (r *Ring) Push(s uint16) {
	w := r.write.Load()
	rd := r.read.Load()
	if w-rd > r.mask {
		// A failed swap means the consumer just drained, so there is room.
		r.read.CompareAndSwap(rd, rd+1)
	}
	r.buf[w&r.mask] = s
	r.write.Store(w + 1)
}

// Available reports how many samples are queued. Consumer side.
func (r *Ring) Available() int {
	w := r.write.Load()
	rd := r.read.Load()
	n := w - rd
	if n > uint32(len(r.buf)) {
		n = uint32(len(r.buf))
	}
	return int(n)
}

// ReadInto drains up to len(dst) samples in FIFO order and returns the count.
// Consumer side only.
func (r *Ring) ReadInto(dst []uint16) int {
	for {
		rd := r.read.Load()
		w := r.write.Load()
		n := w - rd
		if n > uint32(len(r.buf)) {
			n = uint32(len(r.buf))
		}
		if n > uint32(len(dst)) {
			n = uint32(len(dst))
		}
		if n == 0 {
			return 0
		}
		for i := uint32(0); i < n; i++ {
			dst[i] = r.buf[(rd+i)&r.mask]
		}
		// The producer moved read while we copied: it dropped samples and the
		// copy may hold overwritten slots. Start over from the new oldest.
		if r.read.CompareAndSwap(rd, rd+n) {
			return int(n)
		}
	}
}

// Reset empties the ring. It must not race with Push or ReadInto; the
// sampler only calls it while stopped.
func (r *Ring) Reset() {
	r.write.Store(0)
	r.read.Store(0)
	clear(r.buf)
}
