// Package capi holds the process-wide generator behind the c-shared library.
// It is kept free of cgo so the boundary semantics can be tested directly.
package capi

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/ic-timon/nd-rng/normal"
	"github.com/ic-timon/nd-rng/simd"
)

// Boundary owns the generator and the buffers handed to foreign callers.
// Like Generator it is not safe for concurrent use.
type Boundary struct {
	gen  *normal.Generator
	pool *normal.BufferPool
}

// New returns an uninitialised boundary. Buffers are allocated off-heap when
// cgo is available so foreign code may keep them past the call.
func New() *Boundary {
	return &Boundary{pool: normal.NewPool(true)}
}

// Create installs a generator for N(mean, variance), replacing any previous one.
// Outstanding buffers stay valid until released.
func (b *Boundary) Create(mean, variance float32) {
	if b.gen == nil {
		b.gen = normal.New(mean, variance)
		return
	}
	b.gen.Reset(mean, variance)
}

// Initialised reports whether Create has been called.
func (b *Boundary) Initialised() bool {
	return b.gen != nil
}

// NextFloat returns one sample, or NaN before Create.
func (b *Boundary) NextFloat() float32 {
	if b.gen == nil {
		return float32(math.NaN())
	}
	return b.gen.NextFloat()
}

// Floats fills a tracked buffer of count samples with the given tier and
// returns its first element. It returns nil before Create or when count is 0.
// An unsupported tier panics before anything is allocated.
func (b *Boundary) Floats(tier simd.Tier, count uint32) unsafe.Pointer {
	if b.gen == nil || count == 0 {
		return nil
	}
	if !simd.Supported(tier) {
		panic(fmt.Errorf("%w: %s", simd.ErrUnsupportedTier, tier))
	}
	buf := b.pool.Alloc(int(count))
	b.gen.FillBuffer(tier, buf)
	return unsafe.Pointer(&buf.Data()[0])
}

// Release frees a buffer returned by Floats. Unknown pointers are ignored.
func (b *Boundary) Release(ptr unsafe.Pointer) bool {
	if ptr == nil {
		return false
	}
	return b.pool.Release(ptr)
}

// Outstanding returns the number of unreleased buffers.
func (b *Boundary) Outstanding() int {
	return b.pool.Outstanding()
}
