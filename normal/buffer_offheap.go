//go:build cgo

package normal

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// OffheapBuffer is a buffer allocated with C.malloc. Its memory is outside the
// Go heap and can be handed to C callers directly.
type OffheapBuffer struct {
	ptr unsafe.Pointer
	n   int
}

// NewOffheapBuffer allocates n float32 values with C.malloc; nil on failure or n <= 0.
func NewOffheapBuffer(n int) *OffheapBuffer {
	if n <= 0 {
		return nil
	}
	ptr := C.malloc(C.size_t(n) * C.size_t(unsafe.Sizeof(float32(0))))
	if ptr == nil {
		return nil
	}
	return &OffheapBuffer{ptr: ptr, n: n}
}

// Len returns the number of float32 values.
func (b *OffheapBuffer) Len() int {
	if b.ptr == nil {
		return 0
	}
	return b.n
}

// Data returns a slice view of the off-heap memory, nil after Release.
func (b *OffheapBuffer) Data() []float32 {
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*float32)(b.ptr), b.n)
}

// Pointer returns the start of the C allocation.
func (b *OffheapBuffer) Pointer() unsafe.Pointer {
	return b.ptr
}

// Release frees the C.malloc-allocated memory. Safe to call twice.
func (b *OffheapBuffer) Release() {
	if b.ptr != nil {
		C.free(b.ptr)
		b.ptr = nil
	}
}

// allocBufferOffheap 仅在 CGO 构建时分配 Off-heap 缓冲区
func allocBufferOffheap(n int) Buffer {
	if b := NewOffheapBuffer(n); b != nil {
		return b
	}
	return nil
}
