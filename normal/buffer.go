package normal

// Buffer is an output buffer with an explicit release, implemented on the Go
// heap or off-heap.
type Buffer interface {
	Len() int
	Data() []float32
	Release() // no-op for heap buffers, C.free for off-heap
}

// HeapBuffer stores samples in Go memory. Release drops the reference.
type HeapBuffer struct {
	data []float32
}

// NewHeapBuffer allocates an n-element heap buffer.
func NewHeapBuffer(n int) *HeapBuffer {
	mustCount(n)
	return &HeapBuffer{data: make([]float32, n)}
}

// Len returns the number of float32 values.
func (b *HeapBuffer) Len() int {
	return len(b.data)
}

// Data returns the underlying slice.
func (b *HeapBuffer) Data() []float32 {
	return b.data
}

// Release drops the slice so the GC can reclaim it.
func (b *HeapBuffer) Release() {
	b.data = nil
}

// AllocBuffer allocates an n-element buffer. With offheap it uses C.malloc
// when CGO is available and falls back to the heap otherwise.
func AllocBuffer(n int, offheap bool) Buffer {
	mustCount(n)
	if offheap && n > 0 {
		if b := allocBufferOffheap(n); b != nil {
			return b
		}
	}
	return NewHeapBuffer(n)
}
