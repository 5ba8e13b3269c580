package normal

import (
	"runtime"
	"sync"
	"unsafe"
)

// BufferPool tracks buffers handed out across an API boundary so they can be
// released by address. Used by the C boundary, where callers only hold a pointer.
type BufferPool struct {
	mu         sync.Mutex
	buffers    map[unsafe.Pointer]Buffer
	UseOffheap bool // when true and CGO available, use C.malloc
}

// NewPool creates an empty buffer pool.
func NewPool(offheap bool) *BufferPool {
	p := &BufferPool{
		buffers:    make(map[unsafe.Pointer]Buffer),
		UseOffheap: offheap,
	}
	runtime.SetFinalizer(p, (*BufferPool).Close)
	return p
}

// Alloc allocates an n-element buffer and tracks it. n must be > 0.
func (p *BufferPool) Alloc(n int) Buffer {
	b := AllocBuffer(n, p.UseOffheap)
	data := b.Data()
	if len(data) == 0 {
		return b
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buffers[unsafe.Pointer(&data[0])] = b
	return b
}

// Release frees the tracked buffer starting at ptr. Unknown pointers are ignored.
func (p *BufferPool) Release(ptr unsafe.Pointer) bool {
	p.mu.Lock()
	b, ok := p.buffers[ptr]
	delete(p.buffers, ptr)
	p.mu.Unlock()
	if ok {
		b.Release()
	}
	return ok
}

// Outstanding returns the number of buffers not yet released.
func (p *BufferPool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buffers)
}

// Close releases every outstanding buffer.
func (p *BufferPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.buffers {
		b.Release()
	}
	p.buffers = make(map[unsafe.Pointer]Buffer)
	runtime.SetFinalizer(p, nil)
}
