//go:build !cgo

package normal

// allocBufferOffheap returns nil when CGO is disabled, falling back to heap buffers.
func allocBufferOffheap(n int) Buffer {
	return nil
}
