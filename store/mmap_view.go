package store

import (
	"errors"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// SampleView provides read-only access to a persisted dump.
type SampleView interface {
	// Header returns the decoded file header.
	Header() *Header
	// Samples returns a []float32 view of the stored values.
	// The slice is valid until Close is called. Caller must not modify it.
	Samples() []float32
	// Bytes returns the full mapped file as []byte, or nil after Close.
	Bytes() []byte
	// Close releases resources (e.g. unmaps the file).
	Close() error
}

// MmapSampleView is a SampleView backed by an mmap'd file.
type MmapSampleView struct {
	f      *os.File
	data   mmap.MMap
	header *Header
}

// OpenMmap opens a dump file and returns a read-only SampleView.
func OpenMmap(path string) (SampleView, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.Size() < HeaderSize {
		f.Close()
		return nil, ErrHeaderTooShort
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	v := &MmapSampleView{f: f, data: m}
	h, err := DecodeFile(m)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.header = h
	return v, nil
}

// Header returns the decoded header.
func (v *MmapSampleView) Header() *Header {
	return v.header
}

// Bytes returns the full mapped file.
func (v *MmapSampleView) Bytes() []byte {
	return v.data
}

// Samples returns the stored values without copying.
func (v *MmapSampleView) Samples() []float32 {
	if v.data == nil || v.header == nil {
		return nil
	}
	if v.header.Count == 0 {
		return []float32{}
	}
	ptr := unsafe.Pointer(&v.data[HeaderSize])
	return unsafe.Slice((*float32)(ptr), int(v.header.Count))
}

// Close unmaps and closes the file. Both steps run even if one fails.
func (v *MmapSampleView) Close() error {
	var unmapErr, closeErr error
	if v.data != nil {
		unmapErr = v.data.Unmap()
		v.data = nil
	}
	if v.f != nil {
		closeErr = v.f.Close()
		v.f = nil
	}
	return errors.Join(unmapErr, closeErr)
}
