package store

import (
	"errors"
	"os"
	"unsafe"
)

// WriteFile writes h followed by samples to path atomically (write to
// path+".tmp", then rename). h.Count is set from len(samples).
// On Windows, the target must not exist for Rename to succeed; remove it first.
func WriteFile(path string, h *Header, samples []float32) error {
	if h == nil {
		return ErrNilHeader
	}
	h.Count = uint64(len(samples))
	headerBytes, err := EncodeHeader(h)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := writeTo(tmp, headerBytes, samples); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	_ = os.Remove(path) // ignore error if not exists
	return os.Rename(tmp, path)
}

func writeTo(path string, headerBytes []byte, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(headerBytes); err != nil {
		return err
	}
	if len(samples) > 0 {
		// samples are stored in host order; all supported targets are little endian
		raw := unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), len(samples)*sampleSize)
		n, err := f.Write(raw)
		if err != nil {
			return err
		}
		if n != len(raw) {
			return errors.New("failed to write full sample data")
		}
	}
	return f.Sync()
}

// ReadFile loads a dump into the heap. Prefer OpenMmap for large files.
func ReadFile(path string) (*Header, []float32, error) {
	v, err := OpenMmap(path)
	if err != nil {
		return nil, nil, err
	}
	defer v.Close()
	h := *v.Header()
	out := make([]float32, len(v.Samples()))
	copy(out, v.Samples())
	return &h, out, nil
}
