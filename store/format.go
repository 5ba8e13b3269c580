package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// HeaderSize is the fixed header size.
	HeaderSize = 64

	// Magic identifies a sample dump file.
	Magic = "NDRS"

	// FormatVersion is the current file format version.
	FormatVersion uint16 = 1

	sampleSize = 4
)

var (
	ErrNilHeader          = errors.New("header is nil")
	ErrInvalidMagic       = errors.New("invalid magic")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrTruncated          = errors.New("sample data truncated")
	ErrHeaderTooShort     = fmt.Errorf("header too short: %w", ErrTruncated)
)

// Header holds the persisted sample metadata.
type Header struct {
	Magic    [4]byte
	Version  uint16
	Tier     uint16 // simd.Tier used to generate the samples
	Count    uint64
	Mean     float32
	Variance float32
	Seed     uint64
	Reserved [32]byte // pad to 64 bytes
}

// field offsets within the header
const (
	offVersion  = 4
	offTier     = 6
	offCount    = 8
	offMean     = 16
	offVariance = 20
	offSeed     = 24
)

// EncodeHeader stamps magic and version into h and returns its HeaderSize encoding.
func EncodeHeader(h *Header) ([]byte, error) {
	if h == nil {
		return nil, ErrNilHeader
	}
	copy(h.Magic[:], Magic)
	h.Version = FormatVersion
	b := make([]byte, HeaderSize)
	le := binary.LittleEndian
	copy(b, h.Magic[:])
	le.PutUint16(b[offVersion:], h.Version)
	le.PutUint16(b[offTier:], h.Tier)
	le.PutUint64(b[offCount:], h.Count)
	le.PutUint32(b[offMean:], math.Float32bits(h.Mean))
	le.PutUint32(b[offVariance:], math.Float32bits(h.Variance))
	le.PutUint64(b[offSeed:], h.Seed)
	copy(b[offSeed+8:], h.Reserved[:])
	return b, nil
}

// DecodeHeader parses the first HeaderSize bytes of src.
func DecodeHeader(src []byte) (*Header, error) {
	if len(src) < HeaderSize {
		return nil, ErrHeaderTooShort
	}
	var h Header
	copy(h.Magic[:], src)
	if string(h.Magic[:]) != Magic {
		return nil, ErrInvalidMagic
	}
	le := binary.LittleEndian
	if h.Version = le.Uint16(src[offVersion:]); h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	h.Tier = le.Uint16(src[offTier:])
	h.Count = le.Uint64(src[offCount:])
	h.Mean = math.Float32frombits(le.Uint32(src[offMean:]))
	h.Variance = math.Float32frombits(le.Uint32(src[offVariance:]))
	h.Seed = le.Uint64(src[offSeed:])
	copy(h.Reserved[:], src[offSeed+8:HeaderSize])
	return &h, nil
}

// DecodeFile parses a whole dump image: the header plus Count samples.
// It returns ErrTruncated when src holds fewer samples than the header claims.
func DecodeFile(src []byte) (*Header, error) {
	h, err := DecodeHeader(src)
	if err != nil {
		return nil, err
	}
	if have := uint64(len(src)-HeaderSize) / sampleSize; have < h.Count {
		return nil, fmt.Errorf("%w: header says %d samples, file holds %d", ErrTruncated, h.Count, have)
	}
	return h, nil
}
