// Package store provides the sample dump file format and an mmap-backed
// reader, so generated streams can be written once and analysed later
// without copying them back into the Go heap.
//
// The file format consists of:
//   - Header (64 bytes, little endian): magic, version, tier, parameters, seed, count
//   - Samples: Count contiguous float32 values
package store
