// Command libndrng builds the C shared library:
//
//	go build -buildmode=c-shared -o libndrng.so ./cmd/libndrng
//
// The library holds a single process-wide generator. Buffers returned by the
// Floats* functions are owned by the caller and must be passed to ReleaseFloats.
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"unsafe"

	"github.com/ic-timon/nd-rng/internal/capi"
	"github.com/ic-timon/nd-rng/simd"
)

var boundary = capi.New()

//export CreateGenerator
func CreateGenerator(mean, variance C.float) {
	boundary.Create(float32(mean), float32(variance))
}

//export NextFloat
func NextFloat() C.float {
	return C.float(boundary.NextFloat())
}

//export Floats
func Floats(count C.uint) *C.float {
	return (*C.float)(boundary.Floats(simd.TierScalar, uint32(count)))
}

//export FloatsSSE
func FloatsSSE(count C.uint) *C.float {
	return (*C.float)(boundary.Floats(simd.TierSSE4, uint32(count)))
}

//export FloatsAVX
func FloatsAVX(count C.uint) *C.float {
	return (*C.float)(boundary.Floats(simd.TierAVX2, uint32(count)))
}

//export ReleaseFloats
func ReleaseFloats(p *C.float) {
	boundary.Release(unsafe.Pointer(p))
}

func main() {}
