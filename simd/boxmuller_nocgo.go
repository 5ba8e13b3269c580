//go:build !amd64 || !cgo

package simd

// boxMullerSSE4 falls back to the Go lane kernel when not amd64 or CGO is disabled.
func boxMullerSSE4(dst []float32, lanes []uint32, mean, stdDev float32) {
	boxMullerLanesGo(dst, lanes, mean, stdDev)
}

// boxMullerAVX2 falls back to the Go lane kernel when not amd64 or CGO is disabled.
func boxMullerAVX2(dst []float32, lanes []uint32, mean, stdDev float32) {
	boxMullerLanesGo(dst, lanes, mean, stdDev)
}
