// Package simd provides the Box–Muller transform in scalar, SSE4.1 (4 lanes)
// and AVX2 (8 lanes) forms. The tier is chosen by the caller through distinct
// entry points; there is no hidden runtime dispatch. On amd64 with CGO the
// vector tiers run intrinsics, elsewhere they run a pure Go lane kernel with
// the same output layout.
//
// Vector output layout per block of 2*W values: W cosine outputs (z0 of each
// lane) followed by W sine outputs (z1 of each lane). The N mod 2W tail is
// filled by the scalar path.
package simd

import (
	"github.com/chewxy/math32"
	"github.com/viterin/vek/vek32"

	"github.com/ic-timon/nd-rng/uniform"
)

const twoPi float32 = 6.28318530717958647692

const (
	sse4Block = 2 * 4
	avx2Block = 2 * 8
)

// UniformSource supplies uniform values in (0, 1) to the scalar path.
type UniformSource interface {
	Next() float32
}

// TransformPair maps a uniform pair to two independent normal samples with the
// given mean and standard deviation. u1 must be in (0, 1]; no clamping is done.
func TransformPair(u1, u2, mean, stdDev float32) (z0, z1 float32) {
	r := math32.Sqrt(-2*math32.Log(u1)) * stdDev
	theta := twoPi * u2
	return r*math32.Cos(theta) + mean, r*math32.Sin(theta) + mean
}

// FillScalar fills dst two values per uniform pair. For odd len(dst) the
// second output of the last pair is discarded.
func FillScalar(dst []float32, src UniformSource, mean, stdDev float32) {
	n := len(dst)
	i := 0
	for ; i+1 < n; i += 2 {
		dst[i], dst[i+1] = TransformPair(src.Next(), src.Next(), mean, stdDev)
	}
	if i < n {
		dst[i], _ = TransformPair(src.Next(), src.Next(), mean, stdDev)
	}
}

// FillSSE4 fills dst with the 4-lane kernel, advancing lanes in place, and
// fills the tail with src. Panics with ErrUnsupportedTier if the CPU lacks SSE4.1.
func FillSSE4(dst []float32, lanes *uniform.Lanes4, src UniformSource, mean, stdDev float32) {
	mustSupport(TierSSE4)
	n := len(dst) / sse4Block * sse4Block
	if n > 0 {
		boxMullerSSE4(dst[:n], lanes.Slice(), mean, stdDev)
	}
	FillScalar(dst[n:], src, mean, stdDev)
}

// FillAVX2 fills dst with the 8-lane kernel, advancing lanes in place, and
// fills the tail with src. Panics with ErrUnsupportedTier if the CPU lacks AVX2.
func FillAVX2(dst []float32, lanes *uniform.Lanes8, src UniformSource, mean, stdDev float32) {
	mustSupport(TierAVX2)
	n := len(dst) / avx2Block * avx2Block
	if n > 0 {
		boxMullerAVX2(dst[:n], lanes.Slice(), mean, stdDev)
	}
	FillScalar(dst[n:], src, mean, stdDev)
}

// boxMullerLanesGo is the portable lane kernel. len(dst) must be a multiple
// of 2*len(lanes); len(lanes) is at most 8.
func boxMullerLanesGo(dst []float32, lanes []uint32, mean, stdDev float32) {
	w := len(lanes)
	var u1, u2 [8]float32
	for off := 0; off+2*w <= len(dst); off += 2 * w {
		for i, x := range lanes {
			x = x*uniform.LCGMul + uniform.LCGInc
			lanes[i] = x
			u1[i] = uniform.ToUnit(x)
		}
		for i, x := range lanes {
			x = x*uniform.LCGMul + uniform.LCGInc
			lanes[i] = x
			u2[i] = uniform.ToUnit(x)
		}
		for i := 0; i < w; i++ {
			r := math32.Sqrt(-2 * math32.Log(u1[i]))
			theta := twoPi * u2[i]
			dst[off+i] = r * math32.Cos(theta)
			dst[off+w+i] = r * math32.Sin(theta)
		}
	}
	vek32.MulNumber_Inplace(dst, stdDev)
	vek32.AddNumber_Inplace(dst, mean)
}
