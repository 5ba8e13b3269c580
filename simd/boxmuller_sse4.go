//go:build amd64 && cgo

package simd

/*
#cgo CFLAGS: -msse4.1 -O3
#include <smmintrin.h>
#include <stdint.h>
#include <stddef.h>

#define TWO_PI 6.28318530717958647692f

// ln(x) for x > 0 finite: x = 2^e * m, m in [sqrt(1/2), sqrt(2)), y = (m-1)/(m+1),
// ln(m) = 2y(1 + y^2/3 + y^4/5 + ...).
static inline __m128 ln_ps(__m128 x) {
	const __m128 one = _mm_set1_ps(1.0f);
	__m128i bits = _mm_castps_si128(x);
	__m128 e = _mm_cvtepi32_ps(_mm_sub_epi32(_mm_srli_epi32(bits, 23), _mm_set1_epi32(127)));
	__m128 m = _mm_castsi128_ps(_mm_or_si128(
		_mm_and_si128(bits, _mm_set1_epi32(0x007FFFFF)),
		_mm_set1_epi32(0x3F800000)));
	__m128 big = _mm_cmpgt_ps(m, _mm_set1_ps(1.41421356f));
	m = _mm_blendv_ps(m, _mm_mul_ps(m, _mm_set1_ps(0.5f)), big);
	e = _mm_add_ps(e, _mm_and_ps(big, one));

	__m128 y = _mm_div_ps(_mm_sub_ps(m, one), _mm_add_ps(m, one));
	__m128 y2 = _mm_mul_ps(y, y);
	__m128 p = _mm_set1_ps(0.0909178608f);
	p = _mm_add_ps(_mm_mul_ps(p, y2), _mm_set1_ps(0.1111109922f));
	p = _mm_add_ps(_mm_mul_ps(p, y2), _mm_set1_ps(0.1428571437f));
	p = _mm_add_ps(_mm_mul_ps(p, y2), _mm_set1_ps(0.2f));
	p = _mm_add_ps(_mm_mul_ps(p, y2), _mm_set1_ps(0.3333333333f));
	p = _mm_add_ps(_mm_mul_ps(p, y2), one);
	__m128 lnm = _mm_mul_ps(_mm_add_ps(y, y), p);

	__m128 lo = _mm_add_ps(_mm_mul_ps(e, _mm_set1_ps(-2.12194440e-4f)), lnm);
	return _mm_add_ps(_mm_mul_ps(e, _mm_set1_ps(0.693359375f)), lo);
}

// sin and cos of 2*pi*u for u in (0, 1). q = round(4u) is the quadrant and
// u - q/4 is exact, leaving x in [-pi/4, pi/4] for the polynomials.
static inline void sincos2pi_ps(__m128 u, __m128* s, __m128* c) {
	const __m128 one = _mm_set1_ps(1.0f);
	const __m128 sign = _mm_castsi128_ps(_mm_set1_epi32((int)0x80000000u));
	const __m128i one_i = _mm_set1_epi32(1);
	const __m128i two_i = _mm_set1_epi32(2);

	__m128 q = _mm_round_ps(_mm_mul_ps(u, _mm_set1_ps(4.0f)), _MM_FROUND_TO_NEAREST_INT | _MM_FROUND_NO_EXC);
	__m128 x = _mm_mul_ps(_mm_sub_ps(u, _mm_mul_ps(q, _mm_set1_ps(0.25f))), _mm_set1_ps(TWO_PI));
	__m128 x2 = _mm_mul_ps(x, x);

	__m128 sp = _mm_set1_ps(2.718311493989822e-6f);
	sp = _mm_add_ps(_mm_mul_ps(sp, x2), _mm_set1_ps(-1.9839334836096632e-4f));
	sp = _mm_add_ps(_mm_mul_ps(sp, x2), _mm_set1_ps(8.333329385889463e-3f));
	sp = _mm_add_ps(_mm_mul_ps(sp, x2), _mm_set1_ps(-0.16666666641626524f));
	sp = _mm_add_ps(_mm_mul_ps(sp, x2), one);
	__m128 sx = _mm_mul_ps(x, sp);

	__m128 cp = _mm_set1_ps(2.443315711809948e-5f);
	cp = _mm_add_ps(_mm_mul_ps(cp, x2), _mm_set1_ps(-1.388731625493765e-3f));
	cp = _mm_add_ps(_mm_mul_ps(cp, x2), _mm_set1_ps(4.166662453689337e-2f));
	cp = _mm_add_ps(_mm_mul_ps(cp, x2), _mm_set1_ps(-0.4999999963229337f));
	__m128 cx = _mm_add_ps(_mm_mul_ps(cp, x2), one);

	__m128i qi = _mm_cvtps_epi32(q);
	__m128 swap = _mm_castsi128_ps(_mm_cmpeq_epi32(_mm_and_si128(qi, one_i), one_i));
	__m128 sneg = _mm_castsi128_ps(_mm_cmpeq_epi32(_mm_and_si128(qi, two_i), two_i));
	__m128 cneg = _mm_castsi128_ps(_mm_cmpeq_epi32(
		_mm_and_si128(_mm_add_epi32(qi, one_i), two_i), two_i));

	__m128 sv = _mm_blendv_ps(sx, cx, swap);
	__m128 cv = _mm_blendv_ps(cx, sx, swap);
	*s = _mm_xor_ps(sv, _mm_and_ps(sneg, sign));
	*c = _mm_xor_ps(cv, _mm_and_ps(cneg, sign));
}

static inline __m128 next_unit_ps(__m128i* x, __m128i a, __m128i b) {
	*x = _mm_add_epi32(_mm_mullo_epi32(*x, a), b);
	__m128i mant = _mm_or_si128(_mm_srli_epi32(*x, 8), _mm_set1_epi32(1));
	return _mm_mul_ps(_mm_cvtepi32_ps(mant), _mm_set1_ps(5.9604644775390625e-8f));
}

// BoxMullerSSE4 writes blocks*8 values: 4 cosine outputs then 4 sine outputs per block.
static void BoxMullerSSE4(float* dst, size_t blocks, uint32_t* state, float mean, float sigma) {
	const __m128i a = _mm_set1_epi32((int)1664525u);
	const __m128i b = _mm_set1_epi32((int)1013904223u);
	const __m128 m2 = _mm_set1_ps(-2.0f);
	const __m128 vmean = _mm_set1_ps(mean);
	const __m128 vsigma = _mm_set1_ps(sigma);
	__m128i x = _mm_loadu_si128((const __m128i*)state);
	for (size_t i = 0; i < blocks; i++) {
		__m128 u1 = next_unit_ps(&x, a, b);
		__m128 u2 = next_unit_ps(&x, a, b);
		__m128 r = _mm_mul_ps(_mm_sqrt_ps(_mm_mul_ps(m2, ln_ps(u1))), vsigma);
		__m128 s, c;
		sincos2pi_ps(u2, &s, &c);
		_mm_storeu_ps(dst + 8 * i, _mm_add_ps(_mm_mul_ps(r, c), vmean));
		_mm_storeu_ps(dst + 8 * i + 4, _mm_add_ps(_mm_mul_ps(r, s), vmean));
	}
	_mm_storeu_si128((__m128i*)state, x);
}
*/
import "C"

import "unsafe"

func boxMullerSSE4(dst []float32, lanes []uint32, mean, stdDev float32) {
	blocks := len(dst) / sse4Block
	if blocks == 0 {
		return
	}
	C.BoxMullerSSE4(
		(*C.float)(unsafe.Pointer(&dst[0])),
		C.size_t(blocks),
		(*C.uint32_t)(unsafe.Pointer(&lanes[0])),
		C.float(mean),
		C.float(stdDev),
	)
}
