//go:build amd64 && cgo

package simd

/*
#cgo CFLAGS: -mavx2 -O3
#include <immintrin.h>
#include <stdint.h>
#include <stddef.h>

#define TWO_PI 6.28318530717958647692f

static inline __m256 ln_ps(__m256 x) {
	const __m256 one = _mm256_set1_ps(1.0f);
	__m256i bits = _mm256_castps_si256(x);
	__m256 e = _mm256_cvtepi32_ps(_mm256_sub_epi32(_mm256_srli_epi32(bits, 23), _mm256_set1_epi32(127)));
	__m256 m = _mm256_castsi256_ps(_mm256_or_si256(
		_mm256_and_si256(bits, _mm256_set1_epi32(0x007FFFFF)),
		_mm256_set1_epi32(0x3F800000)));
	__m256 big = _mm256_cmp_ps(m, _mm256_set1_ps(1.41421356f), _CMP_GT_OQ);
	m = _mm256_blendv_ps(m, _mm256_mul_ps(m, _mm256_set1_ps(0.5f)), big);
	e = _mm256_add_ps(e, _mm256_and_ps(big, one));

	__m256 y = _mm256_div_ps(_mm256_sub_ps(m, one), _mm256_add_ps(m, one));
	__m256 y2 = _mm256_mul_ps(y, y);
	__m256 p = _mm256_set1_ps(0.0909178608f);
	p = _mm256_add_ps(_mm256_mul_ps(p, y2), _mm256_set1_ps(0.1111109922f));
	p = _mm256_add_ps(_mm256_mul_ps(p, y2), _mm256_set1_ps(0.1428571437f));
	p = _mm256_add_ps(_mm256_mul_ps(p, y2), _mm256_set1_ps(0.2f));
	p = _mm256_add_ps(_mm256_mul_ps(p, y2), _mm256_set1_ps(0.3333333333f));
	p = _mm256_add_ps(_mm256_mul_ps(p, y2), one);
	__m256 lnm = _mm256_mul_ps(_mm256_add_ps(y, y), p);

	__m256 lo = _mm256_add_ps(_mm256_mul_ps(e, _mm256_set1_ps(-2.12194440e-4f)), lnm);
	return _mm256_add_ps(_mm256_mul_ps(e, _mm256_set1_ps(0.693359375f)), lo);
}

static inline void sincos2pi_ps(__m256 u, __m256* s, __m256* c) {
	const __m256 one = _mm256_set1_ps(1.0f);
	const __m256 sign = _mm256_castsi256_ps(_mm256_set1_epi32((int)0x80000000u));
	const __m256i one_i = _mm256_set1_epi32(1);
	const __m256i two_i = _mm256_set1_epi32(2);

	__m256 q = _mm256_round_ps(_mm256_mul_ps(u, _mm256_set1_ps(4.0f)), _MM_FROUND_TO_NEAREST_INT | _MM_FROUND_NO_EXC);
	__m256 x = _mm256_mul_ps(_mm256_sub_ps(u, _mm256_mul_ps(q, _mm256_set1_ps(0.25f))), _mm256_set1_ps(TWO_PI));
	__m256 x2 = _mm256_mul_ps(x, x);

	__m256 sp = _mm256_set1_ps(2.718311493989822e-6f);
	sp = _mm256_add_ps(_mm256_mul_ps(sp, x2), _mm256_set1_ps(-1.9839334836096632e-4f));
	sp = _mm256_add_ps(_mm256_mul_ps(sp, x2), _mm256_set1_ps(8.333329385889463e-3f));
	sp = _mm256_add_ps(_mm256_mul_ps(sp, x2), _mm256_set1_ps(-0.16666666641626524f));
	sp = _mm256_add_ps(_mm256_mul_ps(sp, x2), one);
	__m256 sx = _mm256_mul_ps(x, sp);

	__m256 cp = _mm256_set1_ps(2.443315711809948e-5f);
	cp = _mm256_add_ps(_mm256_mul_ps(cp, x2), _mm256_set1_ps(-1.388731625493765e-3f));
	cp = _mm256_add_ps(_mm256_mul_ps(cp, x2), _mm256_set1_ps(4.166662453689337e-2f));
	cp = _mm256_add_ps(_mm256_mul_ps(cp, x2), _mm256_set1_ps(-0.4999999963229337f));
	__m256 cx = _mm256_add_ps(_mm256_mul_ps(cp, x2), one);

	__m256i qi = _mm256_cvtps_epi32(q);
	__m256 swap = _mm256_castsi256_ps(_mm256_cmpeq_epi32(_mm256_and_si256(qi, one_i), one_i));
	__m256 sneg = _mm256_castsi256_ps(_mm256_cmpeq_epi32(_mm256_and_si256(qi, two_i), two_i));
	__m256 cneg = _mm256_castsi256_ps(_mm256_cmpeq_epi32(
		_mm256_and_si256(_mm256_add_epi32(qi, one_i), two_i), two_i));

	__m256 sv = _mm256_blendv_ps(sx, cx, swap);
	__m256 cv = _mm256_blendv_ps(cx, sx, swap);
	*s = _mm256_xor_ps(sv, _mm256_and_ps(sneg, sign));
	*c = _mm256_xor_ps(cv, _mm256_and_ps(cneg, sign));
}

static inline __m256 next_unit_ps(__m256i* x, __m256i a, __m256i b) {
	*x = _mm256_add_epi32(_mm256_mullo_epi32(*x, a), b);
	__m256i mant = _mm256_or_si256(_mm256_srli_epi32(*x, 8), _mm256_set1_epi32(1));
	return _mm256_mul_ps(_mm256_cvtepi32_ps(mant), _mm256_set1_ps(5.9604644775390625e-8f));
}

// BoxMullerAVX2 writes blocks*16 values: 8 cosine outputs then 8 sine outputs per block.
static void BoxMullerAVX2(float* dst, size_t blocks, uint32_t* state, float mean, float sigma) {
	const __m256i a = _mm256_set1_epi32((int)1664525u);
	const __m256i b = _mm256_set1_epi32((int)1013904223u);
	const __m256 m2 = _mm256_set1_ps(-2.0f);
	const __m256 vmean = _mm256_set1_ps(mean);
	const __m256 vsigma = _mm256_set1_ps(sigma);
	__m256i x = _mm256_loadu_si256((const __m256i*)state);
	for (size_t i = 0; i < blocks; i++) {
		__m256 u1 = next_unit_ps(&x, a, b);
		__m256 u2 = next_unit_ps(&x, a, b);
		__m256 r = _mm256_mul_ps(_mm256_sqrt_ps(_mm256_mul_ps(m2, ln_ps(u1))), vsigma);
		__m256 s, c;
		sincos2pi_ps(u2, &s, &c);
		_mm256_storeu_ps(dst + 16 * i, _mm256_add_ps(_mm256_mul_ps(r, c), vmean));
		_mm256_storeu_ps(dst + 16 * i + 8, _mm256_add_ps(_mm256_mul_ps(r, s), vmean));
	}
	_mm256_storeu_si256((__m256i*)state, x);
}
*/
import "C"

import "unsafe"

func boxMullerAVX2(dst []float32, lanes []uint32, mean, stdDev float32) {
	blocks := len(dst) / avx2Block
	if blocks == 0 {
		return
	}
	C.BoxMullerAVX2(
		(*C.float)(unsafe.Pointer(&dst[0])),
		C.size_t(blocks),
		(*C.uint32_t)(unsafe.Pointer(&lanes[0])),
		C.float(mean),
		C.float(stdDev),
	)
}
