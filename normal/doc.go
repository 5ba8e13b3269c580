// Package normal is the generator facade: it owns the distribution parameters
// and uniform sources and exposes single-value and bulk sampling through
// scalar, SSE4.1 and AVX2 entry points.
//
// Quick start:
//
//	g := normal.New(5, 16, normal.WithSeed(42))
//	x := g.NextFloat()
//	xs := g.FloatsAVX(10_000) // panics if the CPU lacks AVX2; check simd.Supported first
//
// Memory model: Floats* return a fresh slice owned by the caller; Fill*
// borrow dst for the duration of the call. Buffer adds an explicit Release
// for off-heap memory shared with C callers.
package normal
