package normal

import (
	"fmt"

	"github.com/ic-timon/nd-rng/simd"
	"github.com/ic-timon/nd-rng/uniform"
)

// Generator draws normal samples for one set of Params. It owns its uniform
// sources: one scalar LCG for NextFloat and vector tails, and one packed lane
// state per vector tier. A Generator must not be used from more than one
// goroutine at a time; there is no internal locking.
type Generator struct {
	params Params
	seed   uint64

	src    *uniform.LCG
	lanes4 uniform.Lanes4
	lanes8 uniform.Lanes8

	spare    float32
	hasSpare bool
}

// New creates a generator. This is the create-generator operation: variance
// must be > 0, otherwise New panics with ErrPrecondition.
func New(mean, variance float32, opts ...Option) *Generator {
	o := newOptions(opts)
	g := &Generator{}
	g.reset(NewParams(mean, variance), o.seed)
	return g
}

// Reset re-creates the generator in place with new parameters and a fresh
// seed (or the WithSeed value, if given).
func (g *Generator) Reset(mean, variance float32, opts ...Option) {
	o := newOptions(opts)
	g.reset(NewParams(mean, variance), o.seed)
}

func (g *Generator) reset(p Params, seed uint64) {
	s := uniform.NewSeeder(seed)
	g.params = p
	g.seed = s.Seed()
	g.src = s.LCG()
	g.lanes4 = s.Lanes4()
	g.lanes8 = s.Lanes8()
	g.spare = 0
	g.hasSpare = false
}

// Params returns the distribution parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Seed returns the effective seed; passing it to WithSeed reproduces the streams.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// NextFloat returns one sample. Each Box–Muller pair yields two samples; the
// second is kept and returned by the following call.
func (g *Generator) NextFloat() float32 {
	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}
	z0, z1 := simd.TransformPair(g.src.Next(), g.src.Next(), g.params.Mean, g.params.StdDev)
	g.spare = z1
	g.hasSpare = true
	return z0
}

// Floats returns n samples from the scalar path. The slice belongs to the caller.
func (g *Generator) Floats(n int) []float32 {
	mustCount(n)
	out := make([]float32, n)
	g.Fill(out)
	return out
}

// FloatsSSE returns n samples from the 4-lane tier. Panics if the CPU lacks SSE4.1.
func (g *Generator) FloatsSSE(n int) []float32 {
	mustCount(n)
	out := make([]float32, n)
	g.FillSSE(out)
	return out
}

// FloatsAVX returns n samples from the 8-lane tier. Panics if the CPU lacks AVX2.
func (g *Generator) FloatsAVX(n int) []float32 {
	mustCount(n)
	out := make([]float32, n)
	g.FillAVX(out)
	return out
}

// Fill overwrites dst with scalar-path samples. dst is only borrowed.
func (g *Generator) Fill(dst []float32) {
	simd.FillScalar(dst, g.src, g.params.Mean, g.params.StdDev)
}

// FillSSE overwrites dst with 4-lane samples. dst is only borrowed.
func (g *Generator) FillSSE(dst []float32) {
	simd.FillSSE4(dst, &g.lanes4, g.src, g.params.Mean, g.params.StdDev)
}

// FillAVX overwrites dst with 8-lane samples. dst is only borrowed.
func (g *Generator) FillAVX(dst []float32) {
	simd.FillAVX2(dst, &g.lanes8, g.src, g.params.Mean, g.params.StdDev)
}

// FillTier calls the named entry point for tier. An unknown tier panics with
// an error wrapping simd.ErrUnsupportedTier.
func (g *Generator) FillTier(tier simd.Tier, dst []float32) {
	switch tier {
	case simd.TierScalar:
		g.Fill(dst)
	case simd.TierSSE4:
		g.FillSSE(dst)
	case simd.TierAVX2:
		g.FillAVX(dst)
	default:
		panic(fmt.Errorf("%w: %s", simd.ErrUnsupportedTier, tier))
	}
}

// FloatsTier returns n samples from tier.
func (g *Generator) FloatsTier(tier simd.Tier, n int) []float32 {
	mustCount(n)
	out := make([]float32, n)
	g.FillTier(tier, out)
	return out
}

// FillBuffer fills buf from tier. buf keeps its ownership and must be released by its owner.
func (g *Generator) FillBuffer(tier simd.Tier, buf Buffer) {
	g.FillTier(tier, buf.Data())
}
