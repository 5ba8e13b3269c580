// Package uniform provides the seedable uniform source behind the normal sampler:
// a 32-bit linear congruential generator in scalar form and in 4/8-lane packed
// form. Every value it produces lies strictly inside (0, 1).
package uniform

const (
	// LCGMul and LCGInc are the Numerical Recipes LCG constants (mod 2^32).
	LCGMul uint32 = 1664525
	LCGInc uint32 = 1013904223

	// lowest representable output is 2^-24, highest is 1-2^-24
	floatScale float32 = 1.0 / (1 << 24)
)

// ToUnit maps an LCG state to a float32 in (0, 1). The top 23 bits become the
// mantissa and the forced low bit keeps the result off 0 and 1.
func ToUnit(x uint32) float32 {
	return float32((x>>8)|1) * floatScale
}

// LCG is a scalar linear congruential uniform source. Not safe for concurrent use.
type LCG struct {
	state uint32
}

// NewLCG creates a scalar source starting at seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Uint32 advances the generator and returns the raw state.
func (g *LCG) Uint32() uint32 {
	g.state = g.state*LCGMul + LCGInc
	return g.state
}

// Next returns the next uniform value in (0, 1).
func (g *LCG) Next() float32 {
	return ToUnit(g.Uint32())
}

// State returns the current internal state.
func (g *LCG) State() uint32 {
	return g.state
}
