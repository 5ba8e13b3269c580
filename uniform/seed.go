package uniform

import (
	"math/rand/v2"
	"time"
)

// seedStream is the PCG stream selector used to expand a 64-bit seed.
const seedStream = 0x9e3779b97f4a7c15

// Seeder expands one 64-bit seed into the scalar and lane states.
type Seeder struct {
	seed uint64
	rng  *rand.Rand
}

// NewSeeder returns a seeder for seed. A zero seed is replaced by the current
// time in nanoseconds, so two generators created apart get different streams.
func NewSeeder(seed uint64) *Seeder {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Seeder{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seedStream)),
	}
}

// Seed returns the effective seed (after time substitution).
func (s *Seeder) Seed() uint64 {
	return s.seed
}

// LCG returns a freshly seeded scalar source.
func (s *Seeder) LCG() *LCG {
	return NewLCG(s.rng.Uint32())
}

// Lanes4 fills four pairwise distinct lane states.
func (s *Seeder) Lanes4() (l Lanes4) {
	s.fillDistinct(l[:])
	return l
}

// Lanes8 fills eight pairwise distinct lane states.
func (s *Seeder) Lanes8() (l Lanes8) {
	s.fillDistinct(l[:])
	return l
}

// fillDistinct draws lane seeds until no two lanes share a state. Equal states
// would make two lanes emit identical streams for the whole session.
func (s *Seeder) fillDistinct(dst []uint32) {
	for i := 0; i < len(dst); {
		dst[i] = s.rng.Uint32()
		if !containsState(dst[:i], dst[i]) {
			i++
		}
	}
}

func containsState(states []uint32, v uint32) bool {
	for _, s := range states {
		if s == v {
			return true
		}
	}
	return false
}
