package uniform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUnitBounds(t *testing.T) {
	lo := ToUnit(0)
	hi := ToUnit(^uint32(0))
	assert.Greater(t, lo, float32(0))
	assert.Less(t, hi, float32(1))
	assert.Equal(t, float32(1.0/(1<<24)), lo)
}

func TestLCGOpenInterval(t *testing.T) {
	g := NewLCG(0)
	for i := 0; i < 1_000_000; i++ {
		u := g.Next()
		if u <= 0 || u >= 1 {
			t.Fatalf("step %d: u=%g outside (0,1)", i, u)
		}
	}
}

func TestLCGMatchesRecurrence(t *testing.T) {
	g := NewLCG(12345)
	x := uint32(12345)
	for i := 0; i < 100; i++ {
		x = x*LCGMul + LCGInc
		require.Equal(t, x, g.Uint32())
	}
	assert.Equal(t, x, g.State())
}

func TestLCGMeanNearHalf(t *testing.T) {
	g := NewLCG(7)
	const n = 200_000
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(g.Next())
	}
	assert.InDelta(t, 0.5, sum/n, 0.005)
}

func TestLanesFollowScalarStreams(t *testing.T) {
	s := NewSeeder(42)
	lanes := s.Lanes8()
	scalars := make([]*LCG, len(lanes))
	for i, st := range lanes {
		scalars[i] = NewLCG(st)
	}
	for step := 0; step < 50; step++ {
		u := lanes.Next()
		for i := range u {
			require.Equal(t, scalars[i].Next(), u[i], "lane %d step %d", i, step)
		}
	}

	l4 := s.Lanes4()
	first := NewLCG(l4[0])
	u := l4.Next()
	assert.Equal(t, first.Next(), u[0])
}

func TestSeederDeterministic(t *testing.T) {
	a, b := NewSeeder(99), NewSeeder(99)
	assert.Equal(t, a.LCG().State(), b.LCG().State())
	assert.Equal(t, a.Lanes4(), b.Lanes4())
	assert.Equal(t, a.Lanes8(), b.Lanes8())
	assert.Equal(t, uint64(99), a.Seed())
}

func TestSeederLanesDistinct(t *testing.T) {
	l := NewSeeder(1).Lanes8()
	seen := map[uint32]bool{}
	for _, v := range l {
		assert.False(t, seen[v], "duplicate lane state %d", v)
		seen[v] = true
	}
}

func TestSeederZeroUsesClock(t *testing.T) {
	assert.NotZero(t, NewSeeder(0).Seed())
}
