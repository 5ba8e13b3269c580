package simd

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ic-timon/nd-rng/uniform"
)

func TestTransformPairKnownValues(t *testing.T) {
	// u1 = e^-1/2 gives radius 1; u2 = 0 puts all of it on the cosine output.
	u1 := float32(math.Exp(-0.5))
	z0, z1 := TransformPair(u1, 0, 5, 4)
	assert.InDelta(t, 9.0, z0, 1e-5)
	assert.InDelta(t, 5.0, z1, 1e-5)

	z0, z1 = TransformPair(u1, 0.25, 0, 1)
	assert.InDelta(t, 0.0, z0, 1e-5)
	assert.InDelta(t, 1.0, z1, 1e-5)
}

func TestTransformPairTinyU1IsFinite(t *testing.T) {
	for _, u1 := range []float32{1e-7, uniform.ToUnit(0), math.SmallestNonzeroFloat32 * (1 << 30)} {
		for _, u2 := range []float32{uniform.ToUnit(0), 0.1, 0.5, 0.9, uniform.ToUnit(^uint32(0))} {
			z0, z1 := TransformPair(u1, u2, 5, 4)
			require.False(t, isNonFinite(z0), "u1=%g u2=%g z0=%g", u1, u2, z0)
			require.False(t, isNonFinite(z1), "u1=%g u2=%g z1=%g", u1, u2, z1)
		}
	}
}

func TestFillScalarOddLengthDiscardsSecond(t *testing.T) {
	src := uniform.NewLCG(3)
	dst := make([]float32, 5)
	FillScalar(dst, src, 0, 1)

	ref := uniform.NewLCG(3)
	var want []float32
	for i := 0; i < 3; i++ {
		z0, z1 := TransformPair(ref.Next(), ref.Next(), 0, 1)
		want = append(want, z0, z1)
	}
	assert.Equal(t, want[:5], dst)
	// three pairs consumed: both streams must be at the same state
	assert.Equal(t, ref.State(), src.State())
}

func TestFillEmpty(t *testing.T) {
	src := uniform.NewLCG(1)
	before := src.State()
	l4 := uniform.NewSeeder(1).Lanes4()
	l8 := uniform.NewSeeder(1).Lanes8()
	l4Before, l8Before := l4, l8

	FillScalar(nil, src, 0, 1)
	if Supported(TierSSE4) {
		FillSSE4([]float32{}, &l4, src, 0, 1)
	}
	if Supported(TierAVX2) {
		FillAVX2([]float32{}, &l8, src, 0, 1)
	}
	assert.Equal(t, before, src.State())
	assert.Equal(t, l4Before, l4)
	assert.Equal(t, l8Before, l8)
}

func TestVectorLayoutMatchesLaneStreams(t *testing.T) {
	for _, tier := range []Tier{TierSSE4, TierAVX2} {
		if !Supported(tier) {
			t.Logf("%s not supported, skipping", tier)
			continue
		}
		w := tier.Width()
		seeder := uniform.NewSeeder(2024)
		lanes := make([]uint32, w)
		if w == 4 {
			l := seeder.Lanes4()
			copy(lanes, l[:])
		} else {
			l := seeder.Lanes8()
			copy(lanes, l[:])
		}

		const blocks = 64
		got := make([]float32, blocks*2*w)
		fillTier(t, tier, got, lanes, 1.5, 2)

		scalars := make([]*uniform.LCG, w)
		for i := range scalars {
			scalars[i] = uniform.NewLCG(seederLane(w, i))
		}
		for b := 0; b < blocks; b++ {
			for i := 0; i < w; i++ {
				z0, z1 := TransformPair(scalars[i].Next(), scalars[i].Next(), 1.5, 2)
				off := b * 2 * w
				assert.InDelta(t, z0, got[off+i], tolerance(z0), "%s block %d lane %d cos", tier, b, i)
				assert.InDelta(t, z1, got[off+w+i], tolerance(z1), "%s block %d lane %d sin", tier, b, i)
			}
		}
	}
}

func TestNativeKernelMatchesGoLanes(t *testing.T) {
	for _, tier := range []Tier{TierSSE4, TierAVX2} {
		if !Native(tier) {
			t.Logf("%s has no native kernel here, skipping", tier)
			continue
		}
		w := tier.Width()
		lanesA := make([]uint32, w)
		for i := range lanesA {
			lanesA[i] = uint32(i*7919 + 17)
		}
		lanesB := append([]uint32(nil), lanesA...)

		n := 4096 * 2 * w
		native := make([]float32, n)
		goLanes := make([]float32, n)
		fillTier(t, tier, native, lanesA, -3, 0.5)
		boxMullerLanesGo(goLanes, lanesB, -3, 0.5)

		require.Equal(t, lanesB, lanesA, "lane states must advance identically")
		for i := range native {
			if math.Abs(float64(native[i]-goLanes[i])) > tolerance(goLanes[i]) {
				t.Fatalf("%s index %d: native=%g go=%g", tier, i, native[i], goLanes[i])
			}
		}
	}
}

func TestVectorTailUsesScalarSource(t *testing.T) {
	if !Supported(TierAVX2) {
		t.Skip("AVX2 not supported")
	}
	lanes := uniform.NewSeeder(5).Lanes8()
	src := uniform.NewLCG(11)
	dst := make([]float32, avx2Block*3+5)
	FillAVX2(dst, &lanes, src, 0, 1)

	ref := uniform.NewLCG(11)
	tail := make([]float32, 5)
	FillScalar(tail, ref, 0, 1)
	assert.Equal(t, tail, dst[avx2Block*3:])
}

func TestUnsupportedTierPanics(t *testing.T) {
	saved := tierSupported
	defer func() { tierSupported = saved }()
	tierSupported[TierAVX2] = false

	lanes := uniform.Lanes8{}
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrUnsupportedTier))
	}()
	FillAVX2(make([]float32, 32), &lanes, uniform.NewLCG(1), 0, 1)
}

func TestParseTier(t *testing.T) {
	cases := map[string]Tier{
		"scalar": TierScalar, "sse": TierSSE4, "narrow": TierSSE4, "SSE4": TierSSE4,
		"avx": TierAVX2, "wide": TierAVX2, "avx2": TierAVX2,
	}
	for in, want := range cases {
		got, err := ParseTier(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTier("neon")
	assert.Error(t, err)
}

func TestInfoListsAllTiers(t *testing.T) {
	info := Info()
	require.Len(t, info.Tiers, len(Tiers))
	assert.True(t, info.Tiers[0].Supported)
	assert.True(t, Supported(Best()))
	for _, ti := range info.Tiers {
		assert.NotEmpty(t, ti.Implementation)
	}
}

func fillTier(t *testing.T, tier Tier, dst []float32, lanes []uint32, mean, stdDev float32) {
	t.Helper()
	switch tier {
	case TierSSE4:
		boxMullerSSE4(dst, lanes, mean, stdDev)
	case TierAVX2:
		boxMullerAVX2(dst, lanes, mean, stdDev)
	default:
		t.Fatalf("no lane kernel for %s", tier)
	}
}

// seederLane replays NewSeeder(2024) to recover the initial state of lane i.
func seederLane(w, i int) uint32 {
	s := uniform.NewSeeder(2024)
	if w == 4 {
		l := s.Lanes4()
		return l[i]
	}
	l := s.Lanes8()
	return l[i]
}

func tolerance(want float32) float64 {
	return 2e-4 * (1 + math.Abs(float64(want)))
}

func isNonFinite(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
