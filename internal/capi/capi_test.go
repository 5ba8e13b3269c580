package capi

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ic-timon/nd-rng/analysis"
	"github.com/ic-timon/nd-rng/simd"
)

func TestUninitialised(t *testing.T) {
	b := New()
	assert.False(t, b.Initialised())
	assert.True(t, math.IsNaN(float64(b.NextFloat())))
	for _, tier := range simd.Tiers {
		assert.Nil(t, b.Floats(tier, 16), "%s", tier)
	}
	assert.Zero(t, b.Outstanding())
}

func TestFloatsAndRelease(t *testing.T) {
	b := New()
	b.Create(5, 16)
	require.True(t, b.Initialised())
	assert.Nil(t, b.Floats(simd.TierScalar, 0))

	for _, tier := range simd.Tiers {
		if !simd.Supported(tier) {
			continue
		}
		ptr := b.Floats(tier, 10_000)
		require.NotNil(t, ptr, "%s", tier)
		data := unsafe.Slice((*float32)(ptr), 10_000)
		assert.False(t, analysis.HasNonFinite(data))
		mean, _ := analysis.Moments(data)
		assert.InDelta(t, 5, mean, 0.3, "%s", tier)
		assert.True(t, b.Release(ptr))
		assert.False(t, b.Release(ptr))
	}
	assert.Zero(t, b.Outstanding())
	assert.False(t, b.Release(nil))
}

func TestCreateReplacesParameters(t *testing.T) {
	b := New()
	b.Create(0, 1)
	b.NextFloat()
	b.Create(1000, 1)
	assert.InDelta(t, 1000, b.NextFloat(), 10)
}

func TestUnsupportedTierLeavesNoBuffer(t *testing.T) {
	b := New()
	b.Create(0, 1)
	assert.Panics(t, func() { b.Floats(simd.Tier(9), 32) })
	assert.Zero(t, b.Outstanding())
}
