package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ic-timon/nd-rng/simd"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("", envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 3_000_000, cfg.TimingCount)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ndbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mean: 1.5\nvariance: 4\ncount: 500\ntier: sse4\nplot: true\n"), 0o644))

	cfg, err := LoadConfig(path, envMap(map[string]string{
		"NDRNG_COUNT": "700",
		"NDRNG_SEED":  "12",
		"NDRNG_PLOT":  "off",
	}))
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), cfg.Mean)
	assert.Equal(t, float32(4), cfg.Variance)
	assert.Equal(t, 700, cfg.Count)
	assert.Equal(t, uint64(12), cfg.Seed)
	assert.Equal(t, "sse4", cfg.Tier)
	assert.False(t, cfg.Plot)
	assert.Equal(t, 50, cfg.Buckets)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), envMap(nil))
	assert.Error(t, err)

	_, err = LoadConfig("", envMap(map[string]string{"NDRNG_VARIANCE": "abc"}))
	assert.Error(t, err)
}

func TestFlagsOverrideConfig(t *testing.T) {
	cmd := newAccuracyCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--mean=-3", "--buckets=20"}))
	cfg := DefaultConfig()
	require.NoError(t, cfg.applyFlags(cmd))
	assert.Equal(t, float32(-3), cfg.Mean)
	assert.Equal(t, 20, cfg.Buckets)
	assert.Equal(t, float32(16), cfg.Variance)

	cmd = newAccuracyCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--variance", "0"}))
	assert.Error(t, DefaultConfig().applyFlags(cmd))
}

func TestResolveTier(t *testing.T) {
	tier, err := resolveTier("best")
	require.NoError(t, err)
	assert.Equal(t, simd.Best(), tier)

	tier, err = resolveTier("scalar")
	require.NoError(t, err)
	assert.Equal(t, simd.TierScalar, tier)

	_, err = resolveTier("avx512")
	assert.Error(t, err)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 500\n"), 0o644))

	cfg, err := LoadConfig(path, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Count)
	assert.Equal(t, float32(5), cfg.Mean)
	assert.Equal(t, float32(16), cfg.Variance)

	require.NoError(t, os.WriteFile(path, []byte("mean: 0\n"), 0o644))
	cfg, err = LoadConfig(path, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, float32(0), cfg.Mean)
}

func TestTimingCountFlag(t *testing.T) {
	cmd := newTimingCmd()
	require.NotNil(t, cmd.Flags().Lookup("timing-count"))
	require.NoError(t, cmd.ParseFlags([]string{"--timing-count=1000"}))
	cfg := DefaultConfig()
	require.NoError(t, cfg.applyFlags(cmd))
	assert.Equal(t, 1000, cfg.TimingCount)
	assert.Equal(t, 10_000, cfg.Count)
}
