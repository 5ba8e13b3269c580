package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ic-timon/nd-rng/bench/metrics"
)

// Config holds harness parameters. Sources apply in order: YAML file, defaults
// for unset fields, NDRNG_* environment variables, then explicit flags.
type Config struct {
	Mean        float32 `yaml:"mean"`
	Variance    float32 `yaml:"variance"`
	Count       int     `yaml:"count"`        // accuracy / dump sample count, default 10000
	TimingCount int     `yaml:"timing_count"` // timing sample count, default 3000000
	Runs        int     `yaml:"runs"`         // timing repetitions, default 5
	Seed        uint64  `yaml:"seed"`         // 0 = clock
	Tier        string  `yaml:"tier"`         // scalar | sse4 | avx2 | best
	Buckets     int     `yaml:"buckets"`      // default 50
	BucketWidth float64 `yaml:"bucket_width"` // default 2
	ReportDir   string  `yaml:"report_dir"`
	Plot        bool    `yaml:"plot"`
	Offheap     bool    `yaml:"offheap"` // dump through a C.malloc buffer
}

// DefaultConfig returns the harness defaults.
func DefaultConfig() *Config {
	return &Config{
		Mean:        5,
		Variance:    16,
		Count:       10_000,
		TimingCount: 3_000_000,
		Runs:        5,
		Tier:        "best",
		Buckets:     50,
		BucketWidth: 2,
		ReportDir:   metrics.ReportDir,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise fills unset fields.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	d := DefaultConfig()
	if c.Variance <= 0 {
		c.Variance = d.Variance
	}
	if c.Count <= 0 {
		c.Count = d.Count
	}
	if c.TimingCount <= 0 {
		c.TimingCount = d.TimingCount
	}
	if c.Runs <= 0 {
		c.Runs = d.Runs
	}
	if c.Tier == "" {
		c.Tier = d.Tier
	}
	if c.Buckets <= 0 {
		c.Buckets = d.Buckets
	}
	if c.BucketWidth <= 0 {
		c.BucketWidth = d.BucketWidth
	}
	if c.ReportDir == "" {
		c.ReportDir = d.ReportDir
	}
	return c
}

// LoadConfig reads path (if non-empty) over the defaults, normalises it and
// applies the environment. Keys missing from the file keep their default.
func LoadConfig(path string, getenv func(string) string) (*Config, error) {
	var cfg *Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		cfg = DefaultConfig()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg = cfg.OrDefault()
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	floatVar := func(key string, dst *float32) error {
		if v := getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = float32(f)
		}
		return nil
	}
	intVar := func(key string, dst *int) error {
		if v := getenv(key); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = i
		}
		return nil
	}
	if err := floatVar("NDRNG_MEAN", &c.Mean); err != nil {
		return err
	}
	if err := floatVar("NDRNG_VARIANCE", &c.Variance); err != nil {
		return err
	}
	if err := intVar("NDRNG_COUNT", &c.Count); err != nil {
		return err
	}
	if err := intVar("NDRNG_TIMING_COUNT", &c.TimingCount); err != nil {
		return err
	}
	if err := intVar("NDRNG_RUNS", &c.Runs); err != nil {
		return err
	}
	if v := getenv("NDRNG_SEED"); v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("NDRNG_SEED: %w", err)
		}
		c.Seed = s
	}
	if v := getenv("NDRNG_TIER"); v != "" {
		c.Tier = v
	}
	if v := getenv("NDRNG_REPORT_DIR"); v != "" {
		c.ReportDir = v
	}
	if v := getenv("NDRNG_PLOT"); v != "" {
		c.Plot = parseBool(v, c.Plot)
	}
	if v := getenv("NDRNG_OFFHEAP"); v != "" {
		c.Offheap = parseBool(v, c.Offheap)
	}
	return nil
}

func parseBool(v string, fallback bool) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return fallback
}

// registerFlags adds the shared flags to cmd, with DefaultConfig values shown in help.
func registerFlags(cmd *cobra.Command) {
	d := DefaultConfig()
	f := cmd.Flags()
	f.Float32("mean", d.Mean, "distribution mean")
	f.Float32("variance", d.Variance, "distribution variance (> 0)")
	f.Int("count", d.Count, "number of samples")
	f.Uint64("seed", 0, "generator seed (0 = clock)")
	f.String("tier", d.Tier, "scalar | sse4 | avx2 | best")
}

// applyFlags overrides cfg with flags the user set explicitly.
func (c *Config) applyFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Changed(name) {
			err = apply()
		}
	}
	set("mean", func() (e error) { c.Mean, e = f.GetFloat32("mean"); return })
	set("variance", func() (e error) { c.Variance, e = f.GetFloat32("variance"); return })
	set("count", func() (e error) { c.Count, e = f.GetInt("count"); return })
	set("timing-count", func() (e error) { c.TimingCount, e = f.GetInt("timing-count"); return })
	set("runs", func() (e error) { c.Runs, e = f.GetInt("runs"); return })
	set("seed", func() (e error) { c.Seed, e = f.GetUint64("seed"); return })
	set("tier", func() (e error) { c.Tier, e = f.GetString("tier"); return })
	set("buckets", func() (e error) { c.Buckets, e = f.GetInt("buckets"); return })
	set("bucket-width", func() (e error) { c.BucketWidth, e = f.GetFloat64("bucket-width"); return })
	set("plot", func() (e error) { c.Plot, e = f.GetBool("plot"); return })
	set("offheap", func() (e error) { c.Offheap, e = f.GetBool("offheap"); return })
	set("report-dir", func() (e error) { c.ReportDir, e = f.GetString("report-dir"); return })
	if err != nil {
		return err
	}
	if !(c.Variance > 0) {
		return fmt.Errorf("variance must be > 0, got %g", c.Variance)
	}
	if c.Count < 0 || c.TimingCount < 0 {
		return fmt.Errorf("count must be >= 0")
	}
	if c.Runs <= 0 {
		return fmt.Errorf("runs must be > 0, got %d", c.Runs)
	}
	return nil
}
