// 压测入口：ndbench accuracy|timing|dump|inspect|caps
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ic-timon/nd-rng/bench/metrics"
	"github.com/ic-timon/nd-rng/simd"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ndbench",
		Short: "Accuracy and timing harness for the Box-Muller normal generator",
		Long: `ndbench compares the scalar, SSE4.1 and AVX2 generator tiers against a
reference normal generator and against the theoretical CDF.

Configuration is read from --config (YAML), then NDRNG_* environment
variables, then explicit flags.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", os.Getenv("NDRNG_CONFIG"), "YAML config file")
	root.PersistentFlags().String("report-dir", metrics.ReportDir, "report output directory")

	root.AddCommand(newAccuracyCmd())
	root.AddCommand(newTimingCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newCapsCmd())
	return root
}

// loadConfig resolves the effective configuration for cmd.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(path, os.Getenv)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyFlags(cmd); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveTier parses name, where "best" picks the widest tier this CPU supports.
func resolveTier(name string) (simd.Tier, error) {
	if strings.EqualFold(strings.TrimSpace(name), "best") {
		return simd.Best(), nil
	}
	t, err := simd.ParseTier(name)
	if err != nil {
		return t, err
	}
	if !simd.Supported(t) {
		return t, fmt.Errorf("%w: %s", simd.ErrUnsupportedTier, t)
	}
	return t, nil
}

func newRunID() string {
	return uuid.New().String()
}
