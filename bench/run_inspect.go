// 读取转储文件（mmap），打印头信息与统计量
package main

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ic-timon/nd-rng/analysis"
	"github.com/ic-timon/nd-rng/simd"
	"github.com/ic-timon/nd-rng/store"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Map a dump file and report moments, RSS and KS against its header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			_, err = inspect(cfg, args[0])
			return err
		},
	}
	d := DefaultConfig()
	cmd.Flags().Int("buckets", d.Buckets, "number of buckets")
	cmd.Flags().Float64("bucket-width", d.BucketWidth, "bucket width")
	return cmd
}

type inspectResult struct {
	Header  store.Header
	Summary analysis.Summary
	RSS     float64
	KSD     float64
	KSP     float64
}

func inspect(cfg *Config, path string) (*inspectResult, error) {
	v, err := store.OpenMmap(path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	defer v.Close()

	h := v.Header()
	samples := v.Samples()
	mean := float64(h.Mean)
	stdDev := math.Sqrt(float64(h.Variance))
	res := &inspectResult{Header: *h, Summary: analysis.Summarize(samples)}
	res.RSS = analysis.ResidualSquareSum(samples, mean, stdDev, analysis.CenteredLayout(mean, cfg.BucketWidth, cfg.Buckets))
	res.KSD, res.KSP = analysis.KSNormal(samples, mean, stdDev)

	fmt.Printf("file:     %s\n", path)
	fmt.Printf("format:   %s v%d\n", string(h.Magic[:]), h.Version)
	fmt.Printf("tier:     %s\n", simd.Tier(h.Tier))
	fmt.Printf("target:   N(%g, %g), seed %d\n", h.Mean, h.Variance, h.Seed)
	fmt.Printf("samples:  %s\n", humanize.Comma(int64(h.Count)))
	fmt.Printf("moments:  mean=%.4f variance=%.4f min=%.4f max=%.4f\n",
		res.Summary.Mean, res.Summary.Variance, res.Summary.Min, res.Summary.Max)
	fmt.Printf("RSS:      %.3g\n", res.RSS)
	fmt.Printf("KS:       D=%.4f p=%.4f\n", res.KSD, res.KSP)
	return res, nil
}
