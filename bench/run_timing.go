// 耗时对比：参考生成器与各 tier 多轮生成，记录耗时与分配
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ic-timon/nd-rng/bench/gen"
	"github.com/ic-timon/nd-rng/bench/metrics"
	"github.com/ic-timon/nd-rng/normal"
	"github.com/ic-timon/nd-rng/simd"
)

func newTimingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timing",
		Short: "Time bulk generation for the reference and every supported tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			_, err = timing(cfg)
			return err
		},
	}
	d := DefaultConfig()
	cmd.Flags().Float32("mean", d.Mean, "distribution mean")
	cmd.Flags().Float32("variance", d.Variance, "distribution variance (> 0)")
	cmd.Flags().Int("timing-count", d.TimingCount, "samples per run")
	cmd.Flags().Int("runs", d.Runs, "runs per source")
	cmd.Flags().Uint64("seed", 0, "generator seed (0 = clock)")
	return cmd
}

type timingSource struct {
	name     string
	generate func(n int) []float32
}

func timing(cfg *Config) ([]metrics.TimingRow, error) {
	runID := newRunID()
	g := normal.New(cfg.Mean, cfg.Variance, normal.WithSeed(cfg.Seed))
	ref := gen.NewReference(float64(cfg.Mean), float64(cfg.Variance), g.Seed())

	sources := []timingSource{{name: referenceSource, generate: ref.Floats}}
	for _, t := range simd.Tiers {
		if !simd.Supported(t) {
			log.Printf("skip %s: not supported on this CPU", t)
			continue
		}
		tier := t
		sources = append(sources, timingSource{
			name:     fmt.Sprintf("%s (%s)", tier, simd.Desc(tier)),
			generate: func(n int) []float32 { return g.FloatsTier(tier, n) },
		})
	}
	log.Printf("run %s: %s samples x %d runs", runID, humanize.Comma(int64(cfg.TimingCount)), cfg.Runs)

	var rows []metrics.TimingRow
	var sink []float32
	for _, src := range sources {
		durations := make([]time.Duration, cfg.Runs)
		var alloc uint64
		var gcs uint32
		for r := 0; r < cfg.Runs; r++ {
			metrics.GC()
			before := metrics.Take()
			t0 := time.Now()
			sink = src.generate(cfg.TimingCount)
			durations[r] = time.Since(t0)
			delta := metrics.Diff(before, metrics.Take())
			alloc += delta.AllocBytes
			gcs += delta.GCCount
		}
		stats := metrics.TimingStatsFromDurations(durations)
		row := metrics.TimingRow{
			RunID:      runID,
			Source:     src.name,
			Count:      cfg.TimingCount,
			Runs:       cfg.Runs,
			MinMs:      stats.MinMs,
			P50Ms:      stats.P50Ms,
			AvgMs:      stats.AvgMs,
			AllocBytes: alloc / uint64(cfg.Runs),
			GCCount:    gcs,
		}
		if cfg.TimingCount > 0 {
			row.NsPerSample = stats.MinMs * 1e6 / float64(cfg.TimingCount)
		}
		rows = append(rows, row)
		fmt.Printf("%-22s min=%8.2fms p50=%8.2fms avg=%8.2fms %6.2fns/sample alloc=%s gc=%d\n",
			src.name, stats.MinMs, stats.P50Ms, stats.AvgMs, row.NsPerSample, humanize.IBytes(row.AllocBytes), gcs)
	}
	_ = sink

	path := metrics.ReportPath(cfg.ReportDir, "timing_", runID, ".csv")
	if err := metrics.WriteTimingCSV(rows, path); err != nil {
		return nil, err
	}
	fmt.Printf("报告已写入 %s\n", path)
	return rows, nil
}
