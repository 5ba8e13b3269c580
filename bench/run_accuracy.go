// 精度对比：参考生成器 vs 指定 tier，分桶累计频率对照 Φ
package main

import (
	"fmt"
	"log"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ic-timon/nd-rng/analysis"
	"github.com/ic-timon/nd-rng/bench/charts"
	"github.com/ic-timon/nd-rng/bench/gen"
	"github.com/ic-timon/nd-rng/bench/metrics"
	"github.com/ic-timon/nd-rng/normal"
)

const referenceSource = "reference"

func newAccuracyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accuracy",
		Short: "Compare bucketed cumulative fractions against the normal CDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runAccuracy(cfg)
		},
	}
	registerFlags(cmd)
	d := DefaultConfig()
	cmd.Flags().Int("buckets", d.Buckets, "number of buckets")
	cmd.Flags().Float64("bucket-width", d.BucketWidth, "bucket width")
	cmd.Flags().Bool("plot", false, "also write PNG charts")
	return cmd
}

type accuracyResult struct {
	RunID   string
	Summary []metrics.SummaryRow
	Report  string
	Plots   []string
}

func runAccuracy(cfg *Config) error {
	_, err := accuracy(cfg)
	return err
}

func accuracy(cfg *Config) (*accuracyResult, error) {
	tier, err := resolveTier(cfg.Tier)
	if err != nil {
		return nil, err
	}
	res := &accuracyResult{RunID: newRunID()}
	g := normal.New(cfg.Mean, cfg.Variance, normal.WithSeed(cfg.Seed))
	mean := float64(cfg.Mean)
	stdDev := math.Sqrt(float64(cfg.Variance))
	log.Printf("run %s: N(%g, %g), %s samples, tier %s, seed %d",
		res.RunID, cfg.Mean, cfg.Variance, humanize.Comma(int64(cfg.Count)), tier, g.Seed())

	refData := gen.NewReference(mean, float64(cfg.Variance), g.Seed()).Floats(cfg.Count)
	genData := g.FloatsTier(tier, cfg.Count)
	if analysis.HasNonFinite(genData) {
		return nil, fmt.Errorf("%s produced non-finite samples", tier)
	}

	layout := analysis.CenteredLayout(mean, cfg.BucketWidth, cfg.Buckets)
	sources := []string{referenceSource, tier.String()}
	acc := map[string]analysis.Accuracy{
		referenceSource: analysis.CompareCDF(refData, mean, stdDev, layout),
		tier.String():   analysis.CompareCDF(genData, mean, stdDev, layout),
	}
	data := map[string][]float32{referenceSource: refData, tier.String(): genData}

	fmt.Printf("%10s %12s %12s %12s\n", "bucket", referenceSource, tier, "theoretical")
	for i := 0; i < layout.Count; i++ {
		r := acc[referenceSource].Rows[i]
		fmt.Printf("%10.2f %12.6f %12.6f %12.6f\n", r.Lower, r.Cumulative, acc[tier.String()].Rows[i].Cumulative, r.Theoretical)
	}

	var rows []metrics.AccuracyRow
	for _, src := range sources {
		for _, r := range acc[src].Rows {
			rows = append(rows, metrics.AccuracyRow{
				RunID:       res.RunID,
				Source:      src,
				BucketLower: r.Lower,
				Count:       r.Count,
				Cumulative:  r.Cumulative,
				Theoretical: r.Theoretical,
				Residual:    r.Residual,
			})
		}
		m, v := analysis.Moments(data[src])
		d, p := analysis.KSNormal(data[src], mean, stdDev)
		res.Summary = append(res.Summary, metrics.SummaryRow{
			RunID:    res.RunID,
			Source:   src,
			N:        len(data[src]),
			Mean:     m,
			Variance: v,
			RSS:      acc[src].RSS,
			KSD:      d,
			KSP:      p,
		})
		fmt.Printf("%s: mean=%.4f variance=%.4f RSS=%.3g KS D=%.4f p=%.4f\n", src, m, v, acc[src].RSS, d, p)
	}

	res.Report = metrics.ReportPath(cfg.ReportDir, "accuracy_", res.RunID, ".csv")
	if err := metrics.WriteAccuracyCSV(rows, res.Report); err != nil {
		return nil, err
	}
	summaryPath := metrics.ReportPath(cfg.ReportDir, "accuracy_summary_", res.RunID, ".csv")
	if err := metrics.WriteSummaryCSV(res.Summary, summaryPath); err != nil {
		return nil, err
	}
	fmt.Printf("报告已写入 %s, %s\n", res.Report, summaryPath)

	if cfg.Plot {
		hist := metrics.ReportPath(cfg.ReportDir, "accuracy_hist_", res.RunID, ".png")
		title := fmt.Sprintf("N(%g, %g), n=%d", cfg.Mean, cfg.Variance, cfg.Count)
		if err := charts.Histogram(hist, title, mean, stdDev, cfg.Buckets,
			charts.Series{Name: referenceSource, Data: refData},
			charts.Series{Name: tier.String(), Data: genData}); err != nil {
			return nil, err
		}
		resid := metrics.ReportPath(cfg.ReportDir, "accuracy_residuals_", res.RunID, ".png")
		if err := charts.Residuals(resid, "CDF residuals", acc, sources); err != nil {
			return nil, err
		}
		res.Plots = append(res.Plots, hist, resid)
		fmt.Printf("图表已写入 %s, %s\n", hist, resid)
	}
	return res, nil
}
