package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// TimingStats 多轮耗时统计
type TimingStats struct {
	MinMs float64
	P50Ms float64
	AvgMs float64
	MaxMs float64
	N     int
}

// AccuracyRow 精度报告中单个分桶的一行
type AccuracyRow struct {
	RunID       string
	Source      string
	BucketLower float64
	Count       int
	Cumulative  float64
	Theoretical float64
	Residual    float64
}

// SummaryRow 精度报告中每个生成器的汇总
type SummaryRow struct {
	RunID    string
	Source   string
	N        int
	Mean     float64
	Variance float64
	RSS      float64
	KSD      float64
	KSP      float64
}

// TimingRow 耗时报告单行
type TimingRow struct {
	RunID       string
	Source      string
	Count       int
	Runs        int
	MinMs       float64
	P50Ms       float64
	AvgMs       float64
	NsPerSample float64
	AllocBytes  uint64
	GCCount     uint32
}

// Percentile 计算切片中第 p 百分位（0-100），输入需已排序
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

// TimingStatsFromDurations 从每轮耗时计算 min/P50/avg/max
func TimingStatsFromDurations(durations []time.Duration) TimingStats {
	if len(durations) == 0 {
		return TimingStats{}
	}
	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
		sum += ms[i]
	}
	sort.Float64s(ms)
	return TimingStats{
		MinMs: ms[0],
		P50Ms: Percentile(ms, 50),
		AvgMs: sum / float64(len(ms)),
		MaxMs: ms[len(ms)-1],
		N:     len(ms),
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}

// WriteAccuracyCSV 写入分桶精度报告
func WriteAccuracyCSV(rows []AccuracyRow, path string) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.RunID,
			r.Source,
			fmt.Sprintf("%.2f", r.BucketLower),
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%.6f", r.Cumulative),
			fmt.Sprintf("%.6f", r.Theoretical),
			fmt.Sprintf("%.6g", r.Residual),
		})
	}
	return writeCSV(path, []string{"RunID", "Source", "BucketLower", "Count", "Cumulative", "Theoretical", "Residual"}, out)
}

// WriteSummaryCSV 写入精度汇总报告
func WriteSummaryCSV(rows []SummaryRow, path string) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.RunID,
			r.Source,
			fmt.Sprintf("%d", r.N),
			fmt.Sprintf("%.6f", r.Mean),
			fmt.Sprintf("%.6f", r.Variance),
			fmt.Sprintf("%.6g", r.RSS),
			fmt.Sprintf("%.6f", r.KSD),
			fmt.Sprintf("%.6f", r.KSP),
		})
	}
	return writeCSV(path, []string{"RunID", "Source", "N", "Mean", "Variance", "RSS", "KSD", "KSP"}, out)
}

// WriteTimingCSV 写入耗时报告
func WriteTimingCSV(rows []TimingRow, path string) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.RunID,
			r.Source,
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%d", r.Runs),
			fmt.Sprintf("%.3f", r.MinMs),
			fmt.Sprintf("%.3f", r.P50Ms),
			fmt.Sprintf("%.3f", r.AvgMs),
			fmt.Sprintf("%.3f", r.NsPerSample),
			fmt.Sprintf("%d", r.AllocBytes),
			fmt.Sprintf("%d", r.GCCount),
		})
	}
	return writeCSV(path, []string{"RunID", "Source", "Count", "Runs", "MinMs", "P50Ms", "AvgMs", "NsPerSample", "AllocBytes", "GCCount"}, out)
}

// ReportDir 默认报告输出目录
const ReportDir = "report"

// ReportPath 生成 dir 下带日期和运行 ID 前缀的报告路径
func ReportPath(dir, prefix, runID, ext string) string {
	if dir == "" {
		dir = ReportDir
	}
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	return filepath.Join(dir, prefix+time.Now().Format("20060102")+"_"+short+ext)
}

// WriteJSON 写入 JSON 报告（通用）
func WriteJSON(v interface{}, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
