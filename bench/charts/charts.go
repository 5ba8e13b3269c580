// Package charts 将精度结果渲染为 PNG（gonum/plot）
package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/ic-timon/nd-rng/analysis"
)

// Series 一组带名字的样本
type Series struct {
	Name string
	Data []float32
}

// Histogram 画出各组样本的归一化直方图，并叠加 N(mean, stdDev²) 的密度曲线
func Histogram(path, title string, mean, stdDev float64, bins int, series ...Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "density"

	for i, s := range series {
		vals := make(plotter.Values, len(s.Data))
		for j, v := range s.Data {
			vals[j] = float64(v)
		}
		h, err := plotter.NewHist(vals, bins)
		if err != nil {
			return fmt.Errorf("histogram %s: %w", s.Name, err)
		}
		h.Normalize(1)
		h.FillColor = nil
		h.LineStyle.Color = plotutil.Color(i)
		p.Add(h)
		p.Legend.Add(s.Name, h)
	}

	dist := distuv.Normal{Mu: mean, Sigma: stdDev}
	pdf := plotter.NewFunction(dist.Prob)
	pdf.Color = plotutil.Color(len(series))
	pdf.Width = vg.Points(1.5)
	p.Add(pdf)
	p.Legend.Add("pdf", pdf)
	p.Legend.Top = true
	p.X.Min = mean - 5*stdDev
	p.X.Max = mean + 5*stdDev

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// Residuals 画出各生成器在每个分桶上边界处的 CDF 残差
func Residuals(path, title string, acc map[string]analysis.Accuracy, order []string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "bucket lower edge"
	p.Y.Label.Text = "empirical - Φ"
	p.Add(plotter.NewGrid())

	var args []interface{}
	for _, name := range order {
		a, ok := acc[name]
		if !ok {
			continue
		}
		pts := make(plotter.XYs, len(a.Rows))
		for i, r := range a.Rows {
			pts[i].X = r.Lower
			pts[i].Y = r.Residual
			if math.IsNaN(r.Residual) {
				pts[i].Y = 0
			}
		}
		args = append(args, fmt.Sprintf("%s (RSS %.2g)", name, a.RSS), pts)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
