package analysis

import (
	"math"

	"github.com/viterin/vek/vek32"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics of a sample.
type Summary struct {
	N        int
	Mean     float64
	Variance float64 // unbiased
	Min      float32
	Max      float32
}

// Moments returns the sample mean and unbiased variance.
func Moments(data []float32) (mean, variance float64) {
	if len(data) == 0 {
		return 0, 0
	}
	x := make([]float64, len(data))
	for i, v := range data {
		x[i] = float64(v)
	}
	return stat.MeanVariance(x, nil)
}

// Summarize computes Summary for data.
func Summarize(data []float32) Summary {
	s := Summary{N: len(data)}
	if len(data) == 0 {
		return s
	}
	s.Mean, s.Variance = Moments(data)
	s.Min = vek32.Min(data)
	s.Max = vek32.Max(data)
	return s
}

// HasNonFinite reports whether data contains NaN or ±Inf.
func HasNonFinite(data []float32) bool {
	for _, v := range data {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return true
		}
	}
	return false
}
