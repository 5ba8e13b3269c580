// Package analysis holds the statistics used to judge a sample stream against
// its target normal distribution: bucket counts, residual sum of squares of
// cumulative fractions, Kolmogorov–Smirnov statistics and moments.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Layout describes Count equal-width buckets starting at Start.
type Layout struct {
	Start float64
	Width float64
	Count int
}

// CenteredLayout places count buckets of width around mean, half below and
// half above; with odd count the extra bucket goes above.
func CenteredLayout(mean, width float64, count int) Layout {
	low := count / 2
	return Layout{Start: mean - width*float64(low), Width: width, Count: count}
}

// Lower returns the lower edge of bucket i.
func (l Layout) Lower(i int) float64 {
	return l.Start + l.Width*float64(i)
}

// Upper returns the upper (exclusive) edge of bucket i.
func (l Layout) Upper(i int) float64 {
	return l.Lower(i + 1)
}

// Counts buckets data into l. Values outside [Start, Start+Count*Width) are dropped.
func Counts(data []float32, l Layout) []int {
	counts := make([]int, l.Count)
	if l.Width <= 0 {
		return counts
	}
	for _, v := range data {
		idx := math.Floor((float64(v) - l.Start) / l.Width)
		if idx >= 0 && idx < float64(l.Count) {
			counts[int(idx)]++
		}
	}
	return counts
}

// CumulativeFractions returns the running sum of counts divided by total.
func CumulativeFractions(counts []int, total int) []float64 {
	out := make([]float64, len(counts))
	if total <= 0 {
		return out
	}
	sum := 0
	for i, c := range counts {
		sum += c
		out[i] = float64(sum) / float64(total)
	}
	return out
}

// BucketRow is one line of the accuracy table.
type BucketRow struct {
	Lower       float64
	Count       int
	Cumulative  float64 // empirical fraction below the upper edge
	Theoretical float64 // Φ((upper-mean)/stdDev)
	Residual    float64
}

// Accuracy is the cumulative-fraction comparison of data against N(mean, stdDev²).
type Accuracy struct {
	Rows []BucketRow
	RSS  float64
}

// CompareCDF buckets data and compares the cumulative fraction at each upper
// edge to the normal CDF. RSS is the sum of squared residuals.
func CompareCDF(data []float32, mean, stdDev float64, l Layout) Accuracy {
	counts := Counts(data, l)
	cum := CumulativeFractions(counts, len(data))
	dist := distuv.Normal{Mu: mean, Sigma: stdDev}
	acc := Accuracy{Rows: make([]BucketRow, l.Count)}
	for i := range counts {
		theo := dist.CDF(l.Upper(i))
		res := cum[i] - theo
		acc.Rows[i] = BucketRow{
			Lower:       l.Lower(i),
			Count:       counts[i],
			Cumulative:  cum[i],
			Theoretical: theo,
			Residual:    res,
		}
		acc.RSS += res * res
	}
	return acc
}

// ResidualSquareSum is CompareCDF(...).RSS.
func ResidualSquareSum(data []float32, mean, stdDev float64, l Layout) float64 {
	return CompareCDF(data, mean, stdDev, l).RSS
}
