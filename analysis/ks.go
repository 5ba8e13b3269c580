package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// KSNormal is the one-sample Kolmogorov–Smirnov test of data against
// N(mean, stdDev²). It returns the statistic D and its asymptotic p-value.
func KSNormal(data []float32, mean, stdDev float64) (d, p float64) {
	n := len(data)
	if n == 0 {
		return 0, 1
	}
	x := sortedFloat64(data)
	dist := distuv.Normal{Mu: mean, Sigma: stdDev}
	fn := float64(n)
	for i, v := range x {
		cdf := dist.CDF(v)
		lo := cdf - float64(i)/fn
		hi := float64(i+1)/fn - cdf
		if lo > d {
			d = lo
		}
		if hi > d {
			d = hi
		}
	}
	return d, ksProb(d, fn)
}

// KSTwoSample compares two samples. D comes from gonum's stat.KolmogorovSmirnov.
func KSTwoSample(a, b []float32) (d, p float64) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 1
	}
	x := sortedFloat64(a)
	y := sortedFloat64(b)
	d = stat.KolmogorovSmirnov(x, nil, y, nil)
	na, nb := float64(len(a)), float64(len(b))
	return d, ksProb(d, na*nb/(na+nb))
}

// ksProb evaluates the Kolmogorov survival function at the effective sample
// size ne, with the Stephens small-sample correction.
func ksProb(d, ne float64) float64 {
	sq := math.Sqrt(ne)
	return kolmogorovQ((sq + 0.12 + 0.11/sq) * d)
}

// kolmogorovQ is Q(λ) = 2 Σ (-1)^(j-1) exp(-2 j² λ²).
func kolmogorovQ(lambda float64) float64 {
	if lambda < 0.2 {
		return 1
	}
	const eps1, eps2 = 1e-6, 1e-16
	a2 := -2 * lambda * lambda
	sum, termPrev := 0.0, 0.0
	sign := 2.0
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(a2*float64(j*j))
		sum += term
		if math.Abs(term) <= eps1*termPrev || math.Abs(term) <= eps2*sum {
			return clamp01(sum)
		}
		sign = -sign
		termPrev = math.Abs(term)
	}
	// did not converge: λ is tiny
	return 1
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func sortedFloat64(data []float32) []float64 {
	x := make([]float64, len(data))
	for i, v := range data {
		x[i] = float64(v)
	}
	sort.Float64s(x)
	return x
}
