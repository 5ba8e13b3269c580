package normal

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// ErrPrecondition is wrapped by every panic raised for caller contract violations
// (non-positive variance, negative count).
var ErrPrecondition = errors.New("normal: precondition violated")

// Params are the distribution parameters. StdDev is always sqrt(Variance).
type Params struct {
	Mean     float32
	Variance float32
	StdDev   float32
}

// NewParams validates variance and derives the standard deviation.
// Panics (wrapping ErrPrecondition) if variance is not a positive finite number.
func NewParams(mean, variance float32) Params {
	if !(variance > 0) || math.IsInf(float64(variance), 1) {
		panic(fmt.Errorf("%w: variance must be > 0, got %g", ErrPrecondition, variance))
	}
	return Params{
		Mean:     mean,
		Variance: variance,
		StdDev:   math32.Sqrt(variance),
	}
}

func mustCount(n int) {
	if n < 0 {
		panic(fmt.Errorf("%w: negative sample count %d", ErrPrecondition, n))
	}
}
