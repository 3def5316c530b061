package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyInput signals that a statistic was requested over zero values
var ErrEmptyInput = errors.New("empty input")

// ErrInvalidPercentile signals a percentile outside the 1-100 range
var ErrInvalidPercentile = errors.New("percentile must be between 1 and 100")

// Sum returns the sum of the provided values
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}

	return total
}

// Mean returns the arithmetic mean of the provided values. An empty input
// returns ErrEmptyInput so the caller decides how a missing measurement is
// reported instead of letting a NaN leak into comparisons.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}

	return Sum(values) / float64(len(values)), nil
}

// Percentile computes the p-th percentile using the NIST linear interpolation
// estimator: sort ascending, rank r = (p/100)*(n+1) with 1-based indexing,
// interpolating between neighbours when r is fractional. Ranks falling outside
// the sample clamp to the extremes.
func Percentile(values []float64, p int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	if p < 1 || p > 100 {
		return 0, ErrInvalidPercentile
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	rank := float64(p) / 100 * float64(n+1)
	if rank <= 1 {
		return sorted[0], nil
	}
	if rank >= float64(n) {
		return sorted[n-1], nil
	}

	whole := math.Floor(rank)
	frac := rank - whole
	if frac == 0 {
		return sorted[int(whole)-1], nil
	}

	lo := sorted[int(whole)-1]
	hi := sorted[int(whole)]

	return lo + frac*(hi-lo), nil
}
