package analysis

import (
	"math"
	"sort"
)

// Quantile computes the p-th quantile (p in [0,1]) of values using linear
// interpolation between closest ranks. montanaflynn's Percentile follows a
// nearest-rank style convention, so quantiles are computed locally to match
// the standard interpolating definition (numpy/pandas default).
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}

	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Round2 rounds to two decimal places for display values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place for percentage values, half to even,
// so frequencies landing on an exact half (16 values at 6.25% each) do not
// all round up and push the displayed sum past 100.
func Round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
