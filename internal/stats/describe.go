// internal/stats/describe.go
// Package stats holds the numeric primitives behind the comparison pipeline.
// Undefined results are reported as NaN, never as zero.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of values, or NaN when values is empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// StdDev returns the sample standard deviation (n-1 denominator), or NaN
// with fewer than two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil)
}

// Median returns the 50th percentile of values.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Quantile returns the p-th quantile (0 <= p <= 1) using linear
// interpolation between order statistics (Hyndman-Fan type 7).
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 || math.IsNaN(p) {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	if len(sorted) == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := p * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	weight := pos - float64(lower)
	return sorted[lower] + weight*(sorted[upper]-sorted[lower])
}

// Min returns the smallest value, or NaN when values is empty.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	minVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
	}
	return minVal
}

// Max returns the largest value, or NaN when values is empty.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// PercentReduction returns (baseline-treatment)/baseline*100, or NaN when the
// baseline is zero or either input is undefined.
func PercentReduction(baseline, treatment float64) float64 {
	if baseline == 0 || math.IsNaN(baseline) || math.IsNaN(treatment) || math.IsInf(baseline, 0) {
		return math.NaN()
	}
	return (baseline - treatment) / baseline * 100
}
