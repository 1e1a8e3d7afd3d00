package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minCorrelationPairs is the smallest sample for which a rank correlation is reported.
const minCorrelationPairs = 3

// CorrelationResult holds a rank correlation coefficient and its p-value.
type CorrelationResult struct {
	Rho    float64
	PValue float64
	N      int
}

// Spearman computes the Spearman rank correlation between x and y and its
// two-sided p-value from the t approximation with n-2 degrees of freedom.
// Pairs with a missing value are dropped. Fewer than three pairs, mismatched
// lengths or zero variance yield NaN coefficients.
func Spearman(x, y []float64) CorrelationResult {
	undefined := CorrelationResult{Rho: math.NaN(), PValue: math.NaN()}
	if len(x) != len(y) {
		return undefined
	}

	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	n := len(xs)
	undefined.N = n
	if n < minCorrelationPairs || constant(xs) || constant(ys) {
		return undefined
	}

	rx, _ := Ranks(xs)
	ry, _ := Ranks(ys)
	rho := stat.Correlation(rx, ry, nil)
	if math.IsNaN(rho) {
		return undefined
	}
	rho = math.Max(-1, math.Min(1, rho))

	return CorrelationResult{Rho: rho, PValue: correlationPValue(rho, n), N: n}
}

func correlationPValue(rho float64, n int) float64 {
	df := float64(n - 2)
	denom := 1 - rho*rho
	if denom <= 0 {
		return 0
	}
	t := rho * math.Sqrt(df/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(math.Abs(t)))
	return math.Max(0, math.Min(1, p))
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
