package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// exactSignedRankLimit is the number of non-zero differences below which the
// exact null distribution is used when there are no ties.
const exactSignedRankLimit = 50

var (
	// ErrLengthMismatch is returned when paired samples differ in length.
	ErrLengthMismatch = errors.New("paired samples must have the same length")
	// ErrNoDifferences is returned when every paired difference is zero or missing.
	ErrNoDifferences = errors.New("no non-zero paired differences")
)

// SignedRankResult is the outcome of a Wilcoxon signed-rank test.
type SignedRankResult struct {
	// Statistic is V, the sum of ranks of the positive differences x-y.
	Statistic float64
	PValue    float64
	// N is the number of non-zero differences the test used.
	N     int
	Exact bool
}

// WilcoxonSignedRank runs a two-sided Wilcoxon signed-rank test on the paired
// samples x and y. Pairs with a missing value and zero differences are
// dropped. The exact distribution is used for small samples without ties or
// zeros; otherwise the normal approximation with tie and continuity
// corrections.
func WilcoxonSignedRank(x, y []float64) (SignedRankResult, error) {
	if len(x) != len(y) {
		return SignedRankResult{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}

	diffs := make([]float64, 0, len(x))
	zeros := false
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		d := x[i] - y[i]
		if d == 0 {
			zeros = true
			continue
		}
		diffs = append(diffs, d)
	}
	n := len(diffs)
	if n == 0 {
		return SignedRankResult{}, ErrNoDifferences
	}

	abs := make([]float64, n)
	for i, d := range diffs {
		abs[i] = math.Abs(d)
	}
	ranks, ties := Ranks(abs)

	var v float64
	for i, d := range diffs {
		if d > 0 {
			v += ranks[i]
		}
	}

	res := SignedRankResult{Statistic: v, N: n}
	if n < exactSignedRankLimit && len(ties) == 0 && !zeros {
		res.Exact = true
		res.PValue = exactSignedRankP(v, n)
		return res, nil
	}

	nf := float64(n)
	z := v - nf*(nf+1)/4
	var tieAdj float64
	for _, t := range ties {
		tf := float64(t)
		tieAdj += tf*tf*tf - tf
	}
	sigma := math.Sqrt(nf*(nf+1)*(2*nf+1)/24 - tieAdj/48)
	if sigma == 0 {
		return SignedRankResult{}, ErrNoDifferences
	}
	correction := 0.5 * sign(z)
	z = (z - correction) / sigma
	p := 2 * math.Min(distuv.UnitNormal.CDF(z), distuv.UnitNormal.CDF(-z))
	res.PValue = math.Min(p, 1)
	return res, nil
}

// exactSignedRankP returns the two-sided exact p-value for statistic v with n
// untied, non-zero differences.
func exactSignedRankP(v float64, n int) float64 {
	counts := signedRankCounts(n)
	total := math.Pow(2, float64(n))
	stat := int(math.Round(v))

	var p float64
	if v > float64(n*(n+1))/4 {
		// P(V >= v)
		for k := stat; k < len(counts); k++ {
			p += counts[k]
		}
	} else {
		// P(V <= v)
		for k := 0; k <= stat && k < len(counts); k++ {
			p += counts[k]
		}
	}
	return math.Min(2*p/total, 1)
}

// signedRankCounts returns, for every k, the number of subsets of {1..n}
// whose elements sum to k.
func signedRankCounts(n int) []float64 {
	maxSum := n * (n + 1) / 2
	counts := make([]float64, maxSum+1)
	counts[0] = 1
	for i := 1; i <= n; i++ {
		for k := maxSum; k >= i; k-- {
			counts[k] += counts[k-i]
		}
	}
	return counts
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
