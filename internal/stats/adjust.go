package stats

import "math"

// Significance labels derived from a corrected p-value.
const (
	LabelUnavailable = "n/a"
	LabelNotSig      = "ns"
)

// Bonferroni multiplies every defined p-value by the number of defined
// p-values, capping at 1. NaN entries stay NaN and do not count towards the
// family size. It must be called once with the whole family of p-values.
func Bonferroni(pvalues []float64) []float64 {
	m := 0
	for _, p := range pvalues {
		if !math.IsNaN(p) {
			m++
		}
	}
	out := make([]float64, len(pvalues))
	for i, p := range pvalues {
		if math.IsNaN(p) {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Min(1, p*float64(m))
	}
	return out
}

// SignificanceLabel buckets p into "***", "**", "*" or "ns".
func SignificanceLabel(p float64) string {
	switch {
	case math.IsNaN(p):
		return LabelUnavailable
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	default:
		return LabelNotSig
	}
}
