package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantileType7(t *testing.T) {
	values := []float64{4, 1, 3, 2}
	assert.InDelta(t, 1.75, Quantile(values, 0.25), 1e-12)
	assert.InDelta(t, 2.5, Quantile(values, 0.5), 1e-12)
	assert.InDelta(t, 3.25, Quantile(values, 0.75), 1e-12)
	assert.Equal(t, 1.0, Quantile(values, 0))
	assert.Equal(t, 4.0, Quantile(values, 1))
	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.25))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	// input must not be reordered
	assert.Equal(t, []float64{4, 1, 3, 2}, values)
}

func TestDescriptiveHelpers(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5, Mean(values), 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), StdDev(values), 1e-12)
	assert.InDelta(t, 4.5, Median(values), 1e-12)
	assert.Equal(t, 2.0, Min(values))
	assert.Equal(t, 9.0, Max(values))

	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(StdDev([]float64{3})))
	assert.True(t, math.IsNaN(Min(nil)))
	assert.True(t, math.IsNaN(Max(nil)))
}

func TestPercentReduction(t *testing.T) {
	tests := []struct {
		name      string
		baseline  float64
		treatment float64
		want      float64
		undefined bool
	}{
		{name: "paired example", baseline: 11, treatment: 8.5, want: (11 - 8.5) / 11 * 100},
		{name: "equal means", baseline: 3.2, treatment: 3.2, want: 0},
		{name: "increase", baseline: 10, treatment: 12, want: -20},
		{name: "zero baseline", baseline: 0, treatment: 1, undefined: true},
		{name: "missing baseline", baseline: math.NaN(), treatment: 1, undefined: true},
		{name: "missing treatment", baseline: 1, treatment: math.NaN(), undefined: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentReduction(tt.baseline, tt.treatment)
			if tt.undefined {
				assert.True(t, math.IsNaN(got), "expected NaN, got %v", got)
				return
			}
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
	assert.InDelta(t, 22.727, PercentReduction(11, 8.5), 1e-3)
}

func TestRanksAveragesTies(t *testing.T) {
	ranks, ties := Ranks([]float64{30, 10, 20, 20})
	assert.Equal(t, []float64{4, 1, 2.5, 2.5}, ranks)
	assert.Equal(t, []int{2}, ties)

	ranks, ties = Ranks([]float64{5, 5, 5})
	assert.Equal(t, []float64{2, 2, 2}, ranks)
	assert.Equal(t, []int{3}, ties)
}

func TestWilcoxonSignedRankExact(t *testing.T) {
	// Hollander & Wolfe depression scores.
	x := []float64{1.83, 0.50, 1.62, 2.48, 1.68, 1.88, 1.55, 3.06, 1.30}
	y := []float64{0.878, 0.647, 0.598, 2.05, 1.06, 1.29, 1.06, 3.14, 1.29}

	res, err := WilcoxonSignedRank(x, y)
	require.NoError(t, err)
	assert.True(t, res.Exact)
	assert.Equal(t, 9, res.N)
	assert.Equal(t, 40.0, res.Statistic)
	assert.InDelta(t, 0.0390625, res.PValue, 1e-12)

	// Swapping the samples mirrors the statistic and keeps the p-value.
	swapped, err := WilcoxonSignedRank(y, x)
	require.NoError(t, err)
	assert.Equal(t, 5.0, swapped.Statistic)
	assert.InDelta(t, res.PValue, swapped.PValue, 1e-12)
}

func TestWilcoxonSignedRankSmallSample(t *testing.T) {
	res, err := WilcoxonSignedRank([]float64{10, 12, 11}, []float64{8, 9, 8.5})
	require.NoError(t, err)
	assert.Equal(t, 6.0, res.Statistic)
	assert.InDelta(t, 0.25, res.PValue, 1e-12)
}

func TestWilcoxonSignedRankNormalApproximation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{0, 1, 2, 3, 4, 5}

	res, err := WilcoxonSignedRank(x, y)
	require.NoError(t, err)
	assert.False(t, res.Exact)
	assert.Equal(t, 21.0, res.Statistic)
	assert.InDelta(t, 0.01966, res.PValue, 1e-3)
}

func TestWilcoxonSignedRankErrors(t *testing.T) {
	_, err := WilcoxonSignedRank([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = WilcoxonSignedRank([]float64{1, 2, 3}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrNoDifferences)

	_, err = WilcoxonSignedRank([]float64{math.NaN()}, []float64{1})
	assert.ErrorIs(t, err, ErrNoDifferences)
}

func TestSignedRankCounts(t *testing.T) {
	counts := signedRankCounts(3)
	// subsets of {1,2,3} by sum 0..6
	assert.Equal(t, []float64{1, 1, 1, 2, 1, 1, 1}, counts)
}

func TestSpearman(t *testing.T) {
	res := Spearman([]float64{1, 2, 3, 4}, []float64{10, 20, 30, 40})
	assert.InDelta(t, 1, res.Rho, 1e-12)
	assert.InDelta(t, 0, res.PValue, 1e-9)
	assert.Equal(t, 4, res.N)

	res = Spearman([]float64{1, 2, 3, 4}, []float64{9, 7, 5, 1})
	assert.InDelta(t, -1, res.Rho, 1e-12)

	res = Spearman([]float64{1, 2, 3, 4, 5}, []float64{2, 1, 4, 3, 5})
	assert.InDelta(t, 0.8, res.Rho, 1e-12)
	assert.Greater(t, res.PValue, 0.0)
	assert.Less(t, res.PValue, 1.0)
}

func TestSpearmanUndefined(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{name: "too few pairs", x: []float64{1, 2}, y: []float64{3, 4}},
		{name: "zero variance", x: []float64{1, 2, 3}, y: []float64{5, 5, 5}},
		{name: "missing values leave too few pairs", x: []float64{1, math.NaN(), 3}, y: []float64{1, 2, 3}},
		{name: "length mismatch", x: []float64{1, 2, 3}, y: []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Spearman(tt.x, tt.y)
			assert.True(t, math.IsNaN(res.Rho))
			assert.True(t, math.IsNaN(res.PValue))
		})
	}
}

func TestCliffsDelta(t *testing.T) {
	baseline := []float64{10, 12, 11}
	opt := []float64{8, 9, 8.5}
	assert.Equal(t, 1.0, CliffsDelta(baseline, opt))
	assert.Equal(t, -1.0, CliffsDelta(opt, baseline))
	assert.Equal(t, 0.0, CliffsDelta([]float64{1, 2}, []float64{1, 2}))
	assert.True(t, math.IsNaN(CliffsDelta(nil, opt)))
}

func TestEffectMagnitude(t *testing.T) {
	assert.Equal(t, MagnitudeNegligible, EffectMagnitude(0.1))
	assert.Equal(t, MagnitudeSmall, EffectMagnitude(-0.2))
	assert.Equal(t, MagnitudeMedium, EffectMagnitude(0.4))
	assert.Equal(t, MagnitudeLarge, EffectMagnitude(-0.9))
	assert.Equal(t, "", EffectMagnitude(math.NaN()))
}

func TestBonferroni(t *testing.T) {
	raw := []float64{0.01, math.NaN(), 0.02, 0.5}
	adjusted := Bonferroni(raw)
	require.Len(t, adjusted, 4)
	assert.InDelta(t, 0.03, adjusted[0], 1e-12)
	assert.True(t, math.IsNaN(adjusted[1]))
	assert.InDelta(t, 0.06, adjusted[2], 1e-12)
	assert.Equal(t, 1.0, adjusted[3])

	for i := range raw {
		if math.IsNaN(raw[i]) {
			continue
		}
		assert.GreaterOrEqual(t, adjusted[i], raw[i])
	}
}

func TestSignificanceLabel(t *testing.T) {
	assert.Equal(t, "***", SignificanceLabel(0.0001))
	assert.Equal(t, "**", SignificanceLabel(0.005))
	assert.Equal(t, "*", SignificanceLabel(0.04))
	assert.Equal(t, LabelNotSig, SignificanceLabel(0.05))
	assert.Equal(t, LabelUnavailable, SignificanceLabel(math.NaN()))
}
