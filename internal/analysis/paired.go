package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/mwiater/energystat/internal/runtable"
	"github.com/mwiater/energystat/internal/stats"
)

var (
	// ErrUnequalRepetitions marks a group whose baseline and treatment
	// repetition counts differ, so the samples cannot be paired.
	ErrUnequalRepetitions = errors.New("unequal baseline and treatment repetitions")
	// ErrNoPairs marks a group without any usable paired difference.
	ErrNoPairs = errors.New("no usable paired differences")
)

// PairedTests runs the Wilcoxon signed-rank test on cpu_energy_j for every
// (benchmark, size) group holding both versions, then applies a Bonferroni
// correction across all groups at once. Groups missing either version are
// left out; groups that cannot be paired are kept with status unavailable.
func PairedTests(records []runtable.Record, opts Options) []PairedTest {
	subset := runtable.Filter(records, opts.BaselineVersion, opts.TreatmentVersion)

	var tests []PairedTest
	for _, group := range runtable.ByPairKey(subset) {
		baseline, treatment := splitVersions(group.Records, opts)
		if len(baseline) == 0 || len(treatment) == 0 {
			continue
		}
		tests = append(tests, pairedTest(group.Key, baseline, treatment))
	}

	raw := make([]float64, len(tests))
	for i, t := range tests {
		raw[i] = t.PValue
	}
	adjusted := stats.Bonferroni(raw)
	for i := range tests {
		tests[i].PAdjusted = adjusted[i]
		tests[i].Significance = stats.SignificanceLabel(adjusted[i])
	}
	return tests
}

// splitVersions separates a group's records into baseline and treatment
// samples ordered by repetition index.
func splitVersions(records []runtable.Record, opts Options) ([]runtable.Record, []runtable.Record) {
	var baseline, treatment []runtable.Record
	for _, rec := range records {
		switch rec.Version {
		case opts.BaselineVersion:
			baseline = append(baseline, rec)
		case opts.TreatmentVersion:
			treatment = append(treatment, rec)
		}
	}
	byRepetition := func(recs []runtable.Record) {
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].Repetition < recs[j].Repetition
		})
	}
	byRepetition(baseline)
	byRepetition(treatment)
	return baseline, treatment
}

func pairedTest(key runtable.PairKey, baseline, treatment []runtable.Record) PairedTest {
	test := PairedTest{
		Key:        key,
		BaselineN:  len(baseline),
		TreatmentN: len(treatment),
		Statistic:  math.NaN(),
		PValue:     math.NaN(),
		PAdjusted:  math.NaN(),
		EffectSize: math.NaN(),
		Status:     StatusOK,
	}

	if len(baseline) != len(treatment) {
		test.Status = StatusUnavailable
		test.Reason = fmt.Errorf("%w (%d vs %d)", ErrUnequalRepetitions, len(baseline), len(treatment)).Error()
		return test
	}

	x := energies(baseline)
	y := energies(treatment)
	test.EffectSize = effectSize(x, y)
	test.EffectMagnitude = stats.EffectMagnitude(test.EffectSize)

	res, err := stats.WilcoxonSignedRank(x, y)
	if err != nil {
		test.Status = StatusUnavailable
		test.Reason = fmt.Errorf("%w: %v", ErrNoPairs, err).Error()
		return test
	}
	test.Pairs = res.N
	test.Statistic = res.Statistic
	test.PValue = res.PValue
	test.Exact = res.Exact
	return test
}

// effectSize returns Cliff's delta signed so that a positive value means the
// treatment uses less energy than the baseline.
func effectSize(baseline, treatment []float64) float64 {
	delta := stats.CliffsDelta(treatment, baseline)
	if math.IsNaN(delta) {
		return delta
	}
	return -delta
}

func energies(records []runtable.Record) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.CPUEnergyJ
	}
	return out
}
