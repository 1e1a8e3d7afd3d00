package analysis

import (
	"math"
	"sort"

	"github.com/mwiater/energystat/internal/runtable"
	"github.com/mwiater/energystat/internal/stats"
)

// BuildComparison joins the baseline and treatment aggregates on (benchmark,
// size), attaches the paired test results and computes percentage reductions.
// Only groups holding both versions produce a row.
func BuildComparison(descriptive []Descriptive, tests []PairedTest, opts Options) []Comparison {
	agg := indexDescriptive(descriptive)
	testsByKey := make(map[runtable.PairKey]PairedTest, len(tests))
	for _, t := range tests {
		testsByKey[t.Key] = t
	}

	seen := make(map[runtable.PairKey]struct{})
	var out []Comparison
	for _, row := range descriptive {
		pk := runtable.PairKey{Benchmark: row.Key.Benchmark, Size: row.Key.Size}
		if _, ok := seen[pk]; ok {
			continue
		}
		seen[pk] = struct{}{}

		base, okBase := agg[runtable.Key{Benchmark: pk.Benchmark, Version: opts.BaselineVersion, Size: pk.Size}]
		treat, okTreat := agg[runtable.Key{Benchmark: pk.Benchmark, Version: opts.TreatmentVersion, Size: pk.Size}]
		if !okBase || !okTreat {
			continue
		}

		cmp := Comparison{
			Key:             pk,
			BaselineEnergy:  base.MeanEnergy,
			TreatmentEnergy: treat.MeanEnergy,
			BaselineTime:    base.MeanTime,
			TreatmentTime:   treat.MeanTime,
			BaselineCPU:     base.MeanCPU,
			TreatmentCPU:    treat.MeanCPU,
			BaselineMemory:  base.MeanMemory,
			TreatmentMemory: treat.MeanMemory,
			EnergyReduction: stats.PercentReduction(base.MeanEnergy, treat.MeanEnergy),
			TimeReduction:   stats.PercentReduction(base.MeanTime, treat.MeanTime),
			CPUReduction:    stats.PercentReduction(base.MeanCPU, treat.MeanCPU),
			MemoryReduction: stats.PercentReduction(base.MeanMemory, treat.MeanMemory),
			PAdjusted:       math.NaN(),
			Significance:    stats.LabelUnavailable,
			EffectSize:      math.NaN(),
		}
		if t, ok := testsByKey[pk]; ok {
			cmp.PAdjusted = t.PAdjusted
			cmp.Significance = t.Significance
			cmp.EffectSize = t.EffectSize
			cmp.EffectMagnitude = t.EffectMagnitude
			if t.Available() {
				significant := t.PAdjusted < opts.Alpha
				cmp.Significant = &significant
			}
		}
		out = append(out, cmp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key.Less(out[j].Key)
	})
	return out
}
