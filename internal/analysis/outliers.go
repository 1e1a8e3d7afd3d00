package analysis

import (
	"math"

	"github.com/mwiater/energystat/internal/runtable"
	"github.com/mwiater/energystat/internal/stats"
)

// iqrFactor scales the interquartile range into the Tukey fences.
const iqrFactor = 1.5

// FilterOutliers builds the display copy of records: within each
// (benchmark, version, size) group, records whose cpu_energy_j lies outside
// [Q1-1.5*IQR, Q3+1.5*IQR] are removed. Groups with fewer than two energy
// values or a zero IQR keep every record. The result must never feed
// inference.
func FilterOutliers(records []runtable.Record) FilterResult {
	var res FilterResult
	for _, group := range runtable.ByKey(records) {
		b := energyBounds(group.Key, group.Records)
		for _, rec := range group.Records {
			if math.IsNaN(rec.CPUEnergyJ) {
				res.MissingEnergy++
				continue
			}
			if rec.CPUEnergyJ < b.Lower || rec.CPUEnergyJ > b.Upper {
				b.Removed++
				continue
			}
			res.Records = append(res.Records, rec)
		}
		res.Removed += b.Removed
		res.Bounds = append(res.Bounds, b)
	}
	return res
}

// energyBounds computes the Tukey fences for one group's cpu_energy_j.
func energyBounds(key runtable.Key, records []runtable.Record) Bounds {
	values := runtable.Values(records, runtable.ColCPUEnergyJ)
	b := Bounds{
		Key:   key,
		Total: len(records),
		Q1:    math.NaN(),
		Q3:    math.NaN(),
	}
	if len(values) >= 2 {
		b.Q1 = stats.Quantile(values, 0.25)
		b.Q3 = stats.Quantile(values, 0.75)
	}
	iqr := b.Q3 - b.Q1
	if math.IsNaN(iqr) || iqr == 0 {
		b.Degenerate = true
		b.Lower = math.Inf(-1)
		b.Upper = math.Inf(1)
		return b
	}
	b.Lower = b.Q1 - iqrFactor*iqr
	b.Upper = b.Q3 + iqrFactor*iqr
	return b
}
