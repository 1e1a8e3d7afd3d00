package analysis

import (
	"github.com/mwiater/energystat/internal/runtable"
	"github.com/mwiater/energystat/internal/stats"
)

// Describe computes one aggregate row per (benchmark, version, size) from
// the unfiltered records. Missing values are excluded from every statistic.
func Describe(records []runtable.Record) []Descriptive {
	return runtable.Aggregate(runtable.ByKey(records), describeGroup)
}

func describeGroup(key runtable.Key, records []runtable.Record) Descriptive {
	energy := runtable.Values(records, runtable.ColCPUEnergyJ)
	return Descriptive{
		Key:             key,
		RepetitionCount: len(energy),
		MeanEnergy:      stats.Mean(energy),
		MedianEnergy:    stats.Median(energy),
		SDEnergy:        stats.StdDev(energy),
		MeanTime:        stats.Mean(runtable.Values(records, runtable.ColExecTimeSec)),
		MeanCPU:         stats.Mean(runtable.Values(records, runtable.ColAvgCPUUsage)),
		MeanMemory:      stats.Mean(runtable.Values(records, runtable.ColAvgUsedMemory)),
	}
}

// indexDescriptive maps each aggregate row by its key.
func indexDescriptive(rows []Descriptive) map[runtable.Key]Descriptive {
	out := make(map[runtable.Key]Descriptive, len(rows))
	for _, row := range rows {
		out[row.Key] = row
	}
	return out
}
