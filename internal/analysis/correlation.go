package analysis

import (
	"github.com/mwiater/energystat/internal/runtable"
	"github.com/mwiater/energystat/internal/stats"
)

// Correlations computes Spearman correlations between cpu_energy_j and each
// of exec_time_sec, avg_cpu_usage and avg_used_memory per (benchmark,
// version, size). Degenerate groups report NaN. p-values are not corrected
// for multiple comparisons.
func Correlations(records []runtable.Record) []Correlation {
	return runtable.Aggregate(runtable.ByKey(records), correlateGroup)
}

func correlateGroup(key runtable.Key, records []runtable.Record) Correlation {
	energy := column(records, runtable.ColCPUEnergyJ)
	timeRes := stats.Spearman(energy, column(records, runtable.ColExecTimeSec))
	cpuRes := stats.Spearman(energy, column(records, runtable.ColAvgCPUUsage))
	memRes := stats.Spearman(energy, column(records, runtable.ColAvgUsedMemory))
	return Correlation{
		Key:       key,
		N:         len(records),
		RhoTime:   timeRes.Rho,
		PTime:     timeRes.PValue,
		RhoCPU:    cpuRes.Rho,
		PCPU:      cpuRes.PValue,
		RhoMemory: memRes.Rho,
		PMemory:   memRes.PValue,
	}
}

// column keeps missing values in place so that columns stay row-aligned.
func column(records []runtable.Record, name string) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.Metric(name)
	}
	return out
}
