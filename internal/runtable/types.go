// internal/runtable/types.go
// Package runtable loads the experiment run table and groups its rows.
package runtable

import "math"

// Column names expected in run_table.csv.
const (
	ColBenchmark     = "benchmark"
	ColVersion       = "version"
	ColSize          = "size"
	ColCPUEnergyJ    = "cpu_energy_j"
	ColExecTimeSec   = "exec_time_sec"
	ColAvgCPUUsage   = "avg_cpu_usage"
	ColAvgUsedMemory = "avg_used_memory"
)

// RequiredColumns lists every column the loader insists on.
var RequiredColumns = []string{
	ColBenchmark,
	ColVersion,
	ColSize,
	ColCPUEnergyJ,
	ColExecTimeSec,
	ColAvgCPUUsage,
	ColAvgUsedMemory,
}

// MetricColumns lists the numeric measurement columns in output order.
var MetricColumns = []string{
	ColCPUEnergyJ,
	ColExecTimeSec,
	ColAvgCPUUsage,
	ColAvgUsedMemory,
}

// Record is one observed execution of one benchmark variant.
// Missing measurements are stored as NaN.
type Record struct {
	Benchmark     string
	Version       string
	Size          string
	CPUEnergyJ    float64
	ExecTimeSec   float64
	AvgCPUUsage   float64
	AvgUsedMemory float64
	// Repetition is the 0-based position of the record among the rows
	// sharing its Key, in file order.
	Repetition int
}

// Key identifies the (benchmark, version, size) group of a record.
type Key struct {
	Benchmark string
	Version   string
	Size      string
}

// PairKey identifies the (benchmark, size) group used for paired comparisons.
type PairKey struct {
	Benchmark string
	Size      string
}

// Key returns the grouping key of the record.
func (r Record) Key() Key {
	return Key{Benchmark: r.Benchmark, Version: r.Version, Size: r.Size}
}

// PairKey returns the paired-comparison key of the record.
func (r Record) PairKey() PairKey {
	return PairKey{Benchmark: r.Benchmark, Size: r.Size}
}

// Metric returns the value of the named metric column, or NaN for an unknown name.
func (r Record) Metric(column string) float64 {
	switch column {
	case ColCPUEnergyJ:
		return r.CPUEnergyJ
	case ColExecTimeSec:
		return r.ExecTimeSec
	case ColAvgCPUUsage:
		return r.AvgCPUUsage
	case ColAvgUsedMemory:
		return r.AvgUsedMemory
	default:
		return math.NaN()
	}
}

// Less orders keys by benchmark, then version, then size.
func (k Key) Less(other Key) bool {
	if k.Benchmark != other.Benchmark {
		return k.Benchmark < other.Benchmark
	}
	if k.Version != other.Version {
		return k.Version < other.Version
	}
	return k.Size < other.Size
}

// Less orders pair keys by benchmark, then size.
func (k PairKey) Less(other PairKey) bool {
	if k.Benchmark != other.Benchmark {
		return k.Benchmark < other.Benchmark
	}
	return k.Size < other.Size
}

func (k Key) String() string {
	return k.Benchmark + "/" + k.Version + "/" + k.Size
}

func (k PairKey) String() string {
	return k.Benchmark + "/" + k.Size
}
