// internal/analysis/types.go
// Package analysis implements the comparative statistics pipeline over the
// run table: outlier filtering, descriptive statistics, paired tests,
// correlations and the baseline/treatment comparison table.
package analysis

import (
	"time"

	"github.com/mwiater/energystat/internal/runtable"
)

// Test status values reported for each paired comparison.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Options configures which versions are compared and the significance level.
type Options struct {
	BaselineVersion  string
	TreatmentVersion string
	Alpha            float64
}

// DefaultOptions compares "baseline" against "opt" at alpha 0.05.
func DefaultOptions() Options {
	return Options{
		BaselineVersion:  "baseline",
		TreatmentVersion: "opt",
		Alpha:            0.05,
	}
}

// Bounds is the inclusive cpu_energy_j window used for the display copy.
type Bounds struct {
	Key        runtable.Key
	Q1         float64
	Q3         float64
	Lower      float64
	Upper      float64
	Degenerate bool
	Total      int
	Removed    int
}

// FilterResult is the display copy of the run table.
type FilterResult struct {
	Records []runtable.Record
	Bounds  []Bounds
	// Removed counts records outside their group bounds.
	Removed int
	// MissingEnergy counts records dropped because cpu_energy_j is missing.
	MissingEnergy int
}

// Descriptive is one aggregate row per (benchmark, version, size).
type Descriptive struct {
	Key             runtable.Key
	RepetitionCount int
	MeanEnergy      float64
	MedianEnergy    float64
	SDEnergy        float64
	MeanTime        float64
	MeanCPU         float64
	MeanMemory      float64
}

// PairedTest is the RQ1 result for one (benchmark, size) group.
type PairedTest struct {
	Key             runtable.PairKey
	BaselineN       int
	TreatmentN      int
	Pairs           int
	Statistic       float64
	PValue          float64
	PAdjusted       float64
	Significance    string
	Exact           bool
	EffectSize      float64
	EffectMagnitude string
	Status          string
	Reason          string
}

// Available reports whether the test produced a p-value.
func (p PairedTest) Available() bool {
	return p.Status == StatusOK
}

// Correlation is the RQ2 result for one (benchmark, version, size) group.
type Correlation struct {
	Key       runtable.Key
	N         int
	RhoTime   float64
	PTime     float64
	RhoCPU    float64
	PCPU      float64
	RhoMemory float64
	PMemory   float64
}

// Comparison joins baseline and treatment aggregates for one (benchmark, size).
type Comparison struct {
	Key             runtable.PairKey
	BaselineEnergy  float64
	TreatmentEnergy float64
	BaselineTime    float64
	TreatmentTime   float64
	BaselineCPU     float64
	TreatmentCPU    float64
	BaselineMemory  float64
	TreatmentMemory float64
	EnergyReduction float64
	TimeReduction   float64
	CPUReduction    float64
	MemoryReduction float64
	PAdjusted       float64
	Significance    string
	EffectSize      float64
	EffectMagnitude string
	// Significant is nil when no test result is available.
	Significant *bool
}

// Result bundles every table the pipeline produces.
type Result struct {
	GeneratedAt  time.Time
	Options      Options
	Records      []runtable.Record
	Filtered     FilterResult
	Descriptive  []Descriptive
	PairedTests  []PairedTest
	Correlations []Correlation
	Comparisons  []Comparison
}
