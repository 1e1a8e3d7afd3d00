package analysis

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/mwiater/energystat/internal/runtable"
	"github.com/mwiater/energystat/internal/stats"
)

// Number is a float64 that encodes NaN as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// ColumnMissing counts missing cells in one column.
type ColumnMissing struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// MetricSummary mirrors a describe() row for one metric.
type MetricSummary struct {
	Metric string `json:"metric"`
	Count  int    `json:"count"`
	Mean   Number `json:"mean"`
	Std    Number `json:"std"`
	Min    Number `json:"min"`
	P25    Number `json:"p25"`
	P50    Number `json:"p50"`
	P75    Number `json:"p75"`
	Max    Number `json:"max"`
}

// PreliminaryRow compares mean energy between the two versions.
type PreliminaryRow struct {
	Benchmark       string `json:"benchmark"`
	Size            string `json:"size"`
	BaselineEnergy  Number `json:"baselineEnergy"`
	TreatmentEnergy Number `json:"treatmentEnergy"`
	ReductionPct    Number `json:"reductionPct"`
}

// Overview summarises the shape and design of a run table before analysis.
type Overview struct {
	Path                  string           `json:"path"`
	Rows                  int              `json:"rows"`
	Columns               int              `json:"columns"`
	ColumnNames           []string         `json:"columnNames"`
	Missing               []ColumnMissing  `json:"missing"`
	Benchmarks            []string         `json:"benchmarks"`
	Versions              []string         `json:"versions"`
	Sizes                 []string         `json:"sizes"`
	MinRepetitions        int              `json:"minRepetitions"`
	MaxRepetitions        int              `json:"maxRepetitions"`
	ConsistentRepetitions bool             `json:"consistentRepetitions"`
	Metrics               []MetricSummary  `json:"metrics"`
	OutlierCount          int              `json:"outlierCount"`
	Preliminary           []PreliminaryRow `json:"preliminary"`
}

// BuildOverview inspects the loaded table and returns its overview.
func BuildOverview(table runtable.Table, opts Options) Overview {
	records := table.Records
	ov := Overview{
		Path:        table.Path,
		Rows:        len(records),
		Columns:     len(table.Columns),
		ColumnNames: table.Columns,
	}

	ov.Missing = missingCounts(records)
	ov.Benchmarks = distinct(records, func(r runtable.Record) string { return r.Benchmark })
	ov.Versions = distinct(records, func(r runtable.Record) string { return r.Version })
	ov.Sizes = distinct(records, func(r runtable.Record) string { return r.Size })

	groups := runtable.ByKey(records)
	for i, g := range groups {
		n := len(g.Records)
		if i == 0 || n < ov.MinRepetitions {
			ov.MinRepetitions = n
		}
		if n > ov.MaxRepetitions {
			ov.MaxRepetitions = n
		}
	}
	ov.ConsistentRepetitions = len(groups) > 0 && ov.MinRepetitions == ov.MaxRepetitions

	for _, col := range runtable.MetricColumns {
		ov.Metrics = append(ov.Metrics, summarizeMetric(col, runtable.Values(records, col)))
	}

	ov.OutlierCount = FilterOutliers(records).Removed

	for _, cmp := range BuildComparison(Describe(records), nil, opts) {
		ov.Preliminary = append(ov.Preliminary, PreliminaryRow{
			Benchmark:       cmp.Key.Benchmark,
			Size:            cmp.Key.Size,
			BaselineEnergy:  Number(cmp.BaselineEnergy),
			TreatmentEnergy: Number(cmp.TreatmentEnergy),
			ReductionPct:    Number(cmp.EnergyReduction),
		})
	}
	return ov
}

func missingCounts(records []runtable.Record) []ColumnMissing {
	counts := make([]ColumnMissing, 0, len(runtable.RequiredColumns))
	for _, col := range runtable.RequiredColumns {
		missing := 0
		for _, rec := range records {
			switch col {
			case runtable.ColBenchmark:
				if rec.Benchmark == "" {
					missing++
				}
			case runtable.ColVersion:
				if rec.Version == "" {
					missing++
				}
			case runtable.ColSize:
				if rec.Size == "" {
					missing++
				}
			default:
				if math.IsNaN(rec.Metric(col)) {
					missing++
				}
			}
		}
		counts = append(counts, ColumnMissing{Column: col, Missing: missing})
	}
	return counts
}

func distinct(records []runtable.Record, field func(runtable.Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		v := field(rec)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func summarizeMetric(name string, values []float64) MetricSummary {
	return MetricSummary{
		Metric: name,
		Count:  len(values),
		Mean:   Number(stats.Mean(values)),
		Std:    Number(stats.StdDev(values)),
		Min:    Number(stats.Min(values)),
		P25:    Number(stats.Quantile(values, 0.25)),
		P50:    Number(stats.Quantile(values, 0.5)),
		P75:    Number(stats.Quantile(values, 0.75)),
		Max:    Number(stats.Max(values)),
	}
}
