// internal/report/csv.go
// Package report writes the pipeline result as CSV tables, a standalone HTML
// report and a terminal summary.
package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mwiater/energystat/internal/analysis"
)

// Output file names written under the output directory.
const (
	DescriptiveFile = "descriptive_statistics.csv"
	RQ1File         = "rq1_hypothesis_tests.csv"
	RQ2File         = "rq2_correlation_analysis.csv"
	SummaryFile     = "final_summary_table_corrected.csv"
	HTMLFile        = "report.html"
)

// missing is written for every undefined value.
const missing = "NA"

var (
	descriptiveHeader = []string{
		"benchmark", "version", "size", "repetitions",
		"mean_energy_j", "median_energy_j", "sd_energy_j",
		"mean_exec_time_sec", "mean_cpu_usage", "mean_used_memory",
	}
	rq1Header = []string{
		"benchmark", "size", "baseline_n", "treatment_n", "pairs",
		"statistic", "p_value", "p_adjusted", "significance", "exact",
		"effect_size", "effect_magnitude", "status", "reason",
	}
	rq2Header = []string{
		"benchmark", "version", "size", "n",
		"rho_energy_time", "p_energy_time",
		"rho_energy_cpu", "p_energy_cpu",
		"rho_energy_memory", "p_energy_memory",
	}
	summaryHeader = []string{
		"benchmark", "size",
		"baseline_energy_j", "treatment_energy_j", "energy_reduction_pct",
		"baseline_exec_time_sec", "treatment_exec_time_sec", "time_reduction_pct",
		"baseline_cpu_usage", "treatment_cpu_usage", "cpu_reduction_pct",
		"baseline_used_memory", "treatment_used_memory", "memory_reduction_pct",
		"p_adjusted", "significance", "effect_size", "effect_magnitude", "significant",
	}
)

// WriteTables writes the four CSV tables into dir and returns their paths in
// write order. Rows follow the key order of the result.
func WriteTables(dir string, res analysis.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output directory %s: %w", dir, err)
	}

	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{DescriptiveFile, descriptiveHeader, descriptiveRows(res.Descriptive)},
		{RQ1File, rq1Header, rq1Rows(res.PairedTests)},
		{RQ2File, rq2Header, rq2Rows(res.Correlations)},
		{SummaryFile, summaryHeader, summaryRows(res.Comparisons)},
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		if err := writeCSV(path, t.header, t.rows); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return file.Close()
}

func descriptiveRows(rows []analysis.Descriptive) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Key.Benchmark, r.Key.Version, r.Key.Size,
			strconv.Itoa(r.RepetitionCount),
			formatFloat(r.MeanEnergy), formatFloat(r.MedianEnergy), formatFloat(r.SDEnergy),
			formatFloat(r.MeanTime), formatFloat(r.MeanCPU), formatFloat(r.MeanMemory),
		})
	}
	return out
}

func rq1Rows(tests []analysis.PairedTest) [][]string {
	out := make([][]string, 0, len(tests))
	for _, t := range tests {
		pairs := missing
		exact := missing
		if t.Available() {
			pairs = strconv.Itoa(t.Pairs)
			exact = strconv.FormatBool(t.Exact)
		}
		out = append(out, []string{
			t.Key.Benchmark, t.Key.Size,
			strconv.Itoa(t.BaselineN), strconv.Itoa(t.TreatmentN), pairs,
			formatFloat(t.Statistic), formatFloat(t.PValue), formatFloat(t.PAdjusted),
			t.Significance, exact,
			formatFloat(t.EffectSize), formatText(t.EffectMagnitude),
			t.Status, t.Reason,
		})
	}
	return out
}

func rq2Rows(rows []analysis.Correlation) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Key.Benchmark, r.Key.Version, r.Key.Size, strconv.Itoa(r.N),
			formatFloat(r.RhoTime), formatFloat(r.PTime),
			formatFloat(r.RhoCPU), formatFloat(r.PCPU),
			formatFloat(r.RhoMemory), formatFloat(r.PMemory),
		})
	}
	return out
}

func summaryRows(rows []analysis.Comparison) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		significant := missing
		if r.Significant != nil {
			significant = strconv.FormatBool(*r.Significant)
		}
		out = append(out, []string{
			r.Key.Benchmark, r.Key.Size,
			formatFloat(r.BaselineEnergy), formatFloat(r.TreatmentEnergy), formatFloat(r.EnergyReduction),
			formatFloat(r.BaselineTime), formatFloat(r.TreatmentTime), formatFloat(r.TimeReduction),
			formatFloat(r.BaselineCPU), formatFloat(r.TreatmentCPU), formatFloat(r.CPUReduction),
			formatFloat(r.BaselineMemory), formatFloat(r.TreatmentMemory), formatFloat(r.MemoryReduction),
			formatFloat(r.PAdjusted), r.Significance,
			formatFloat(r.EffectSize), formatText(r.EffectMagnitude), significant,
		})
	}
	return out
}

// formatFloat writes the shortest representation that round-trips, or NA.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatText(s string) string {
	if s == "" {
		return missing
	}
	return s
}
