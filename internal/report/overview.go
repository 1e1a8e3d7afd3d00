// internal/report/overview.go
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/energystat/internal/analysis"
)

var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

// PrintOverview writes the dataset overview in the terminal layout.
func PrintOverview(out io.Writer, ov analysis.Overview) {
	fmt.Fprintln(out, titleStyle.Render("Dataset overview"))
	fmt.Fprintf(out, "  File:       %s\n", ov.Path)
	fmt.Fprintf(out, "  Shape:      %d rows x %d columns\n", ov.Rows, ov.Columns)
	fmt.Fprintf(out, "  Columns:    %s\n", strings.Join(ov.ColumnNames, ", "))
	fmt.Fprintf(out, "  Benchmarks: %d (%s)\n", len(ov.Benchmarks), strings.Join(ov.Benchmarks, ", "))
	fmt.Fprintf(out, "  Versions:   %s\n", strings.Join(ov.Versions, ", "))
	fmt.Fprintf(out, "  Sizes:      %s\n", strings.Join(ov.Sizes, ", "))
	fmt.Fprintf(out, "  Repetitions per group: min %d, max %d\n", ov.MinRepetitions, ov.MaxRepetitions)
	if !ov.ConsistentRepetitions {
		fmt.Fprintln(out, warnStyle.Render("  Warning: repetition counts differ between groups"))
	}
	fmt.Fprintf(out, "  IQR outliers (energy): %d\n\n", ov.OutlierCount)

	fmt.Fprintln(out, titleStyle.Render("Missing values"))
	missingRows := make([][]string, 0, len(ov.Missing))
	for _, m := range ov.Missing {
		missingRows = append(missingRows, []string{m.Column, strconv.Itoa(m.Missing)})
	}
	fmt.Fprintln(out, plainTable([]string{"Column", "Missing"}, missingRows))

	fmt.Fprintln(out, titleStyle.Render("Metric statistics"))
	metricRows := make([][]string, 0, len(ov.Metrics))
	for _, m := range ov.Metrics {
		metricRows = append(metricRows, []string{
			m.Metric, strconv.Itoa(m.Count),
			formatNumber(m.Mean), formatNumber(m.Std), formatNumber(m.Min),
			formatNumber(m.P25), formatNumber(m.P50), formatNumber(m.P75), formatNumber(m.Max),
		})
	}
	fmt.Fprintln(out, plainTable([]string{"Metric", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}, metricRows))

	fmt.Fprintln(out, titleStyle.Render("Preliminary mean energy comparison"))
	prelim := make([][]string, 0, len(ov.Preliminary))
	for _, p := range ov.Preliminary {
		prelim = append(prelim, []string{
			p.Benchmark, p.Size,
			formatNumber(p.BaselineEnergy), formatNumber(p.TreatmentEnergy),
			formatPercent(float64(p.ReductionPct)),
		})
	}
	fmt.Fprintln(out, plainTable([]string{"Benchmark", "Size", "Baseline (J)", "Treatment (J)", "Reduction"}, prelim))
}

// WriteOverviewJSON encodes the overview as indented JSON.
func WriteOverviewJSON(out io.Writer, ov analysis.Overview) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ov); err != nil {
		return fmt.Errorf("encode overview: %w", err)
	}
	return nil
}

func plainTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

func formatNumber(n analysis.Number) string {
	return formatFloat(roundTo(float64(n), 4))
}
