// internal/report/summary.go
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/energystat/internal/analysis"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	improvedStyle = cellStyle.Foreground(lipgloss.Color("46"))
	worseStyle    = cellStyle.Foreground(lipgloss.Color("203"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
)

// energyColumn is the index of the energy reduction column in the summary.
const energyColumn = 2

// RenderSummary draws the comparison table for the terminal.
func RenderSummary(res analysis.Result) string {
	rows := make([][]string, 0, len(res.Comparisons))
	for _, c := range res.Comparisons {
		rows = append(rows, []string{
			c.Key.Benchmark,
			c.Key.Size,
			formatPercent(c.EnergyReduction),
			formatPercent(c.TimeReduction),
			formatFloat(roundTo(c.PAdjusted, 4)),
			c.Significance,
			formatFloat(roundTo(c.EffectSize, 3)),
			formatText(c.EffectMagnitude),
		})
	}
	comparisons := res.Comparisons

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Benchmark", "Size", "Energy", "Time", "p (adj.)", "Sig.", "Cliff's d", "Magnitude").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == energyColumn && row >= 0 && row < len(comparisons) {
				c := comparisons[row]
				if c.Significant != nil && *c.Significant {
					if c.EnergyReduction > 0 {
						return improvedStyle
					}
					return worseStyle
				}
			}
			return cellStyle
		})

	title := titleStyle.Render(fmt.Sprintf("%s vs %s (alpha %s, Bonferroni)",
		res.Options.BaselineVersion, res.Options.TreatmentVersion, formatFloat(res.Options.Alpha)))
	return title + "\n" + t.Render()
}

// PrintSummary writes the terminal summary followed by a short tally.
func PrintSummary(out io.Writer, res analysis.Result) {
	fmt.Fprintln(out, RenderSummary(res))

	var improved, worse, unavailable int
	for _, c := range res.Comparisons {
		switch {
		case c.Significant == nil:
			unavailable++
		case *c.Significant && c.EnergyReduction > 0:
			improved++
		case *c.Significant:
			worse++
		}
	}
	fmt.Fprintf(out, "%d groups compared: %d significantly less energy, %d significantly more, %d without a test\n",
		len(res.Comparisons), improved, worse, unavailable)
}

func roundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
