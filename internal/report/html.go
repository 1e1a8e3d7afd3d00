// internal/report/html.go
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mwiater/energystat/internal/analysis"
)

// HTMLData is the view model behind report.html.
type HTMLData struct {
	Title        string
	GeneratedAt  string
	Baseline     string
	Treatment    string
	Alpha        string
	Records      int
	Removed      int
	Missing      int
	Summary      []SummaryRow
	Tests        []TestRow
	Correlations []CorrelationRow
	Plots        []PlotRef
	SummaryJSON  template.JS
}

// SummaryRow is one formatted comparison row.
type SummaryRow struct {
	Benchmark       string
	Size            string
	BaselineEnergy  string
	TreatmentEnergy string
	EnergyReduction string
	TimeReduction   string
	CPUReduction    string
	MemoryReduction string
	PAdjusted       string
	Significance    string
	EffectSize      string
	EffectMagnitude string
	Improved        bool
}

// TestRow is one formatted RQ1 row.
type TestRow struct {
	Benchmark    string
	Size         string
	Pairs        string
	Statistic    string
	PValue       string
	PAdjusted    string
	Significance string
	Status       string
	Reason       string
}

// CorrelationRow is one formatted RQ2 row.
type CorrelationRow struct {
	Benchmark string
	Version   string
	Size      string
	RhoTime   string
	RhoCPU    string
	RhoMemory string
}

// PlotRef points at a rendered PNG relative to the report.
type PlotRef struct {
	Title string
	Src   string
}

type summaryPayload struct {
	Benchmark       string          `json:"benchmark"`
	Size            string          `json:"size"`
	EnergyReduction analysis.Number `json:"energyReductionPct"`
	PAdjusted       analysis.Number `json:"pAdjusted"`
	EffectSize      analysis.Number `json:"effectSize"`
	Significance    string          `json:"significance"`
}

// GenerateHTML renders a standalone HTML report for res. Plot paths are made
// relative to reportDir so the report can be opened from disk.
func GenerateHTML(res analysis.Result, reportDir string, plots []string) (string, error) {
	data := HTMLData{
		Title:       "energystat: Baseline vs Optimized Energy Report",
		GeneratedAt: res.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		Baseline:    res.Options.BaselineVersion,
		Treatment:   res.Options.TreatmentVersion,
		Alpha:       formatFloat(res.Options.Alpha),
		Records:     len(res.Records),
		Removed:     res.Filtered.Removed,
		Missing:     res.Filtered.MissingEnergy,
	}

	payload := make([]summaryPayload, 0, len(res.Comparisons))
	for _, c := range res.Comparisons {
		data.Summary = append(data.Summary, SummaryRow{
			Benchmark:       c.Key.Benchmark,
			Size:            c.Key.Size,
			BaselineEnergy:  formatFloat(c.BaselineEnergy),
			TreatmentEnergy: formatFloat(c.TreatmentEnergy),
			EnergyReduction: formatPercent(c.EnergyReduction),
			TimeReduction:   formatPercent(c.TimeReduction),
			CPUReduction:    formatPercent(c.CPUReduction),
			MemoryReduction: formatPercent(c.MemoryReduction),
			PAdjusted:       formatFloat(c.PAdjusted),
			Significance:    c.Significance,
			EffectSize:      formatFloat(c.EffectSize),
			EffectMagnitude: formatText(c.EffectMagnitude),
			Improved:        c.Significant != nil && *c.Significant && c.EnergyReduction > 0,
		})
		payload = append(payload, summaryPayload{
			Benchmark:       c.Key.Benchmark,
			Size:            c.Key.Size,
			EnergyReduction: analysis.Number(c.EnergyReduction),
			PAdjusted:       analysis.Number(c.PAdjusted),
			EffectSize:      analysis.Number(c.EffectSize),
			Significance:    c.Significance,
		})
	}
	for _, t := range res.PairedTests {
		row := TestRow{
			Benchmark:    t.Key.Benchmark,
			Size:         t.Key.Size,
			Pairs:        missing,
			Statistic:    formatFloat(t.Statistic),
			PValue:       formatFloat(t.PValue),
			PAdjusted:    formatFloat(t.PAdjusted),
			Significance: t.Significance,
			Status:       t.Status,
			Reason:       t.Reason,
		}
		if t.Available() {
			row.Pairs = fmt.Sprint(t.Pairs)
		}
		data.Tests = append(data.Tests, row)
	}
	for _, c := range res.Correlations {
		data.Correlations = append(data.Correlations, CorrelationRow{
			Benchmark: c.Key.Benchmark,
			Version:   c.Key.Version,
			Size:      c.Key.Size,
			RhoTime:   formatFloat(c.RhoTime),
			RhoCPU:    formatFloat(c.RhoCPU),
			RhoMemory: formatFloat(c.RhoMemory),
		})
	}
	data.Plots = plotRefs(reportDir, plots)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	data.SummaryJSON = template.JS(encoded)

	var buf bytes.Buffer
	if err := htmlReportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteHTML renders the report into dir/report.html and returns its path.
func WriteHTML(dir string, res analysis.Result, plots []string) (string, error) {
	html, err := GenerateHTML(res, dir, plots)
	if err != nil {
		return "", fmt.Errorf("failed generating HTML report: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, HTMLFile)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("unable to write HTML report %s: %w", path, err)
	}
	return path, nil
}

func plotRefs(reportDir string, plots []string) []PlotRef {
	sorted := append([]string(nil), plots...)
	sort.Strings(sorted)
	refs := make([]PlotRef, 0, len(sorted))
	for _, p := range sorted {
		src := p
		if rel, err := filepath.Rel(reportDir, p); err == nil {
			src = rel
		}
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		refs = append(refs, PlotRef{
			Title: strings.ReplaceAll(name, "_", " "),
			Src:   filepath.ToSlash(src),
		})
	}
	return refs
}

func formatPercent(v float64) string {
	s := formatFloat(roundTo(v, 2))
	if s == missing {
		return s
	}
	return s + "%"
}

var htmlReportTemplate = template.Must(template.New("energy-report").Parse(htmlReportTemplateHTML))

const htmlReportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --success: #10B981;
      --border: #E2E8F0;
    }
    body { background-color: var(--light); color: var(--text); }
    .navbar-dark { background-color: var(--primary) !important; }
    .card { border: 1px solid var(--border); background-color: var(--background); }
    .table thead th { cursor: pointer; background-color: var(--light); }
    td.improved { background-color: #D1FAE5; font-weight: 600; }
    .plot img { max-width: 100%; border: 1px solid var(--border); border-radius: 8px; }
    .muted { color: var(--secondary); }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark mb-4">
    <div class="container-fluid">
      <span class="navbar-brand">{{ .Title }}</span>
      <span class="text-light small">Generated {{ .GeneratedAt }}</span>
    </div>
  </nav>
  <main class="container-fluid">
    <div class="card mb-4"><div class="card-body">
      <p class="mb-1"><strong>{{ .Baseline }}</strong> vs <strong>{{ .Treatment }}</strong> at alpha {{ .Alpha }} (Bonferroni corrected).</p>
      <p class="muted mb-0">{{ .Records }} records; {{ .Removed }} outliers hidden from plots; {{ .Missing }} records without energy.</p>
    </div></div>

    <div class="card mb-4"><div class="card-body">
      <h5>Summary</h5>
      <table class="table table-sm table-striped table-bordered sortable" id="summaryTable">
        <thead><tr>
          <th>Benchmark</th><th>Size</th><th>{{ .Baseline }} energy (J)</th><th>{{ .Treatment }} energy (J)</th>
          <th>Energy</th><th>Time</th><th>CPU</th><th>Memory</th>
          <th>p (adj.)</th><th>Sig.</th><th>Cliff's delta</th><th>Magnitude</th>
        </tr></thead>
        <tbody>
        {{- range .Summary }}
          <tr>
            <td>{{ .Benchmark }}</td><td>{{ .Size }}</td><td>{{ .BaselineEnergy }}</td><td>{{ .TreatmentEnergy }}</td>
            <td{{ if .Improved }} class="improved"{{ end }}>{{ .EnergyReduction }}</td><td>{{ .TimeReduction }}</td><td>{{ .CPUReduction }}</td><td>{{ .MemoryReduction }}</td>
            <td>{{ .PAdjusted }}</td><td>{{ .Significance }}</td><td>{{ .EffectSize }}</td><td>{{ .EffectMagnitude }}</td>
          </tr>
        {{- end }}
        </tbody>
      </table>
    </div></div>

    <div class="row">
      <div class="col-lg-6"><div class="card mb-4"><div class="card-body">
        <h5>RQ1: Wilcoxon signed-rank tests</h5>
        <table class="table table-sm table-striped table-bordered sortable">
          <thead><tr><th>Benchmark</th><th>Size</th><th>Pairs</th><th>V</th><th>p</th><th>p (adj.)</th><th>Sig.</th><th>Status</th></tr></thead>
          <tbody>
          {{- range .Tests }}
            <tr>
              <td>{{ .Benchmark }}</td><td>{{ .Size }}</td><td>{{ .Pairs }}</td><td>{{ .Statistic }}</td>
              <td>{{ .PValue }}</td><td>{{ .PAdjusted }}</td><td>{{ .Significance }}</td>
              <td{{ if .Reason }} title="{{ .Reason }}"{{ end }}>{{ .Status }}</td>
            </tr>
          {{- end }}
          </tbody>
        </table>
      </div></div></div>
      <div class="col-lg-6"><div class="card mb-4"><div class="card-body">
        <h5>RQ2: Spearman correlations with energy</h5>
        <table class="table table-sm table-striped table-bordered sortable">
          <thead><tr><th>Benchmark</th><th>Version</th><th>Size</th><th>Time</th><th>CPU</th><th>Memory</th></tr></thead>
          <tbody>
          {{- range .Correlations }}
            <tr><td>{{ .Benchmark }}</td><td>{{ .Version }}</td><td>{{ .Size }}</td><td>{{ .RhoTime }}</td><td>{{ .RhoCPU }}</td><td>{{ .RhoMemory }}</td></tr>
          {{- end }}
          </tbody>
        </table>
        <p class="muted small mb-0">RQ2 p-values are reported uncorrected in rq2_correlation_analysis.csv.</p>
      </div></div></div>
    </div>

    {{- if .Plots }}
    <div class="row">
      {{- range .Plots }}
      <div class="col-lg-6 mb-4 plot"><div class="card"><div class="card-body">
        <h6 class="text-capitalize">{{ .Title }}</h6>
        <img src="{{ .Src }}" alt="{{ .Title }}">
      </div></div></div>
      {{- end }}
    </div>
    {{- end }}
  </main>
  <script id="summary-data" type="application/json">{{ .SummaryJSON }}</script>
  <script>
    document.querySelectorAll("table.sortable").forEach(function (table) {
      table.querySelectorAll("thead th").forEach(function (th, idx) {
        var asc = true;
        th.addEventListener("click", function () {
          var body = table.tBodies[0];
          var rows = Array.from(body.rows);
          rows.sort(function (a, b) {
            var x = a.cells[idx].innerText, y = b.cells[idx].innerText;
            var nx = parseFloat(x), ny = parseFloat(y);
            var cmp = (!isNaN(nx) && !isNaN(ny)) ? nx - ny : x.localeCompare(y);
            return asc ? cmp : -cmp;
          });
          asc = !asc;
          rows.forEach(function (r) { body.appendChild(r); });
        });
      });
    });
  </script>
</body>
</html>
`
