package energystat

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mwiater/energystat/internal/analysis"
	"github.com/mwiater/energystat/internal/appconfig"
	"github.com/mwiater/energystat/internal/logging"
	"github.com/mwiater/energystat/internal/plots"
	"github.com/mwiater/energystat/internal/report"
	"github.com/mwiater/energystat/internal/runtable"
)

var errConfigNotLoaded = errors.New("configuration not loaded")

// analysisOptions maps the configuration onto pipeline options.
func analysisOptions(cfg appconfig.Config) analysis.Options {
	return analysis.Options{
		BaselineVersion:  cfg.Baseline(),
		TreatmentVersion: cfg.Treatment(),
		Alpha:            cfg.SignificanceLevel(),
	}
}

// runAnalyze executes the pipeline end to end. Plot failures are reported
// as warnings; every other stage failure aborts the run.
func runAnalyze(out io.Writer, cfg appconfig.Config) error {
	table, err := runtable.Load(cfg.InputPath())
	if err != nil {
		return err
	}
	logging.LogStage("load", "%d records from %s", len(table.Records), table.Path)

	res, err := analysis.NewPipeline(analysisOptions(cfg)).Run(table.Records)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	written, err := report.WriteTables(cfg.OutputPath(), res)
	if err != nil {
		return err
	}

	var plotFiles []string
	if cfg.PlotsEnabled() {
		renderer := &plots.PNGRenderer{
			Dir:      cfg.PlotPath(),
			Forensic: cfg.ForensicBenchmarks,
			Seed:     cfg.Seed(),
		}
		plotFiles, err = renderer.Render(res)
		if err != nil {
			warn := color.New(color.FgYellow)
			warn.Fprintf(out, "warning: some plots could not be rendered: %v\n", err)
		}
		written = append(written, plotFiles...)
	}

	if cfg.HTMLReportEnabled() {
		path, err := report.WriteHTML(cfg.OutputPath(), res, plotFiles)
		if err != nil {
			return err
		}
		written = append(written, path)
	}

	report.PrintSummary(out, res)

	ok := color.New(color.FgGreen)
	fmt.Fprintln(out)
	ok.Fprintf(out, "Wrote %d files:\n", len(written))
	for _, path := range written {
		fmt.Fprintf(out, "  %s\n", path)
	}
	logging.LogStage("done", "wrote %d files", len(written))
	return nil
}
