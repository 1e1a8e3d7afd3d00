package appconfig

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ShowConfig prints the effective configuration with defaults resolved.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Input:             %s\n", cfg.InputPath())
	fmt.Fprintf(out, "  Output Dir:        %s\n", cfg.OutputPath())
	fmt.Fprintf(out, "  Plot Dir:          %s\n", cfg.PlotPath())
	fmt.Fprintf(out, "  Baseline Version:  %s\n", cfg.Baseline())
	fmt.Fprintf(out, "  Treatment Version: %s\n", cfg.Treatment())
	fmt.Fprintf(out, "  Alpha:             %g\n", cfg.SignificanceLevel())
	if len(cfg.ForensicBenchmarks) == 0 {
		fmt.Fprintln(out, "  Forensic Plots:    all benchmarks")
	} else {
		fmt.Fprintf(out, "  Forensic Plots:    %v\n", cfg.ForensicBenchmarks)
	}
	fmt.Fprintf(out, "  Jitter Seed:       %d\n", cfg.Seed())
	fmt.Fprintf(out, "  Plots:             %v\n", cfg.PlotsEnabled())
	fmt.Fprintf(out, "  HTML Report:       %v\n", cfg.HTMLReportEnabled())
	fmt.Fprintf(out, "  Log File:          %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:             %v\n", cfg.Debug)
}

// Resolved returns a copy of cfg with every default made explicit.
func (c Config) Resolved() Config {
	plots := c.PlotsEnabled()
	html := c.HTMLReportEnabled()
	return Config{
		Input:              c.InputPath(),
		OutputDir:          c.OutputPath(),
		PlotDir:            c.PlotPath(),
		BaselineVersion:    c.Baseline(),
		TreatmentVersion:   c.Treatment(),
		Alpha:              c.SignificanceLevel(),
		ForensicBenchmarks: c.ForensicBenchmarks,
		JitterSeed:         c.Seed(),
		Plots:              &plots,
		HTMLReport:         &html,
		LogFile:            c.LogFilePath(),
		Debug:              c.Debug,
		ConfigPath:         c.ConfigPath,
	}
}

// WriteYAML encodes the resolved configuration as YAML.
func WriteYAML(out io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Resolved()); err != nil {
		return fmt.Errorf("encode config yaml: %w", err)
	}
	return enc.Close()
}
