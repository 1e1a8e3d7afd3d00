// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultInputPath is the run table written by the experiment runner.
	defaultInputPath = "data/run_table.csv"
	// defaultOutputDir receives every CSV, the HTML report and the plots directory.
	defaultOutputDir = "data/output"
	// defaultPlotSubdir is the plots directory relative to the output directory.
	defaultPlotSubdir = "plots"
	// defaultBaselineVersion names the reference version of every benchmark.
	defaultBaselineVersion = "baseline"
	// defaultTreatmentVersion names the optimized version of every benchmark.
	defaultTreatmentVersion = "opt"
	// defaultAlpha is the significance level applied to corrected p-values.
	defaultAlpha = 0.05
	// defaultJitterSeed seeds the point jitter in forensic plots.
	defaultJitterSeed = 42
	// defaultLogFile receives a copy of every log line.
	defaultLogFile = "energystat.log"
)

// Config represents the top-level application configuration.
type Config struct {
	Input              string   `json:"input,omitempty" yaml:"input,omitempty"`
	OutputDir          string   `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	PlotDir            string   `json:"plotDir,omitempty" yaml:"plotDir,omitempty"`
	BaselineVersion    string   `json:"baselineVersion,omitempty" yaml:"baselineVersion,omitempty"`
	TreatmentVersion   string   `json:"treatmentVersion,omitempty" yaml:"treatmentVersion,omitempty"`
	Alpha              float64  `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	ForensicBenchmarks []string `json:"forensicBenchmarks,omitempty" yaml:"forensicBenchmarks,omitempty"`
	JitterSeed         int64    `json:"jitterSeed,omitempty" yaml:"jitterSeed,omitempty"`
	Plots              *bool    `json:"plots,omitempty" yaml:"plots,omitempty"`
	HTMLReport         *bool    `json:"htmlReport,omitempty" yaml:"htmlReport,omitempty"`
	LogFile            string   `json:"logFile,omitempty" yaml:"logFile,omitempty"`
	Debug              bool     `json:"debug" yaml:"debug"`
	ConfigPath         string   `json:"-" yaml:"-"`
}

// InputPath returns the run table path, falling back to data/run_table.csv.
func (c Config) InputPath() string {
	if p := strings.TrimSpace(c.Input); p != "" {
		return p
	}
	return defaultInputPath
}

// OutputPath returns the directory receiving the CSV tables and the report.
func (c Config) OutputPath() string {
	if p := strings.TrimSpace(c.OutputDir); p != "" {
		return p
	}
	return defaultOutputDir
}

// PlotPath returns the plots directory, defaulting to <output>/plots.
func (c Config) PlotPath() string {
	if p := strings.TrimSpace(c.PlotDir); p != "" {
		return p
	}
	return filepath.Join(c.OutputPath(), defaultPlotSubdir)
}

// Baseline returns the version treated as the reference.
func (c Config) Baseline() string {
	if v := strings.TrimSpace(c.BaselineVersion); v != "" {
		return v
	}
	return defaultBaselineVersion
}

// Treatment returns the version compared against the baseline.
func (c Config) Treatment() string {
	if v := strings.TrimSpace(c.TreatmentVersion); v != "" {
		return v
	}
	return defaultTreatmentVersion
}

// SignificanceLevel returns alpha, or 0.05 when unset.
func (c Config) SignificanceLevel() float64 {
	if c.Alpha <= 0 {
		return defaultAlpha
	}
	return c.Alpha
}

// Seed returns the jitter seed for forensic plots.
func (c Config) Seed() int64 {
	if c.JitterSeed == 0 {
		return defaultJitterSeed
	}
	return c.JitterSeed
}

// PlotsEnabled reports whether PNG plots are rendered. Defaults to true.
func (c Config) PlotsEnabled() bool {
	return c.Plots == nil || *c.Plots
}

// HTMLReportEnabled reports whether report.html is written. Defaults to true.
func (c Config) HTMLReportEnabled() bool {
	return c.HTMLReport == nil || *c.HTMLReport
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// Load reads the application configuration from path. A missing file at the
// default path yields the defaults; a missing explicit path is an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if err := config.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid config file %q: %w", path, err)
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
