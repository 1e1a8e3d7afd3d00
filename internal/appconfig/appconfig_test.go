// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad verifies that a valid file loads, while invalid JSON, schema
// violations and missing explicit paths fail.
func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
        "input": "runs/table.csv",
        "outputDir": "out",
        "alpha": 0.01,
        "forensicBenchmarks": ["fannkuch"],
        "plots": false
    }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected ConfigPath %q, got %q", path, cfg.ConfigPath)
	}
	if cfg.InputPath() != "runs/table.csv" {
		t.Fatalf("unexpected input path %q", cfg.InputPath())
	}
	if cfg.PlotPath() != filepath.Join("out", "plots") {
		t.Fatalf("expected plots under output dir, got %q", cfg.PlotPath())
	}
	if cfg.SignificanceLevel() != 0.01 {
		t.Fatalf("expected alpha 0.01, got %v", cfg.SignificanceLevel())
	}
	if cfg.PlotsEnabled() {
		t.Fatal("expected plots disabled")
	}
	if !cfg.HTMLReportEnabled() {
		t.Fatal("expected html report enabled by default")
	}

	if _, err := Load(writeConfig(t, `{ "input": `)); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}
	if _, err := Load(writeConfig(t, `{ "alpha": 2 }`)); err == nil {
		t.Fatal("Load() with alpha outside (0,1) should have failed")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load() with a missing explicit path should have failed")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	checks := map[string][2]string{
		"input":     {cfg.InputPath(), "data/run_table.csv"},
		"output":    {cfg.OutputPath(), "data/output"},
		"plots":     {cfg.PlotPath(), filepath.Join("data/output", "plots")},
		"baseline":  {cfg.Baseline(), "baseline"},
		"treatment": {cfg.Treatment(), "opt"},
		"log":       {cfg.LogFilePath(), "energystat.log"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Fatalf("%s: expected %q, got %q", name, c[1], c[0])
		}
	}
	if cfg.SignificanceLevel() != 0.05 {
		t.Fatalf("expected default alpha 0.05, got %v", cfg.SignificanceLevel())
	}
	if cfg.Seed() != 42 {
		t.Fatalf("expected default seed 42, got %d", cfg.Seed())
	}
	if !cfg.PlotsEnabled() || !cfg.HTMLReportEnabled() {
		t.Fatal("expected plots and html report enabled by default")
	}
}

func TestValidateRejectsSameVersions(t *testing.T) {
	cfg := Config{BaselineVersion: "opt"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when baseline equals treatment")
	}
}

func TestValidateRejectsDuplicateForensicBenchmarks(t *testing.T) {
	cfg := Config{ForensicBenchmarks: []string{"a", "a"}}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "schema") {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", Config{ForensicBenchmarks: []string{"nbody"}})
	out := buf.String()
	for _, want := range []string{"No config file loaded", "data/run_table.csv", "[nbody]", "Alpha:             0.05"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteYAMLResolvesDefaults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, Config{Alpha: 0.1}); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"input: data/run_table.csv", "alpha: 0.1", "plots: true", "treatmentVersion: opt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in yaml:\n%s", want, out)
		}
	}
}
