// internal/cli/root_test.go
package energystat

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/mwiater/energystat/internal/logging"
)

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	if sv, ok := flag.Value.(pflag.SliceValue); ok {
		_ = sv.Replace(nil)
	} else {
		_ = flag.Value.Set(flag.DefValue)
	}
	flag.Changed = false
}

func resetFlags() {
	resetFlag("config")
	resetFlag("env-file")
	for _, name := range configFlags {
		resetFlag(name)
	}
	overviewJSON = false
	showConfigYAML = false
	viewFile = ""
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const sampleRunTable = `benchmark,version,size,cpu_energy_j,exec_time_sec,avg_cpu_usage,avg_used_memory
fannkuch,baseline,small,100,10,51,1100
fannkuch,baseline,small,104,10.4,51.04,1104
fannkuch,baseline,small,108,10.8,51.08,1108
fannkuch,baseline,small,112,11.2,51.12,1112
fannkuch,baseline,small,116,11.6,51.16,1116
fannkuch,opt,small,80,8,50.8,1080
fannkuch,opt,small,82,8.2,50.82,1082
fannkuch,opt,small,85,8.5,50.85,1085
fannkuch,opt,small,88,8.8,50.88,1088
fannkuch,opt,small,90,9,50.9,1090
`

func writeRunTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run_table.csv")
	if err := os.WriteFile(path, []byte(sampleRunTable), 0o644); err != nil {
		t.Fatalf("write run table: %v", err)
	}
	return path
}

// execute runs the root command with args and returns everything it wrote.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)
	t.Cleanup(func() { _ = logging.Close() })

	logPath := filepath.Join(t.TempDir(), "energystat.log")
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--logFile", logPath, "--env-file", ""}, args...))
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })

	_, err := rootCmd.ExecuteC()
	return buf.String(), err
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	configPath := writeTempConfig(t, `{"outputDir": "from-config", "alpha": 0.1}`)

	_, err := execute(t, "--config", configPath, "--alpha", "0.01", "--baselineVersion", "v1", "--treatmentVersion", "v2", "show", "config")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s", configPath)
	}
	if currentConfig.Alpha != 0.01 {
		t.Fatalf("expected flag alpha to override config, got %v", currentConfig.Alpha)
	}
	if currentConfig.OutputDir != "from-config" {
		t.Fatalf("expected outputDir from config, got %q", currentConfig.OutputDir)
	}
	if currentConfig.Baseline() != "v1" || currentConfig.Treatment() != "v2" {
		t.Fatalf("expected versions from flags, got %s/%s", currentConfig.Baseline(), currentConfig.Treatment())
	}
}

func TestPersistentPreRunERejectsInvalidConfig(t *testing.T) {
	configPath := writeTempConfig(t, `{"baselineVersion": "same", "treatmentVersion": "same"}`)

	_, err := execute(t, "--config", configPath, "show", "config")
	if err == nil {
		t.Fatalf("expected error for identical versions")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPersistentPreRunERejectsAlphaOutOfRange(t *testing.T) {
	configPath := writeTempConfig(t, "{}")

	if _, err := execute(t, "--config", configPath, "--alpha", "1.5", "show", "config"); err == nil {
		t.Fatalf("expected error for alpha 1.5")
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")

	_, err := execute(t, "--config", missing, "show", "config")
	if err == nil || !strings.Contains(err.Error(), "no configuration file found") {
		t.Fatalf("expected missing config error, got %v", err)
	}
}

func TestEnvironmentOverridesConfig(t *testing.T) {
	configPath := writeTempConfig(t, `{"alpha": 0.1}`)
	t.Setenv("ENERGYSTAT_ALPHA", "0.01")

	out, err := execute(t, "--config", configPath, "show", "config")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	if !strings.Contains(out, "Alpha:             0.01") {
		t.Fatalf("expected env alpha in output, got %s", out)
	}
}

func TestDotenvFileIsLoaded(t *testing.T) {
	configPath := writeTempConfig(t, "{}")
	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("ENERGYSTAT_TREATMENTVERSION=fast\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("ENERGYSTAT_TREATMENTVERSION", "")
	os.Unsetenv("ENERGYSTAT_TREATMENTVERSION")

	out, err := execute(t, "--config", configPath, "--env-file", envPath, "show", "config")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	if !strings.Contains(out, "Treatment Version: fast") {
		t.Fatalf("expected dotenv treatment version, got %s", out)
	}
}
