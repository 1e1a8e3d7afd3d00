package plots

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/energystat/internal/analysis"
	"github.com/mwiater/energystat/internal/runtable"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func records() []runtable.Record {
	var out []runtable.Record
	add := func(bench, version, size string, energies ...float64) {
		for i, e := range energies {
			out = append(out, runtable.Record{
				Benchmark: bench, Version: version, Size: size,
				CPUEnergyJ: e, ExecTimeSec: e / 10, AvgCPUUsage: 50, AvgUsedMemory: 100 + e,
				Repetition: i,
			})
		}
	}
	add("fannkuch", "baseline", "small", 10, 12, 11, 13, 10.5)
	add("fannkuch", "opt", "small", 8, 9, 8.5, 9.2, 8.1)
	add("fannkuch", "baseline", "large", 100, 104, 98, 101, 250)
	add("fannkuch", "opt", "large", 90, 91, 89, 95, 92)
	add("nbody", "baseline", "small", 5, 5, 5, 5, 5)
	add("nbody", "opt", "small", 6, 6.1, 5.9, 6.2, 6)
	return out
}

func result(t *testing.T) analysis.Result {
	t.Helper()
	res, err := analysis.NewPipeline(analysis.DefaultOptions()).Run(records())
	require.NoError(t, err)
	return res
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic), "%s is not a PNG", path)
}

func TestRenderWritesEveryPlot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	r := &PNGRenderer{Dir: dir, Seed: 42}

	paths, err := r.Render(result(t))
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, BoxplotFile),
		filepath.Join(dir, HeatmapFile),
		filepath.Join(dir, DotplotFile),
		filepath.Join(dir, "forensic_fannkuch.png"),
		filepath.Join(dir, "forensic_nbody.png"),
	}
	assert.Equal(t, want, paths)
	for _, p := range paths {
		assertPNG(t, p)
	}
}

func TestRenderOnlyConfiguredForensicBenchmarks(t *testing.T) {
	dir := t.TempDir()
	r := &PNGRenderer{Dir: dir, Forensic: []string{"nbody"}, Seed: 1}

	paths, err := r.Render(result(t))
	require.NoError(t, err)
	assert.Contains(t, paths, filepath.Join(dir, "forensic_nbody.png"))
	assert.NotContains(t, paths, filepath.Join(dir, "forensic_fannkuch.png"))
}

func TestRenderReportsFailuresAndContinues(t *testing.T) {
	dir := t.TempDir()
	res := result(t)
	res.Comparisons = nil
	r := &PNGRenderer{Dir: dir, Forensic: []string{"missing"}, Seed: 1}

	paths, err := r.Render(res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), HeatmapFile)
	assert.Contains(t, err.Error(), DotplotFile)
	assert.Contains(t, err.Error(), "forensic_missing.png")
	assert.Equal(t, []string{filepath.Join(dir, BoxplotFile)}, paths)
}

func TestForensicIsReproducible(t *testing.T) {
	res := result(t)
	a := filepath.Join(t.TempDir(), "a.png")
	b := filepath.Join(t.TempDir(), "b.png")
	r := &PNGRenderer{Seed: 7}
	require.NoError(t, r.forensic(res, "fannkuch", a))
	require.NoError(t, r.forensic(res, "fannkuch", b))

	first, err := os.ReadFile(a)
	require.NoError(t, err)
	second, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestViolinOutline(t *testing.T) {
	outline := violin([]float64{1, 2, 3, 4, 10}, 2)
	require.Len(t, outline, 2*densitySteps)
	for _, pt := range outline {
		assert.InDelta(t, 2, pt.X, violinHalfWidth+1e-9)
		assert.Greater(t, pt.Y, 0.0)
	}
	assert.Nil(t, violin([]float64{5, 5, 5}, 0), "no spread")
	assert.Nil(t, violin([]float64{5}, 0), "single value")
}

func TestReductionGrid(t *testing.T) {
	g := newReductionGrid([]analysis.Comparison{
		{Key: runtable.PairKey{Benchmark: "b", Size: "small"}, EnergyReduction: 10},
		{Key: runtable.PairKey{Benchmark: "a", Size: "large"}, EnergyReduction: -5},
	})
	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, []string{"a", "b"}, g.rows)
	assert.Equal(t, []string{"large", "small"}, g.cols)
	assert.Equal(t, -5.0, g.Z(0, 0))
	assert.Equal(t, 10.0, g.Z(1, 1))
	assert.True(t, math.IsNaN(g.Z(1, 0)))
}

func TestOrderedVersions(t *testing.T) {
	recs := []runtable.Record{{Version: "zeta"}, {Version: "opt"}, {Version: "baseline"}, {Version: "alpha"}}
	got := orderedVersions(recs, analysis.DefaultOptions())
	assert.Equal(t, []string{"baseline", "opt", "alpha", "zeta"}, got)
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "n_body_2", fileSafe("n body/2"))
}
