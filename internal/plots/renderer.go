// Package plots renders the pipeline result as PNG figures. It reads
// analysis.Result values only; nothing in the statistical core depends on it.
package plots

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mwiater/energystat/internal/analysis"
	"github.com/mwiater/energystat/internal/logging"
)

// Plot file names written under the plot directory.
const (
	BoxplotFile  = "energy_boxplots.png"
	HeatmapFile  = "percent_change_heatmap.png"
	DotplotFile  = "effect_size_dotplot.png"
	forensicFile = "forensic_%s.png"
)

// Renderer turns a pipeline result into image files and returns their paths.
type Renderer interface {
	Render(res analysis.Result) ([]string, error)
}

// PNGRenderer draws every figure with gonum/plot.
type PNGRenderer struct {
	Dir string
	// Forensic lists the benchmarks that get a forensic plot. Empty means
	// every benchmark in the result.
	Forensic []string
	// Seed makes the point jitter reproducible.
	Seed int64
}

var _ Renderer = (*PNGRenderer)(nil)

// versionColors cycles through the fill colours used per version.
var versionColors = []color.Color{
	color.NRGBA{R: 0x64, G: 0x74, B: 0x8B, A: 0xff},
	color.NRGBA{R: 0x10, G: 0xB9, B: 0x81, A: 0xff},
	color.NRGBA{R: 0x3B, G: 0x82, B: 0xF6, A: 0xff},
	color.NRGBA{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xff},
}

// Render writes every plot. A failing plot is logged and skipped; the
// returned error joins every failure.
func (r *PNGRenderer) Render(res analysis.Result) ([]string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create plot directory %s: %w", r.Dir, err)
	}

	type job struct {
		name string
		draw func(path string) error
	}
	jobs := []job{
		{BoxplotFile, func(path string) error { return r.boxplots(res, path) }},
		{HeatmapFile, func(path string) error { return r.heatmap(res, path) }},
		{DotplotFile, func(path string) error { return r.dotplot(res, path) }},
	}
	for _, bench := range r.forensicTargets(res) {
		jobs = append(jobs, job{
			name: fmt.Sprintf(forensicFile, fileSafe(bench)),
			draw: func(path string) error { return r.forensic(res, bench, path) },
		})
	}

	var paths []string
	var errs []error
	for _, j := range jobs {
		path := filepath.Join(r.Dir, j.name)
		if err := safeDraw(j.draw, path); err != nil {
			logging.LogStage("plots", "%s failed: %v", j.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", j.name, err))
			continue
		}
		logging.LogStage("plots", "wrote %s", path)
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

// safeDraw converts a panic raised while drawing into an error.
func safeDraw(fn func(string) error, path string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render panic: %v", rec)
		}
	}()
	return fn(path)
}

func (r *PNGRenderer) forensicTargets(res analysis.Result) []string {
	if len(r.Forensic) > 0 {
		return r.Forensic
	}
	seen := make(map[string]struct{})
	var out []string
	for _, d := range res.Descriptive {
		if _, ok := seen[d.Key.Benchmark]; ok {
			continue
		}
		seen[d.Key.Benchmark] = struct{}{}
		out = append(out, d.Key.Benchmark)
	}
	return out
}

// saveGrid draws a grid of plots onto one PNG. Nil entries leave a blank tile.
func saveGrid(path string, grid [][]*plot.Plot, tileW, tileH vg.Length) error {
	rows := len(grid)
	if rows == 0 || len(grid[0]) == 0 {
		return errors.New("nothing to draw")
	}
	cols := len(grid[0])

	img := vgimg.New(tileW*vg.Length(cols), tileH*vg.Length(rows))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align(grid, tiles, dc)
	for j := range grid {
		for i, p := range grid[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(file); err != nil {
		return err
	}
	return file.Close()
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
