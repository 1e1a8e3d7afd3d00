package plots

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mwiater/energystat/internal/analysis"
	"github.com/mwiater/energystat/internal/runtable"
)

// boxplots draws one facet per (benchmark, size) with a box per version,
// using the outlier-filtered display copy.
func (r *PNGRenderer) boxplots(res analysis.Result, path string) error {
	records := res.Filtered.Records
	if len(records) == 0 {
		return errors.New("no records left after filtering")
	}
	benchmarks := uniqueSorted(records, func(rec runtable.Record) string { return rec.Benchmark })
	sizes := uniqueSorted(records, func(rec runtable.Record) string { return rec.Size })
	versions := orderedVersions(records, res.Options)

	byKey := make(map[runtable.Key][]float64)
	for _, g := range runtable.ByKey(records) {
		byKey[g.Key] = runtable.Values(g.Records, runtable.ColCPUEnergyJ)
	}

	grid := make([][]*plot.Plot, len(benchmarks))
	for j, bench := range benchmarks {
		grid[j] = make([]*plot.Plot, len(sizes))
		for i, size := range sizes {
			p := plot.New()
			p.Title.Text = bench + " / " + size
			p.Y.Label.Text = "CPU energy (J)"

			drawn := false
			for k, version := range versions {
				values := byKey[runtable.Key{Benchmark: bench, Version: version, Size: size}]
				if len(values) == 0 {
					continue
				}
				box, err := plotter.NewBoxPlot(vg.Points(18), float64(k), plotter.Values(values))
				if err != nil {
					return fmt.Errorf("%s/%s/%s: %w", bench, version, size, err)
				}
				box.FillColor = versionColors[k%len(versionColors)]
				p.Add(box)
				drawn = true
			}
			if !drawn {
				continue
			}
			p.NominalX(versions...)
			grid[j][i] = p
		}
	}
	return saveGrid(path, grid, 3*vg.Inch, 2.5*vg.Inch)
}

// reductionGrid lays out energy reduction percentages with benchmarks on the
// Y axis and sizes on the X axis. Missing cells are NaN.
type reductionGrid struct {
	cols, rows []string
	z          [][]float64
}

func (g reductionGrid) Dims() (c, r int)   { return len(g.cols), len(g.rows) }
func (g reductionGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g reductionGrid) X(c int) float64    { return float64(c) }
func (g reductionGrid) Y(r int) float64    { return float64(r) }

func newReductionGrid(comparisons []analysis.Comparison) reductionGrid {
	var g reductionGrid
	rowIndex := map[string]int{}
	colIndex := map[string]int{}
	for _, c := range comparisons {
		if _, ok := rowIndex[c.Key.Benchmark]; !ok {
			rowIndex[c.Key.Benchmark] = 0
			g.rows = append(g.rows, c.Key.Benchmark)
		}
		if _, ok := colIndex[c.Key.Size]; !ok {
			colIndex[c.Key.Size] = 0
			g.cols = append(g.cols, c.Key.Size)
		}
	}
	sort.Strings(g.rows)
	sort.Strings(g.cols)
	for i, name := range g.rows {
		rowIndex[name] = i
	}
	for i, name := range g.cols {
		colIndex[name] = i
	}

	g.z = make([][]float64, len(g.rows))
	for i := range g.z {
		g.z[i] = make([]float64, len(g.cols))
		for k := range g.z[i] {
			g.z[i][k] = math.NaN()
		}
	}
	for _, c := range comparisons {
		g.z[rowIndex[c.Key.Benchmark]][colIndex[c.Key.Size]] = c.EnergyReduction
	}
	return g
}

// heatmap draws the energy reduction per (benchmark, size) on a diverging
// palette centred on zero, annotating every cell.
func (r *PNGRenderer) heatmap(res analysis.Result, path string) error {
	if len(res.Comparisons) == 0 {
		return errors.New("no comparison rows")
	}
	g := newReductionGrid(res.Comparisons)

	limit := 0.0
	for _, row := range g.z {
		for _, v := range row {
			if !math.IsNaN(v) {
				limit = math.Max(limit, math.Abs(v))
			}
		}
	}
	if limit == 0 {
		limit = 1
	}

	h := plotter.NewHeatMap(g, palette.Radial(21, palette.Red, palette.Green, 1))
	h.Min, h.Max = -limit, limit
	h.NaN = color.Gray{Y: 0xdd}

	var cells plotter.XYs
	var text []string
	for ri := range g.rows {
		for ci := range g.cols {
			cells = append(cells, plotter.XY{X: float64(ci), Y: float64(ri)})
			v := g.z[ri][ci]
			if math.IsNaN(v) {
				text = append(text, "NA")
				continue
			}
			text = append(text, fmt.Sprintf("%.1f%%", v))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: cells, Labels: text})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Energy reduction, %s vs %s (%%)", res.Options.TreatmentVersion, res.Options.BaselineVersion)
	p.X.Label.Text = "Size"
	p.Y.Label.Text = "Benchmark"
	p.Add(h, labels)
	p.NominalX(g.cols...)
	p.NominalY(g.rows...)

	width := vg.Length(2+len(g.cols)) * vg.Inch
	height := vg.Length(1.5+0.5*float64(len(g.rows))) * vg.Inch
	return p.Save(width, height, path)
}

// dotplot draws Cliff's delta per (benchmark, size) with the magnitude bands
// marked. Significant groups are drawn filled.
func (r *PNGRenderer) dotplot(res analysis.Result, path string) error {
	var names []string
	var significant, other plotter.XYs
	for _, c := range res.Comparisons {
		if math.IsNaN(c.EffectSize) {
			continue
		}
		y := float64(len(names))
		names = append(names, c.Key.String())
		pt := plotter.XY{X: c.EffectSize, Y: y}
		if c.Significant != nil && *c.Significant {
			significant = append(significant, pt)
		} else {
			other = append(other, pt)
		}
	}
	if len(names) == 0 {
		return errors.New("no effect sizes to plot")
	}

	p := plot.New()
	p.Title.Text = "Effect size (Cliff's delta, positive = less energy)"
	p.X.Label.Text = "Cliff's delta"
	p.X.Min, p.X.Max = -1, 1
	p.NominalY(names...)

	top := float64(len(names)) - 0.5
	for _, band := range []float64{0, 0.147, -0.147, 0.33, -0.33, 0.474, -0.474} {
		line, err := plotter.NewLine(plotter.XYs{{X: band, Y: -0.5}, {X: band, Y: top}})
		if err != nil {
			return err
		}
		line.Color = color.Gray{Y: 0xaa}
		if band != 0 {
			line.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		}
		p.Add(line)
	}

	add := func(xys plotter.XYs, label string, shape draw.GlyphDrawer, col color.Color) error {
		if len(xys) == 0 {
			return nil
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		s.GlyphStyle.Shape = shape
		s.GlyphStyle.Color = col
		s.GlyphStyle.Radius = vg.Points(4)
		p.Add(s)
		p.Legend.Add(label, s)
		return nil
	}
	if err := add(significant, "significant", draw.CircleGlyph{}, versionColors[1]); err != nil {
		return err
	}
	if err := add(other, "not significant / n/a", draw.RingGlyph{}, versionColors[0]); err != nil {
		return err
	}
	p.Legend.Top = true

	height := vg.Length(1.5+0.3*float64(len(names))) * vg.Inch
	return p.Save(7*vg.Inch, height, path)
}

func uniqueSorted(records []runtable.Record, field func(runtable.Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		v := field(rec)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// orderedVersions puts the baseline first and the treatment second, then any
// other versions alphabetically.
func orderedVersions(records []runtable.Record, opts analysis.Options) []string {
	all := uniqueSorted(records, func(rec runtable.Record) string { return rec.Version })
	out := make([]string, 0, len(all))
	for _, v := range []string{opts.BaselineVersion, opts.TreatmentVersion} {
		for _, have := range all {
			if have == v {
				out = append(out, v)
			}
		}
	}
	for _, v := range all {
		if v != opts.BaselineVersion && v != opts.TreatmentVersion {
			out = append(out, v)
		}
	}
	return out
}

// fade returns col at a quarter opacity for area fills.
func fade(col color.Color) color.Color {
	r, g, b, _ := col.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x40}
}
