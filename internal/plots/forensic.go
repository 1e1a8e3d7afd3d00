package plots

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	mstats "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mwiater/energystat/internal/analysis"
	"github.com/mwiater/energystat/internal/runtable"
	"github.com/mwiater/energystat/internal/stats"
)

const (
	// violinHalfWidth is the widest half-extent of a violin in category units.
	violinHalfWidth = 0.4
	// jitterWidth is the horizontal spread of the raw points.
	jitterWidth = 0.15
	// densitySteps is the number of evaluation points along each violin.
	densitySteps = 64
)

// forensic draws a violin with jittered raw points per (size, version) of one
// benchmark on a log energy axis. It uses every record, outliers included,
// and only values above zero.
func (r *PNGRenderer) forensic(res analysis.Result, benchmark, path string) error {
	var records []runtable.Record
	for _, rec := range res.Records {
		if rec.Benchmark == benchmark && rec.CPUEnergyJ > 0 && !math.IsInf(rec.CPUEnergyJ, 0) {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return fmt.Errorf("no positive energy values for %q", benchmark)
	}

	rng := rand.New(rand.NewPCG(uint64(r.Seed), uint64(r.Seed)))
	versions := orderedVersions(records, res.Options)

	p := plot.New()
	p.Title.Text = "Forensic view: " + benchmark
	p.Y.Label.Text = "CPU energy (J, log scale)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	var names []string
	for _, g := range runtable.ByKey(records) {
		values := runtable.Values(g.Records, runtable.ColCPUEnergyJ)
		x := float64(len(names))
		names = append(names, g.Key.Size+" "+g.Key.Version)
		col := versionColors[indexOf(versions, g.Key.Version)%len(versionColors)]

		if outline := violin(values, x); outline != nil {
			poly, err := plotter.NewPolygon(outline)
			if err != nil {
				return err
			}
			poly.Color = fade(col)
			poly.LineStyle.Color = col
			p.Add(poly)
		}

		points := make(plotter.XYs, len(values))
		for i, v := range values {
			points[i] = plotter.XY{X: x + (rng.Float64()*2-1)*jitterWidth, Y: v}
		}
		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = col
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)

		med := stats.Median(values)
		line, err := plotter.NewLine(plotter.XYs{{X: x - violinHalfWidth/2, Y: med}, {X: x + violinHalfWidth/2, Y: med}})
		if err != nil {
			return err
		}
		line.Width = vg.Points(2)
		p.Add(line)
	}
	if len(names) == 0 {
		return errors.New("no groups to draw")
	}
	p.NominalX(names...)

	lo, hi := mstats.Bounds(runtable.Values(records, runtable.ColCPUEnergyJ))
	p.Y.Min, p.Y.Max = lo/1.25, hi*1.25

	width := vg.Length(2+1.2*float64(len(names))) * vg.Inch
	return p.Save(width, 4*vg.Inch, path)
}

// violin returns the closed outline of a kernel density estimate of values,
// mirrored around x. Density is estimated on log10 values so the shape
// matches the log axis. It returns nil when the sample has no spread.
func violin(values []float64, x float64) plotter.XYs {
	if len(values) < 2 {
		return nil
	}
	logs := make([]float64, len(values))
	for i, v := range values {
		logs[i] = math.Log10(v)
	}
	sample := mstats.Sample{Xs: logs}
	if sample.StdDev() == 0 || math.IsNaN(sample.StdDev()) {
		return nil
	}
	kde := &mstats.KDE{Sample: sample}

	lo, hi := mstats.Bounds(logs)
	step := (hi - lo) / float64(densitySteps-1)
	ys := make([]float64, densitySteps)
	dens := make([]float64, densitySteps)
	peak := 0.0
	for i := range ys {
		ys[i] = lo + float64(i)*step
		dens[i] = kde.PDF(ys[i])
		peak = math.Max(peak, dens[i])
	}
	if peak == 0 || math.IsNaN(peak) {
		return nil
	}

	outline := make(plotter.XYs, 0, 2*densitySteps)
	for i := range ys {
		outline = append(outline, plotter.XY{X: x + dens[i]/peak*violinHalfWidth, Y: math.Pow(10, ys[i])})
	}
	for i := len(ys) - 1; i >= 0; i-- {
		outline = append(outline, plotter.XY{X: x - dens[i]/peak*violinHalfWidth, Y: math.Pow(10, ys[i])})
	}
	return outline
}

func indexOf(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return 0
}
