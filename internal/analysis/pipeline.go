package analysis

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mwiater/energystat/internal/logging"
	"github.com/mwiater/energystat/internal/runtable"
)

// Pipeline runs every analysis stage over an in-memory run table. It holds
// no state between runs.
type Pipeline struct {
	opts Options
	now  func() time.Time
}

// NewPipeline returns a pipeline comparing the versions named in opts.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{opts: opts, now: time.Now}
}

// Validate checks that the options describe a usable comparison.
func (o Options) Validate() error {
	if strings.TrimSpace(o.BaselineVersion) == "" || strings.TrimSpace(o.TreatmentVersion) == "" {
		return errors.New("baseline and treatment versions must be set")
	}
	if o.BaselineVersion == o.TreatmentVersion {
		return fmt.Errorf("baseline and treatment versions must differ (both %q)", o.BaselineVersion)
	}
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0, 1), got %v", o.Alpha)
	}
	return nil
}

// Run computes every derived table from records. Filtering and descriptive
// statistics both read the unfiltered records; only the display copy is
// filtered.
func (p *Pipeline) Run(records []runtable.Record) (Result, error) {
	if err := p.opts.Validate(); err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return Result{}, errors.New("run table contains no records")
	}

	res := Result{
		GeneratedAt: p.now().UTC(),
		Options:     p.opts,
		Records:     records,
	}

	res.Filtered = FilterOutliers(records)
	logging.LogStage("filter", "removed %d outliers from display copy (%d records missing energy)", res.Filtered.Removed, res.Filtered.MissingEnergy)

	res.Descriptive = Describe(records)
	logging.LogStage("describe", "%d groups summarised", len(res.Descriptive))

	res.PairedTests = PairedTests(records, p.opts)
	unavailable := 0
	for _, t := range res.PairedTests {
		if !t.Available() {
			unavailable++
			logging.LogStage("rq1", "%s: test unavailable: %s", t.Key, t.Reason)
		}
	}
	logging.LogStage("rq1", "%d paired tests (%d unavailable)", len(res.PairedTests), unavailable)

	res.Correlations = Correlations(records)
	logging.LogStage("rq2", "%d correlation groups", len(res.Correlations))

	res.Comparisons = BuildComparison(res.Descriptive, res.PairedTests, p.opts)
	logging.LogStage("compare", "%d comparison rows", len(res.Comparisons))

	return res, nil
}
