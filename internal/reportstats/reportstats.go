// Package reportstats accumulates per-record length and quality
// statistics over a run and renders them with gonum: gonum.org/v1/gonum/stat
// for the summary moments, gonum.org/v1/plot for an optional length
// histogram, rather than hand-rolling mean/stddev.
package reportstats

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/shenwei356/seqfeed/bioquality"
)

// Stats accumulates one sample per observed record.
type Stats struct {
	lengths   []float64
	meanQuals []float64
	filtered  int
}

// New returns an empty accumulator.
func New() *Stats { return &Stats{} }

// Observe folds in one record's sequence length and mean quality.
func (s *Stats) Observe(seqLen int, qual []byte, filtered bool) {
	s.lengths = append(s.lengths, float64(seqLen))
	s.meanQuals = append(s.meanQuals, MeanQuality(qual))
	if filtered {
		s.filtered++
	}
}

// MeanQuality returns the mean Phred-33 quality score of qual.
func MeanQuality(qual []byte) float64 {
	if len(qual) == 0 {
		return 0
	}
	sum := 0
	for _, c := range qual {
		sum += int(c) - bioquality.PhredOffset33
	}
	return float64(sum) / float64(len(qual))
}

// Summary is a snapshot of a Stats accumulator's moments.
type Summary struct {
	Count         int
	Filtered      int
	MeanLength    float64
	StdDevLength  float64
	MeanQuality   float64
	StdDevQuality float64
}

// Summary computes the current mean/standard-deviation snapshot.
func (s *Stats) Summary() Summary {
	if len(s.lengths) == 0 {
		return Summary{}
	}
	meanLen, stdLen := stat.MeanStdDev(s.lengths, nil)
	meanQ, stdQ := stat.MeanStdDev(s.meanQuals, nil)
	return Summary{
		Count:         len(s.lengths),
		Filtered:      s.filtered,
		MeanLength:    meanLen,
		StdDevLength:  stdLen,
		MeanQuality:   meanQ,
		StdDevQuality: stdQ,
	}
}

// WriteLengthHistogram renders a read-length histogram to path (PNG,
// inferred from its extension by gonum/plot).
func (s *Stats) WriteLengthHistogram(path string) error {
	if len(s.lengths) == 0 {
		return errors.New("no records observed, nothing to plot")
	}
	values := make(plotter.Values, len(s.lengths))
	copy(values, s.lengths)

	h, err := plotter.NewHist(values, 20)
	if err != nil {
		return errors.Wrap(err, "building length histogram")
	}
	p := plot.New()
	p.Title.Text = "read length distribution"
	p.X.Label.Text = "length"
	p.Y.Label.Text = "count"
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "saving length histogram")
	}
	return nil
}
