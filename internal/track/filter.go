package track

import (
	"fmt"

	"github.com/sstent/trackedit/internal/smooth"
)

// Filter selects one of the smoothing algorithms.
type Filter int

const (
	FilterSMA Filter = iota + 1 // trailing window
	FilterCMA                   // centered window
	FilterSGF                   // Savitzky-Golay polynomial regression
)

func (f Filter) String() string {
	switch f {
	case FilterSMA:
		return "sma"
	case FilterCMA:
		return "cma"
	case FilterSGF:
		return "sgf"
	}
	return "invalid"
}

// Series returns the metric's values in index order.
func (t *Track) Series(m Metric) []float64 {
	out := make([]float64, len(t.points))
	for i := range t.points {
		out[i] = m.Value(&t.points[i])
	}
	return out
}

// FilterValues runs the filter over the metric series without touching
// the track.
func (t *Track) FilterValues(f Filter, m Metric, window int) ([]float64, error) {
	if !m.Mutable() {
		return nil, fmt.Errorf("metric %s cannot be filtered", m)
	}
	values := t.Series(m)
	switch f {
	case FilterSMA:
		return smooth.SMA(values, window)
	case FilterCMA:
		return smooth.CMA(values, window)
	case FilterSGF:
		return smooth.SavitzkyGolay(values, window)
	}
	return nil, fmt.Errorf("unknown filter %d", f)
}

// ApplyFilter smooths the metric and commits the filtered values to the
// points within [from, to]. The values are computed over the whole series
// from the unfiltered data first, then committed in a second loop.
// Elevation changes rerun the metrics pass; other metrics only the
// aggregates.
func (t *Track) ApplyFilter(f Filter, m Metric, window, from, to int) error {
	filtered, err := t.FilterValues(f, m, window)
	if err != nil {
		return err
	}
	t.CommitSeries(m, filtered, from, to)
	return nil
}

// CommitSeries writes values into the metric of the points within
// [from, to] and reruns the passes the metric depends on.
func (t *Track) CommitSeries(m Metric, values []float64, from, to int) {
	from = max(from, 0)
	to = min(to, len(t.points)-1, len(values)-1)
	for i := from; i <= to; i++ {
		p := &t.points[i]
		if m == MetricElevation && p.Elevation != values[i] {
			t.NumElevAdj++
		}
		m.SetValue(p, values[i])
	}
	t.Refresh(m)
}

// Refresh reruns the passes that depend on the metric: the full metrics
// pass for elevation, the aggregates otherwise.
func (t *Track) Refresh(m Metric) {
	if m == MetricElevation {
		t.ComputeMetrics()
		return
	}
	t.RecomputeAggregates()
}
