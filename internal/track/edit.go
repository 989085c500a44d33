package track

// Clamp limits the metric of the points within [from, to] to
// [bound, +inf) when isMax is false, or (-inf, bound] when it is true.
// It returns the number of points changed.
func (t *Track) Clamp(m Metric, bound float64, isMax bool, from, to int) int {
	changed := 0
	for i := from; i <= to && i < len(t.points); i++ {
		p := &t.points[i]
		v := m.Value(p)
		if (isMax && v > bound) || (!isMax && v < bound) {
			m.SetValue(p, bound)
			changed++
		}
	}
	if m == MetricElevation {
		t.NumElevAdj += changed
	}
	t.Refresh(m)
	return changed
}

// GradeChanges returns the points within [from, to] whose grade change
// exceeds the bound (above) or falls below it. Nothing is modified.
func (t *Track) GradeChanges(bound float64, above bool, from, to int) []TrackPoint {
	var out []TrackPoint
	for i := max(from, 1); i <= to && i < len(t.points); i++ {
		p := &t.points[i]
		if (above && p.DeltaG > bound) || (!above && p.DeltaG < bound) {
			out = append(out, *p)
		}
	}
	return out
}

// Scale multiplies the metric of the points within [from, to] by factor.
func (t *Track) Scale(m Metric, factor float64, from, to int) {
	for i := from; i <= to && i < len(t.points); i++ {
		p := &t.points[i]
		m.SetValue(p, m.Value(p)*factor)
		if m == MetricElevation && factor != 1 {
			t.NumElevAdj++
		}
	}
	t.Refresh(m)
}

// Trim removes the points within [from, to] and closes the time and
// distance gap they leave: every point after the range is moved back by
// the span between the first and last trimmed points. Only the boundary
// values and the aggregates are refreshed; the retained points keep their
// derived metrics.
func (t *Track) Trim(from, to int) {
	if len(t.points) == 0 || from < 0 || to >= len(t.points) || from > to {
		return
	}

	baselineTime := t.points[from].Timestamp
	baselineDist := t.points[from].Distance
	trimmedTime := t.points[to].Timestamp - baselineTime
	trimmedDist := t.points[to].Distance - baselineDist

	kept := make([]TrackPoint, 0, len(t.points)-(to-from+1))
	kept = append(kept, t.points[:from]...)
	for _, p := range t.points[to+1:] {
		if p.Timestamp -= trimmedTime; p.Timestamp < 0 {
			p.Timestamp = 0
		}
		if p.Distance != NilDistance {
			if p.Distance -= trimmedDist; p.Distance < 0 {
				p.Distance = 0
			}
		}
		kept = append(kept, p)
	}

	t.NumTrimPoints += to - from + 1
	t.points = kept
	t.Reindex()

	switch {
	case len(t.points) == 0:
	case from == 0:
		t.rebaseHead()
	case from < len(t.points):
		// The point after the gap now follows the last point before it.
		p := &t.points[from]
		p.DeltaT = p.Timestamp - t.points[from-1].Timestamp
	}

	t.refreshTotals()
	t.RecomputeAggregates()
}

// rebaseHead makes the first point the baseline again after the head of the
// track was trimmed: distance 0, grade 0 and no deltas. The distances of the
// following points are shifted by the same amount.
func (t *Track) rebaseHead() {
	first := &t.points[0]
	if base := first.Distance; base != NilDistance && base != 0 {
		for i := range t.points {
			p := &t.points[i]
			if p.Distance == NilDistance {
				continue
			}
			if p.Distance -= base; p.Distance < 0 {
				p.Distance = 0
			}
		}
	}
	first.Distance = 0
	first.Grade = 0
	first.Dist, first.Run, first.Rise = 0, 0, 0
	first.DeltaT, first.DeltaG, first.Bearing = 0, 0, 0
}
