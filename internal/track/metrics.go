package track

import (
	"math"

	"github.com/sstent/trackedit/internal/geo"
)

const (
	// MaxGrade bounds the absolute grade value (in %) of any point.
	MaxGrade = 99.9

	// Speeds above this (100 km/h, in m/s) are flagged as implausible.
	implausibleSpeed = 100.0 / 3.6
)

/* Consecutive points P1 and P2 define a pseudo right triangle: the base
 * is the horizontal distance "run", the height the elevation change
 * "rise", and the hypotenuse the distance "dist" actually traveled.
 *
 *                                 + P2
 *                                /|
 *                          dist / | rise
 *                              /  |
 *                          P1 +---+
 *                              run
 *
 * The run is really a great-circle arc, but at a 1 Hz sampling rate it is
 * short enough to be treated as a straight line. When the device provides
 * a cumulative distance, dist comes from it and run is the Pythagorean leg.
 * Otherwise run comes from Haversine and dist from Pythagoras. Consumer GPS
 * elevation is noisy enough that rise can exceed dist; the Haversine run is
 * used then.
 */

// ComputeMetrics recomputes the derived fields of every point and the track
// totals, then rebuilds the aggregates. The first point is the baseline:
// distance 0 and grade 0.
//
// Samples that did not move are discarded, or in verbatim mode keep the
// previous point's bearing, distance, grade and speed.
func (t *Track) ComputeMetrics() {
	t.Time = 0
	t.Distance = 0
	if len(t.points) == 0 {
		t.StartTime, t.EndTime = 0, 0
		t.RecomputeAggregates()
		return
	}

	t.rebaseDistance()

	first := &t.points[0]
	if !first.HasSourceDistance() {
		first.DerivedDistance = true
	}
	first.Distance = 0
	first.Grade = 0
	first.Dist, first.Run, first.Rise = 0, 0, 0
	first.DeltaT, first.DeltaG, first.Bearing = 0, 0, 0
	if !first.HasSourceSpeed() {
		first.Speed = 0
		first.DerivedSpeed = true
	}

	t.StartTime = first.Timestamp
	t.EndTime = first.Timestamp

	prev, i := 0, 1
	for i < len(t.points) {
		p1 := &t.points[prev]
		p2 := &t.points[i]

		p2.Rise = p2.Elevation - p1.Elevation
		p2.DeltaT = p2.Timestamp - p1.Timestamp

		derived := !p2.HasSourceDistance()
		hRun := -1.0 // not computed yet
		var dist float64
		var degenerate bool
		if derived {
			hRun = geo.Haversine(p1.Latitude, p1.Longitude, p2.Latitude, p2.Longitude)
			dist = geo.Hypotenuse(hRun, p2.Rise)
			degenerate = hRun == 0
		} else {
			dist = p2.Distance - p1.Distance
			degenerate = dist <= 0
		}

		if degenerate {
			if !t.opts.Verbatim {
				t.infof("Discarding stopped TrkPt #%d (%s) !", p2.Index, p2.Source)
				t.NumDiscPoints++
				i, _ = t.Remove(i)
				continue
			}
			t.carryForward(p1, p2, derived)
			t.Time += p2.DeltaT
			t.EndTime = p2.Timestamp
			prev = i
			i++
			continue
		}

		if !derived && dist <= math.Abs(p2.Rise) {
			hRun = geo.Haversine(p1.Latitude, p1.Longitude, p2.Latitude, p2.Longitude)
		}
		leg := geo.Reconcile(dist, p2.Rise, hRun)
		p2.Dist = leg.Dist
		p2.Run = leg.Run
		if derived {
			p2.Distance = p1.Distance + dist
			p2.DerivedDistance = true
		}

		if p2.DeltaT <= 0 {
			t.warnf("TrkPt #%d (%s) has a non-positive time delta: deltaT=%.3f !",
				p2.Index, p2.Source, p2.DeltaT)
			if !t.opts.Quiet {
				t.DumpPoints(i, 2, 2)
			}
		}
		t.Time += p2.DeltaT

		if !p2.HasSourceSpeed() {
			if p2.DeltaT > 0 {
				p2.Speed = p2.Dist / p2.DeltaT
			} else {
				p2.Speed = p1.Speed
			}
			p2.DerivedSpeed = true
		}
		if p2.Speed > implausibleSpeed {
			t.warnf("TrkPt #%d (%s) has an implausible speed: %.2f km/h !",
				p2.Index, p2.Source, p2.Speed*3.6)
		}

		grade, ok := geo.Grade(p2.Rise, p2.Run)
		if !ok {
			t.warnf("TrkPt #%d (%s) has a null run value !", p2.Index, p2.Source)
			grade = p1.Grade
		}
		p2.Grade = t.clampGrade(p1, p2, grade)
		p2.Bearing = geo.Bearing(p1.Latitude, p1.Longitude, p2.Latitude, p2.Longitude)
		p2.DeltaG = math.Abs(p2.Grade - p1.Grade)

		t.Distance = p2.Distance
		t.EndTime = p2.Timestamp

		prev = i
		i++
	}

	t.Reindex()
	t.RecomputeAggregates()
}

// clampGrade enforces |grade| <= MaxGrade by carrying forward the previous
// point's grade, or 0 when it has none.
func (t *Track) clampGrade(p1, p2 *TrackPoint, grade float64) float64 {
	if grade >= -MaxGrade && grade <= MaxGrade {
		return grade
	}
	t.warnf("TrkPt #%d (%s) has a bogus grade value: %.2f !", p2.Index, p2.Source, grade)
	if p1.Grade != NilGrade {
		return p1.Grade
	}
	return 0
}

func (t *Track) carryForward(p1, p2 *TrackPoint, derived bool) {
	p2.Dist = 0
	p2.Run = 0
	p2.Bearing = p1.Bearing
	p2.Distance = p1.Distance
	p2.DerivedDistance = derived
	p2.Grade = p1.Grade
	p2.Speed = p1.Speed
	p2.DerivedSpeed = true
	p2.DeltaG = 0
}

// rebaseDistance makes source-provided distances relative to the first
// point, so the baseline always starts at 0.
func (t *Track) rebaseDistance() {
	first := &t.points[0]
	if !first.HasSourceDistance() || first.Distance == 0 {
		return
	}
	base := first.Distance
	for i := range t.points {
		p := &t.points[i]
		if !p.HasSourceDistance() {
			continue
		}
		if p.Distance -= base; p.Distance < 0 {
			p.Distance = 0
		}
	}
}
