// Package track owns the in-memory sequence of track points and every pass
// that validates, derives, smooths or summarizes it.
package track

import (
	"errors"
	"log"
)

// ErrNothingToUndo is returned by Restore when no snapshot has been saved.
var ErrNothingToUndo = errors.New("nothing to undo")

// ActType is the activity type (sport) reported by the source file.
type ActType int

const (
	ActUndef ActType = 0
	ActRide  ActType = 1
	ActHike  ActType = 4
	ActRun   ActType = 9
	ActWalk  ActType = 10
	ActVRide ActType = 17
	ActOther ActType = 99
)

func (a ActType) String() string {
	switch a {
	case ActRide:
		return "cycling"
	case ActHike:
		return "hiking"
	case ActRun:
		return "running"
	case ActWalk:
		return "walking"
	case ActVRide:
		return "virtual_ride"
	case ActOther:
		return "other"
	default:
		return "undefined"
	}
}

// Options control how the validation and metrics passes treat bad data.
type Options struct {
	Quiet    bool // suppress INFO/WARNING messages
	Verbatim bool // never discard points, carry values forward instead
	Strict   bool // distance and speed are mandatory, like elevation
	Logger   *log.Logger
}

// Counters tallies the points the passes and edits dropped or adjusted.
type Counters struct {
	NumDupPoints  int // duplicates of the previous point
	NumDiscPoints int // non-monotonic or degenerate samples
	NumTrimPoints int // removed by trim
	NumElevAdj    int // elevation changed by an edit
}

type snapshot struct {
	points   []TrackPoint
	counters Counters
}

// Track is a GPS track: the working sequence of points, one saved snapshot
// for undo, and the totals and extrema derived from the sequence.
type Track struct {
	opts Options
	log  *log.Logger

	points []TrackPoint
	saved  *snapshot

	ActType    ActType
	SensorMask int

	Counters

	// Totals
	StartTime float64
	EndTime   float64
	Time      float64 // sum of the DeltaT values
	Distance  float64

	Agg Aggregates
}

// New returns an empty track.
func New(opts Options) *Track {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Track{opts: opts, log: logger}
}

func (t *Track) Options() Options { return t.opts }

// SetVerbatim toggles the verbatim policy for subsequent passes.
func (t *Track) SetVerbatim(v bool) { t.opts.Verbatim = v }

// Append adds p at the end of the working sequence and assigns its index.
func (t *Track) Append(p TrackPoint) {
	p.Index = len(t.points)
	t.points = append(t.points, p)
}

func (t *Track) Len() int { return len(t.points) }

// At returns a pointer to the i-th point. The pointer is only valid until
// the next structural change.
func (t *Track) At(i int) *TrackPoint { return &t.points[i] }

// Points returns a copy of the working sequence in index order.
func (t *Track) Points() []TrackPoint {
	out := make([]TrackPoint, len(t.points))
	copy(out, t.points)
	return out
}

func (t *Track) First() *TrackPoint {
	if len(t.points) == 0 {
		return nil
	}
	return &t.points[0]
}

func (t *Track) Last() *TrackPoint {
	if len(t.points) == 0 {
		return nil
	}
	return &t.points[len(t.points)-1]
}

// Remove deletes the i-th point and returns the position of the point that
// followed it; ok is false when no point follows. Indices are left stale
// until Reindex.
func (t *Track) Remove(i int) (next int, ok bool) {
	t.points = append(t.points[:i], t.points[i+1:]...)
	return i, i < len(t.points)
}

// Reindex assigns 0..N-1 to the points in sequence order.
func (t *Track) Reindex() {
	for i := range t.points {
		t.points[i].Index = i
	}
}

// HasSnapshot reports whether an undo point exists.
func (t *Track) HasSnapshot() bool { return t.saved != nil }

// Snapshot deep-copies the working sequence into the undo slot, replacing
// any previous snapshot.
func (t *Track) Snapshot() {
	pts := make([]TrackPoint, len(t.points))
	copy(pts, t.points)
	t.saved = &snapshot{points: pts, counters: t.Counters}
}

// Restore replaces the working sequence with the saved snapshot and clears
// the undo slot. Totals and extrema are rebuilt from the restored points.
func (t *Track) Restore() error {
	if t.saved == nil {
		return ErrNothingToUndo
	}
	t.points = t.saved.points
	t.Counters = t.saved.counters
	t.saved = nil

	t.refreshTotals()
	t.RecomputeAggregates()
	return nil
}

// refreshTotals re-derives the scalar totals from the boundary points.
func (t *Track) refreshTotals() {
	t.StartTime, t.EndTime, t.Time, t.Distance = 0, 0, 0, 0
	if len(t.points) == 0 {
		return
	}
	t.StartTime = t.points[0].Timestamp
	t.EndTime = t.points[len(t.points)-1].Timestamp
	for i := 1; i < len(t.points); i++ {
		t.Time += t.points[i].DeltaT
	}
	if last := t.Last(); last.Distance != NilDistance {
		t.Distance = last.Distance
	}
}

// DumpPoints writes the i-th point and its neighbors to the log.
func (t *Track) DumpPoints(i, before, after int) {
	from := max(0, i-before)
	to := min(len(t.points)-1, i+after)
	for j := from; j <= to; j++ {
		t.log.Println(t.points[j].String())
	}
}

func (t *Track) infof(format string, args ...any) {
	if !t.opts.Quiet {
		t.log.Printf("INFO: "+format, args...)
	}
}

func (t *Track) warnf(format string, args ...any) {
	if !t.opts.Quiet {
		t.log.Printf("WARNING: "+format, args...)
	}
}
