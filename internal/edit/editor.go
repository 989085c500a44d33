// Package edit applies range-scoped, undoable operations to a track.
package edit

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/sstent/trackedit/internal/smooth"
	"github.com/sstent/trackedit/internal/track"
)

// Editor runs one operation at a time against a validated track. Every
// mutating operation checks its arguments, then snapshots the track, then
// mutates it, so a rejected operation never replaces the undo point.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	trk *track.Track
	out io.Writer
}

func New(trk *track.Track, out io.Writer) *Editor {
	if out == nil {
		out = io.Discard
	}
	return &Editor{trk: trk, out: out}
}

func (e *Editor) Track() *track.Track { return e.trk }

func parseMetric(tok string, mutable bool) (track.Metric, error) {
	m, err := track.ParseMetric(tok)
	if err != nil {
		return track.MetricInvalid, invalidArg(tok, "metric must be one of elevation, grade, speed or gradeChange")
	}
	if mutable && !m.Mutable() {
		return track.MetricInvalid, invalidArg(tok, "%s can only be reported, not modified", m)
	}
	return m, nil
}

func parseFloat(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalidArg(tok, "not a finite number")
	}
	return v, nil
}

func parseWindow(tok string) (int, error) {
	w, err := strconv.Atoi(tok)
	if err != nil {
		return 0, invalidArg(tok, "window size must be an integer")
	}
	return w, nil
}

// Smooth filters the metric over the whole series and commits the result
// to the points within r.
func (e *Editor) Smooth(f track.Filter, m track.Metric, window int, r Range) error {
	if !m.Mutable() {
		return invalidArg(m.String(), "%s can only be reported, not modified", m)
	}
	values, err := e.trk.FilterValues(f, m, window)
	if err != nil {
		if errors.Is(err, smooth.ErrWindow) {
			return invalidArg(strconv.Itoa(window), "%v", err)
		}
		return err
	}

	e.trk.Snapshot()
	e.trk.CommitSeries(m, values, r.From, r.To)
	return nil
}

// Clamp limits the metric within r to [bound, +inf) or, with isMax,
// to (-inf, bound]. It returns the number of points changed.
func (e *Editor) Clamp(m track.Metric, bound float64, isMax bool, r Range) (int, error) {
	if !m.Mutable() {
		return 0, invalidArg(m.String(), "%s can only be reported, not modified", m)
	}
	e.trk.Snapshot()
	return e.trk.Clamp(m, bound, isMax, r.From, r.To), nil
}

// GradeChanges reports the points within r whose grade change is above
// (or, when above is false, below) the bound. The track is not modified
// and no undo point is taken.
func (e *Editor) GradeChanges(bound float64, above bool, r Range) []track.TrackPoint {
	return e.trk.GradeChanges(bound, above, r.From, r.To)
}

// Scale multiplies the metric within r by factor.
func (e *Editor) Scale(m track.Metric, factor float64, r Range) error {
	if !m.Mutable() {
		return invalidArg(m.String(), "%s can only be reported, not modified", m)
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return invalidArg(fmt.Sprint(factor), "not a finite number")
	}
	e.trk.Snapshot()
	e.trk.Scale(m, factor, r.From, r.To)
	return nil
}

// Trim removes the points within r and closes the gap they leave.
func (e *Editor) Trim(r Range) error {
	if r.From == 0 && r.To == e.trk.Len()-1 {
		return invalidArg(strconv.Itoa(r.To), "cannot trim every point of the track")
	}
	e.trk.Snapshot()
	e.trk.Trim(r.From, r.To)
	return nil
}

// Undo restores the track to its state before the last mutating
// operation. It returns track.ErrNothingToUndo when there is none.
func (e *Editor) Undo() error {
	return e.trk.Restore()
}
