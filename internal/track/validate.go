package track

import (
	"errors"
	"fmt"
)

// ErrMissingData is the fatal validation failure: a point lacks data the
// metrics cannot be derived without.
var ErrMissingData = errors.New("missing mandatory track point data")

// MissingDataError names the point and field that failed validation.
type MissingDataError struct {
	Index  int
	Source Source
	Field  string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("TrkPt #%d (%s) is missing its %s data", e.Index, e.Source, e.Field)
}

func (e *MissingDataError) Unwrap() error { return ErrMissingData }

func (t *Track) checkMandatory(p *TrackPoint) error {
	if !p.HasElevation() {
		return &MissingDataError{Index: p.Index, Source: p.Source, Field: "elevation"}
	}
	if t.opts.Strict {
		if p.Distance == NilDistance {
			return &MissingDataError{Index: p.Index, Source: p.Source, Field: "distance"}
		}
		if !p.HasSpeed() {
			return &MissingDataError{Index: p.Index, Source: p.Source, Field: "speed"}
		}
	}
	return nil
}

// Validate makes one forward pass over the points comparing each to its
// predecessor. Duplicates and non-monotonic samples are counted, logged and
// discarded, unless the track is in verbatim mode. A point missing mandatory
// data aborts the pass with a *MissingDataError.
func (t *Track) Validate() error {
	if len(t.points) == 0 {
		return nil
	}
	if err := t.checkMandatory(&t.points[0]); err != nil {
		return err
	}

	prev := 0
	i := 1
	for i < len(t.points) {
		p1 := &t.points[prev]
		p2 := &t.points[i]
		discard := false

		if err := t.checkMandatory(p2); err != nil {
			return err
		}

		// Multi-lap files often repeat the last point of lap N as the
		// first point of lap N+1.
		if p2.Latitude == p1.Latitude &&
			p2.Longitude == p1.Longitude &&
			p2.Elevation == p1.Elevation {
			t.infof("Discarding duplicate TrkPt #%d (%s) !", p2.Index, p2.Source)
			t.NumDupPoints++
			discard = true
		}

		if p2.Timestamp <= p1.Timestamp {
			t.infof("TrkPt #%d (%s) has a non-increasing timestamp value: %.3f !",
				p2.Index, p2.Source, p2.Timestamp)
			t.NumDiscPoints++
			discard = true
		}

		// Stopped samples legitimately repeat the distance.
		if p2.HasSourceDistance() && p1.HasSourceDistance() &&
			p2.Speed != 0 && p2.Distance <= p1.Distance {
			t.infof("TrkPt #%d (%s) has a non-increasing distance value: distance=%.3f speed=%.2f !",
				p2.Index, p2.Source, p2.Distance, p2.Speed)
			t.NumDiscPoints++
			discard = true
		}

		if discard && !t.opts.Verbatim {
			i, _ = t.Remove(i)
			continue
		}
		prev = i
		i++
	}

	t.Reindex()
	return nil
}
