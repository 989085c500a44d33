package parser

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tormoder/fit"

	"github.com/sstent/trackedit/internal/track"
)

type FITParser struct{}

func NewFITParser() *FITParser {
	return &FITParser{}
}

func (p *FITParser) ParseFile(path string, trk *track.Track) error {
	return readFile(p, path, trk)
}

func (p *FITParser) ParseData(name string, data []byte, trk *track.Track) error {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return fmt.Errorf("failed to get activity from FIT: %w", err)
	}

	if len(activity.Sessions) > 0 {
		s := activity.Sessions[0]
		trk.ActType = fitActType(s.Sport, s.SubSport)
	}

	n := 0
	for i, rec := range activity.Records {
		if rec == nil || rec.PositionLat.Invalid() || rec.PositionLong.Invalid() {
			// No fix yet, or a sensor-only record.
			continue
		}
		pt := track.NewTrackPoint(n, name, i+1)
		trk.SensorMask |= fitRecordToPoint(rec, &pt)
		trk.Append(pt)
		n++
	}
	if n == 0 {
		return ErrNoTrackData
	}
	return nil
}

// fitRecordToPoint copies the valid fields of a record message and
// returns the sensors that reported a value.
func fitRecordToPoint(rec *fit.RecordMsg, pt *track.TrackPoint) int {
	mask := track.SensorNone

	pt.Timestamp = unixSeconds(rec.Timestamp)
	pt.Latitude = rec.PositionLat.Degrees()
	pt.Longitude = rec.PositionLong.Degrees()

	if ele := rec.GetEnhancedAltitudeScaled(); isFinite(ele) {
		pt.Elevation = ele
	} else if ele := rec.GetAltitudeScaled(); isFinite(ele) {
		pt.Elevation = ele
	}
	if speed := rec.GetEnhancedSpeedScaled(); isFinite(speed) && speed >= 0 {
		pt.Speed = speed
	} else if speed := rec.GetSpeedScaled(); isFinite(speed) && speed >= 0 {
		pt.Speed = speed
	}
	if dist := rec.GetDistanceScaled(); isFinite(dist) && dist >= 0 {
		pt.Distance = dist
	}

	if rec.HeartRate != math.MaxUint8 {
		pt.HeartRate = int(rec.HeartRate)
		mask |= track.SensorHeartRate
	}
	if rec.Cadence != math.MaxUint8 {
		pt.Cadence = int(rec.Cadence)
		mask |= track.SensorCadence
	}
	if rec.Power != math.MaxUint16 {
		pt.Power = int(rec.Power)
		mask |= track.SensorPower
	}
	if rec.Temperature != math.MaxInt8 {
		pt.AmbTemp = int(rec.Temperature)
		mask |= track.SensorAmbTemp
	}
	return mask
}

func fitActType(sport fit.Sport, sub fit.SubSport) track.ActType {
	switch sport {
	case fit.SportCycling:
		if sub == fit.SubSportVirtualActivity {
			return track.ActVRide
		}
		return track.ActRide
	case fit.SportRunning:
		return track.ActRun
	case fit.SportWalking:
		return track.ActWalk
	case fit.SportHiking:
		return track.ActHike
	case fit.SportInvalid:
		return track.ActUndef
	}
	return track.ActOther
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
