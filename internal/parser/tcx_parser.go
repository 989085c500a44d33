package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/sstent/trackedit/internal/track"
)

type TCXParser struct{}

func NewTCXParser() *TCXParser {
	return &TCXParser{}
}

type tcxTrackpoint struct {
	Time     string `xml:"Time"`
	Position *struct {
		Lat float64 `xml:"LatitudeDegrees"`
		Lon float64 `xml:"LongitudeDegrees"`
	} `xml:"Position"`
	Altitude  *float64 `xml:"AltitudeMeters"`
	Distance  *float64 `xml:"DistanceMeters"`
	HeartRate *struct {
		Value int `xml:"Value"`
	} `xml:"HeartRateBpm"`
	Cadence *int `xml:"Cadence"`
	TPX     *struct {
		Speed *float64 `xml:"Speed"`
		Watts *int     `xml:"Watts"`
	} `xml:"Extensions>TPX"`
}

func (p *TCXParser) ParseFile(path string, trk *track.Track) error {
	return readFile(p, path, trk)
}

// ParseData streams the Trackpoint elements so each point keeps the line
// it was read from.
func (p *TCXParser) ParseData(name string, data []byte, trk *track.Track) error {
	dec := xml.NewDecoder(bytes.NewReader(data))

	n := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse TCX file: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "Activity":
			if trk.ActType == track.ActUndef {
				trk.ActType = tcxActType(se.Attr)
			}
		case "Trackpoint":
			line, _ := dec.InputPos()
			var tp tcxTrackpoint
			if err := dec.DecodeElement(&tp, &se); err != nil {
				return fmt.Errorf("failed to parse TCX trackpoint at line %d: %w", line, err)
			}
			if tp.Position == nil {
				continue
			}
			pt, mask, err := tcxToPoint(&tp, n, name, line)
			if err != nil {
				return err
			}
			trk.SensorMask |= mask
			trk.Append(pt)
			n++
		}
	}
	if n == 0 {
		return ErrNoTrackData
	}
	return nil
}

func tcxToPoint(tp *tcxTrackpoint, index int, name string, line int) (track.TrackPoint, int, error) {
	pt := track.NewTrackPoint(index, name, line)
	mask := track.SensorNone

	ts, err := time.Parse(time.RFC3339, tp.Time)
	if err != nil {
		return pt, mask, fmt.Errorf("%s:%d: invalid trackpoint time %q: %w", name, line, tp.Time, err)
	}
	pt.Timestamp = unixSeconds(ts)
	pt.Latitude = tp.Position.Lat
	pt.Longitude = tp.Position.Lon

	if tp.Altitude != nil {
		pt.Elevation = *tp.Altitude
	}
	if tp.Distance != nil {
		pt.Distance = *tp.Distance
	}
	if tp.HeartRate != nil {
		pt.HeartRate = tp.HeartRate.Value
		mask |= track.SensorHeartRate
	}
	if tp.Cadence != nil {
		pt.Cadence = *tp.Cadence
		mask |= track.SensorCadence
	}
	if tp.TPX != nil {
		if tp.TPX.Speed != nil {
			pt.Speed = *tp.TPX.Speed
		}
		if tp.TPX.Watts != nil {
			pt.Power = *tp.TPX.Watts
			mask |= track.SensorPower
		}
	}
	return pt, mask, nil
}

func tcxActType(attrs []xml.Attr) track.ActType {
	for _, a := range attrs {
		if a.Name.Local != "Sport" {
			continue
		}
		switch a.Value {
		case "Biking":
			return track.ActRide
		case "Running":
			return track.ActRun
		}
		return track.ActOther
	}
	return track.ActUndef
}
