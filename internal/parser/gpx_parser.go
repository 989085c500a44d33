package parser

import (
	"fmt"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/sstent/trackedit/internal/track"
)

// GPXParser reads the track points of every track segment. GPX carries no
// speed or distance, so those are derived by the metrics pass.
type GPXParser struct{}

func NewGPXParser() *GPXParser {
	return &GPXParser{}
}

func (p *GPXParser) ParseFile(path string, trk *track.Track) error {
	return readFile(p, path, trk)
}

func (p *GPXParser) ParseData(name string, data []byte, trk *track.Track) error {
	gpxFile, err := gpx.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("failed to parse GPX file: %w", err)
	}

	n := 0
	for _, t := range gpxFile.Tracks {
		if trk.ActType == track.ActUndef {
			trk.ActType = gpxActType(t.Type)
		}
		for _, seg := range t.Segments {
			for _, gp := range seg.Points {
				pt := track.NewTrackPoint(n, name, n+1)
				pt.Timestamp = unixSeconds(gp.Timestamp)
				pt.Latitude = gp.Latitude
				pt.Longitude = gp.Longitude
				if gp.Elevation.NotNull() {
					pt.Elevation = gp.Elevation.Value()
				}
				trk.Append(pt)
				n++
			}
		}
	}
	if n == 0 {
		return ErrNoTrackData
	}
	return nil
}

func gpxActType(kind string) track.ActType {
	switch strings.ToLower(kind) {
	case "":
		return track.ActUndef
	case "cycling", "biking", "ride", "road_biking", "mountain_biking":
		return track.ActRide
	case "running", "run", "trail_running":
		return track.ActRun
	case "walking", "walk":
		return track.ActWalk
	case "hiking", "hike":
		return track.ActHike
	}
	return track.ActOther
}
