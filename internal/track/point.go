package track

import "fmt"

// Sentinel values flagging data the source file did not provide. They sit
// well outside any value a device can record.
const (
	NilDistance  = -9999.99
	NilElevation = -9999.99
	NilGrade     = -99.99
	NilSpeed     = -9999.99
)

// Sensor presence bits, OR-ed into Track.SensorMask by the parsers.
const (
	SensorNone      = 0x00
	SensorAmbTemp   = 0x01
	SensorCadence   = 0x02
	SensorHeartRate = 0x04
	SensorPower     = 0x08
	SensorAll       = 0x0f
)

// Source identifies where a TrackPoint was read from.
type Source struct {
	InFile  string
	LineNum int // line number or record number within InFile
}

func (s Source) String() string {
	return fmt.Sprintf("%s:%d", s.InFile, s.LineNum)
}

// TrackPoint is one recorded sample plus the metrics derived from it.
type TrackPoint struct {
	Index  int
	Source Source

	// Raw data from the activity file
	Timestamp float64 // seconds (with fraction) since the Epoch
	Latitude  float64 // decimal degrees
	Longitude float64 // decimal degrees
	Elevation float64 // meters

	AmbTemp   int     // degrees Celsius
	Cadence   int     // RPM
	HeartRate int     // BPM
	Power     int     // watts
	Speed     float64 // m/s
	Distance  float64 // meters from start

	// Derived metrics
	DerivedDistance bool    // Distance was computed, not read from the file
	DerivedSpeed    bool    // Speed was computed, not read from the file
	Dist            float64 // meters traveled from the previous point
	Run             float64 // horizontal meters from the previous point
	Rise            float64 // elevation change from the previous point
	DeltaT          float64 // seconds since the previous point
	DeltaG          float64 // absolute grade change from the previous point
	Grade           float64 // percent
	Bearing         float64 // decimal degrees
}

// NewTrackPoint returns a skeletal point with its derived fields zeroed and
// the optional raw fields set to their nil sentinels.
func NewTrackPoint(index int, inFile string, lineNum int) TrackPoint {
	return TrackPoint{
		Index:     index,
		Source:    Source{InFile: inFile, LineNum: lineNum},
		Elevation: NilElevation,
		Speed:     NilSpeed,
		Distance:  NilDistance,
		Grade:     NilGrade,
	}
}

func (p *TrackPoint) HasElevation() bool { return p.Elevation != NilElevation }
func (p *TrackPoint) HasSpeed() bool     { return p.Speed != NilSpeed }

// HasSourceDistance reports whether Distance came from the activity file.
func (p *TrackPoint) HasSourceDistance() bool {
	return p.Distance != NilDistance && !p.DerivedDistance
}

// HasSourceSpeed reports whether Speed came from the activity file or was
// set by an edit.
func (p *TrackPoint) HasSourceSpeed() bool {
	return p.HasSpeed() && p.Speed != 0 && !p.DerivedSpeed
}

func (p *TrackPoint) String() string {
	return fmt.Sprintf("TrkPt #%d at %s {\n"+
		"  latitude=%.10f longitude=%.10f elevation=%.10f time=%.3f distance=%.10f speed=%.10f dist=%.10f run=%.10f rise=%.10f grade=%.2f\n"+
		"}",
		p.Index, p.Source, p.Latitude, p.Longitude, p.Elevation, p.Timestamp,
		p.Distance, p.Speed, p.Dist, p.Run, p.Rise, p.Grade)
}
