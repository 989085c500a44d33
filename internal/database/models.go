package database

import (
	"errors"
	"time"

	"github.com/sstent/trackedit/internal/models"
)

var ErrNotFound = errors.New("activity not found")

type Activity struct {
	ID             int64     `json:"id"`
	StartTime      time.Time `json:"start_time"`
	ActivityType   string    `json:"activity_type"`
	Duration       int       `json:"duration"`    // seconds
	MovingTime     int       `json:"moving_time"` // seconds
	Distance       float64   `json:"distance"`    // meters
	NumPoints      int       `json:"num_points"`
	MaxSpeed       float64   `json:"max_speed"` // m/s
	AvgSpeed       float64   `json:"avg_speed"` // m/s
	MinElevation   float64   `json:"min_elevation"`
	MaxElevation   float64   `json:"max_elevation"`
	ElevationGain  float64   `json:"elevation_gain"`
	ElevationLoss  float64   `json:"elevation_loss"`
	AvgGrade       float64   `json:"avg_grade"`
	MinGrade       float64   `json:"min_grade"`
	MaxGrade       float64   `json:"max_grade"`
	MaxHeartRate   int       `json:"max_heart_rate"`
	AvgHeartRate   int       `json:"avg_heart_rate"`
	MaxCadence     int       `json:"max_cadence"`
	AvgCadence     int       `json:"avg_cadence"`
	MaxPower       int       `json:"max_power"`
	AvgPower       int       `json:"avg_power"`
	AvgTemperature float64   `json:"avg_temperature"`
	Filename       string    `json:"filename"`
	FileType       string    `json:"file_type"`
	FileSize       int64     `json:"file_size"`
	Edited         bool      `json:"edited"`
	CreatedAt      time.Time `json:"created_at"`
	LastSync       time.Time `json:"last_sync"`
}

// SetMetrics copies the summary of a processed track into the activity.
func (a *Activity) SetMetrics(m *models.ActivityMetrics) {
	a.StartTime = m.StartTime
	a.ActivityType = m.ActivityType
	a.Duration = int(m.Duration.Seconds())
	a.MovingTime = int(m.MovingTime.Seconds())
	a.Distance = m.Distance
	a.NumPoints = m.NumPoints
	a.MaxSpeed = m.MaxSpeed
	a.AvgSpeed = m.AvgSpeed
	a.MinElevation = m.MinElevation
	a.MaxElevation = m.MaxElevation
	a.ElevationGain = m.ElevationGain
	a.ElevationLoss = m.ElevationLoss
	a.AvgGrade = m.AvgGrade
	a.MinGrade = m.MinGrade
	a.MaxGrade = m.MaxGrade
	a.MaxHeartRate = m.MaxHeartRate
	a.AvgHeartRate = m.AvgHeartRate
	a.MaxCadence = m.MaxCadence
	a.AvgCadence = m.AvgCadence
	a.MaxPower = m.MaxPower
	a.AvgPower = m.AvgPower
	a.AvgTemperature = m.AvgTemperature
}

// TrackPoint is the stored form of a processed track point.
type TrackPoint struct {
	Seq       int     `json:"seq"`
	Timestamp float64 `json:"timestamp"` // seconds since the epoch
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
	Distance  float64 `json:"distance"`
	Speed     float64 `json:"speed"`
	Grade     float64 `json:"grade"`
	HeartRate int     `json:"heart_rate"`
	Cadence   int     `json:"cadence"`
	Power     int     `json:"power"`
}

type Stats struct {
	Total         int     `json:"total"`
	Edited        int     `json:"edited"`
	TotalDistance float64 `json:"total_distance"`
	TotalDuration int     `json:"total_duration"`
	TotalGain     float64 `json:"total_elevation_gain"`
}

// Database interface
type Database interface {
	// Activities
	GetActivities(limit, offset int) ([]Activity, error)
	GetActivity(id int64) (*Activity, error)
	GetActivityByFilename(filename string) (*Activity, error)
	ActivityExists(filename string) (bool, error)
	CreateActivity(activity *Activity) error
	UpdateActivity(activity *Activity) error
	DeleteActivity(id int64) error

	// Track points
	SaveTrackPoints(activityID int64, points []TrackPoint) error
	GetTrackPoints(activityID int64) ([]TrackPoint, error)

	// Stats
	GetStats() (*Stats, error)

	// Search and filter
	FilterActivities(filters ActivityFilters) ([]Activity, error)

	// Close connection
	Close() error
}

type ActivityFilters struct {
	ActivityType string
	DateFrom     *time.Time
	DateTo       *time.Time
	MinDistance  float64
	MaxDistance  float64
	MinDuration  int
	MaxDuration  int
	Edited       *bool
	Limit        int
	Offset       int
	SortBy       string
	SortOrder    string
}
