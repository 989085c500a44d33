package track

import (
	"math"
	"time"

	"github.com/sstent/trackedit/internal/models"
)

func secondsToTime(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Summary returns the activity-level metrics of the track.
func (t *Track) Summary() *models.ActivityMetrics {
	a := t.Agg
	m := &models.ActivityMetrics{
		ActivityType:  t.ActType.String(),
		StartTime:     secondsToTime(t.StartTime),
		Duration:      secondsToDuration(t.Time),
		MovingTime:    secondsToDuration(t.MovingTime()),
		Distance:      t.Distance,
		NumPoints:     len(t.points),
		MaxSpeed:      a.MaxSpeed.Value,
		AvgSpeed:      t.AvgSpeed(),
		MinElevation:  a.MinElev.Value,
		MaxElevation:  a.MaxElev.Value,
		ElevationGain: a.ElevGain,
		ElevationLoss: a.ElevLoss,
		AvgGrade:      t.AvgGrade(),
		MinGrade:      a.MinGrade.Value,
		MaxGrade:      a.MaxGrade.Value,
		MaxHeartRate:  int(a.MaxHeartRate.Value),
		AvgHeartRate:  int(math.Round(a.AvgHeartRate)),
		MaxCadence:    int(a.MaxCadence.Value),
		AvgCadence:    int(math.Round(a.AvgCadence)),
		MaxPower:      int(a.MaxPower.Value),
		AvgPower:      int(math.Round(a.AvgPower)),
	}
	if a.MaxTemp.Valid() {
		m.MinTemperature = a.MinTemp.Value
		m.MaxTemperature = a.MaxTemp.Value
		m.AvgTemperature = a.AvgTemp
	}
	return m
}
