package track

import "fmt"

// Metric selects the per-point value a filter or range edit operates on.
type Metric int

const (
	MetricInvalid Metric = iota
	MetricElevation
	MetricGrade
	MetricSpeed
	// MetricGradeChange is a report-only pseudo metric backed by DeltaG.
	MetricGradeChange
)

func (m Metric) String() string {
	switch m {
	case MetricElevation:
		return "elevation"
	case MetricGrade:
		return "grade"
	case MetricSpeed:
		return "speed"
	case MetricGradeChange:
		return "gradeChange"
	default:
		return "invalid"
	}
}

// ParseMetric maps a metric name to its Metric.
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "elevation":
		return MetricElevation, nil
	case "grade":
		return MetricGrade, nil
	case "speed":
		return MetricSpeed, nil
	case "gradeChange":
		return MetricGradeChange, nil
	}
	return MetricInvalid, fmt.Errorf("unknown metric %q", name)
}

// Mutable reports whether the metric can be filtered, clamped or scaled.
func (m Metric) Mutable() bool {
	return m == MetricElevation || m == MetricGrade || m == MetricSpeed
}

// Value returns the metric's value for p.
func (m Metric) Value(p *TrackPoint) float64 {
	switch m {
	case MetricElevation:
		return p.Elevation
	case MetricGrade:
		return p.Grade
	case MetricSpeed:
		return p.Speed
	case MetricGradeChange:
		return p.DeltaG
	}
	return 0
}

// SetValue stores v into the metric's field of p. Report-only metrics are
// left untouched.
func (m Metric) SetValue(p *TrackPoint, v float64) {
	switch m {
	case MetricElevation:
		p.Elevation = v
	case MetricGrade:
		p.Grade = v
	case MetricSpeed:
		p.Speed = v
		p.DerivedSpeed = false
	}
}
