package models

import "time"

// ActivityMetrics summarizes a processed track for the activity library
type ActivityMetrics struct {
	ActivityType   string
	StartTime      time.Time
	Duration       time.Duration
	MovingTime     time.Duration
	Distance       float64 // in meters
	NumPoints      int
	MaxSpeed       float64 // in m/s
	AvgSpeed       float64 // in m/s
	MinElevation   float64 // in meters
	MaxElevation   float64 // in meters
	ElevationGain  float64 // in meters
	ElevationLoss  float64 // in meters
	AvgGrade       float64 // in %
	MinGrade       float64 // in %
	MaxGrade       float64 // in %
	MaxHeartRate   int
	AvgHeartRate   int
	MaxCadence     int
	AvgCadence     int
	MaxPower       int
	AvgPower       int
	MinTemperature float64 // in °C
	MaxTemperature float64 // in °C
	AvgTemperature float64 // in °C
}
