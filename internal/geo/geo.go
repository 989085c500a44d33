// Package geo holds the great-circle math used to derive per-point metrics.
package geo

import (
	"fmt"
	"math"
)

const (
	// EarthRadius is the mean Earth radius (in meters) used for every
	// distance computation. It is not the WGS-84 ellipsoid.
	EarthRadius = 6372797.560856

	degToRad = math.Pi / 180.0
)

// InvariantError reports an internal-consistency fault in the geodesy math.
// It is raised with panic, never returned, since it can only be caused by a
// programming error or corrupt coordinates.
type InvariantError struct {
	Op    string
	Value float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("geo: %s invariant violated (value=%v)", e.Op, e.Value)
}

// Haversine returns the great-circle distance in meters between two
// positions given in decimal degrees.
//
//	https://en.wikipedia.org/wiki/Haversine_formula
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	deltaPhi := phi2 - phi1
	deltaLambda := (lon2 - lon1) * degToRad

	a := math.Sin(deltaPhi / 2)
	b := math.Sin(deltaLambda / 2)
	h := a*a + math.Cos(phi1)*math.Cos(phi2)*b*b

	if !(h >= 0) {
		panic(&InvariantError{Op: "haversine radicand", Value: h})
	}

	// Rounding can push h a hair above 1 for antipodal points.
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// Bearing returns the initial bearing (forward azimuth) from the first
// position toward the second, in decimal degrees within [0, 360).
//
//	https://www.movable-type.co.uk/scripts/latlong.html
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	deltaLambda := (lon2 - lon1) * degToRad

	x := math.Sin(deltaLambda) * math.Cos(phi2)
	y := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)
	theta := math.Atan2(x, y)

	deg := math.Mod(theta/degToRad+360.0, 360.0)
	if deg >= 360.0 {
		deg = 0
	}
	return deg
}

// Leg is the pseudo right triangle defined by two consecutive samples:
// Run is the horizontal leg, Rise the vertical leg and Dist the hypotenuse.
type Leg struct {
	Rise float64
	Run  float64
	Dist float64
}

// Reconcile resolves the run of a leg from its hypotenuse and rise. When the
// hypotenuse is longer than the rise, the run is the Pythagorean leg;
// otherwise the elevation noise exceeds the travelled distance and the
// great-circle run is used instead.
func Reconcile(dist, rise, haversineRun float64) Leg {
	absRise := math.Abs(rise)
	leg := Leg{Rise: rise, Dist: dist}
	if dist > absRise {
		leg.Run = math.Sqrt(dist*dist - absRise*absRise)
	} else {
		leg.Run = haversineRun
	}
	return leg
}

// Hypotenuse returns the travelled distance for a horizontal run and rise.
func Hypotenuse(run, rise float64) float64 {
	return math.Sqrt(run*run + rise*rise)
}

// Grade returns rise over run as a percentage. ok is false when run is zero.
func Grade(rise, run float64) (grade float64, ok bool) {
	if run == 0 {
		return 0, false
	}
	return (rise * 100.0) / run, true
}
