package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	t.Run("reflexive", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(46.5, 7.25, 46.5, 7.25))
		assert.Equal(t, 0.0, Haversine(-33.9, 151.2, -33.9, 151.2))
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := Haversine(46.0, 7.0, 46.001, 7.001)
		d2 := Haversine(46.001, 7.001, 46.0, 7.0)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := Haversine(0, 0, 1, 0)
		assert.InDelta(t, EarthRadius*math.Pi/180, d, 1e-6)
	})

	t.Run("known city pair", func(t *testing.T) {
		// Jakarta to Bandung is roughly 115-120 km.
		d := Haversine(-6.2, 106.816, -6.9175, 107.6191)
		assert.Greater(t, d, 100_000.0)
		assert.Less(t, d, 140_000.0)
	})

	t.Run("NaN coordinates violate the invariant", func(t *testing.T) {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			_, ok := r.(*InvariantError)
			assert.True(t, ok, "expected *InvariantError, got %T", r)
		}()
		Haversine(math.NaN(), 0, 0, 0)
	})
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"north", 0, 0, 1, 0, 0},
		{"east", 0, 0, 0, 1, 90},
		{"south", 1, 0, 0, 0, 180},
		{"west", 0, 1, 0, 0, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

func TestReconcile(t *testing.T) {
	t.Run("pythagorean leg", func(t *testing.T) {
		leg := Reconcile(5, 3, 99)
		assert.InDelta(t, 4.0, leg.Run, 1e-12)
		assert.Equal(t, 3.0, leg.Rise)
	})

	t.Run("noisy elevation falls back to great-circle run", func(t *testing.T) {
		leg := Reconcile(2, -3, 1.5)
		assert.Equal(t, 1.5, leg.Run)
	})
}

func TestGrade(t *testing.T) {
	g, ok := Grade(5, 100)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, g, 1e-12)

	_, ok = Grade(5, 0)
	assert.False(t, ok)
}
