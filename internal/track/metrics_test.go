package track

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMetricsConstantSpeed(t *testing.T) {
	for _, tc := range []struct {
		name       string
		sourceDist bool
	}{
		{"derived distance", false},
		{"source distance", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			trk := newLineTrack(t, quietOptions(), flat(5, 250), tc.sourceDist)
			require.NoError(t, trk.Validate())
			trk.ComputeMetrics()

			require.Equal(t, 5, trk.Len())
			requireContiguous(t, trk)
			assert.InDelta(t, 20, trk.At(4).Distance, 1e-6)
			assert.InDelta(t, 20, trk.Distance, 1e-6)
			assert.Equal(t, 4.0, trk.Time)
			for i := 0; i < trk.Len(); i++ {
				assert.Zero(t, trk.At(i).Grade, "grade at %d", i)
			}
			for i := 1; i < trk.Len(); i++ {
				p := trk.At(i)
				assert.InDelta(t, 5, p.Speed, 1e-6)
				assert.InDelta(t, 5, p.Dist, 1e-6)
				assert.InDelta(t, 90, p.Bearing, 1e-9)
				assert.Equal(t, 1.0, p.DeltaT)
			}
		})
	}
}

func TestComputeMetricsBaseline(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), []float64{100, 101, 102}, true)
	for i := 0; i < trk.Len(); i++ {
		trk.At(i).Distance += 1000
	}
	trk.ComputeMetrics()

	first := trk.First()
	assert.Zero(t, first.Distance)
	assert.Zero(t, first.Grade)
	assert.Zero(t, first.DeltaT)
	assert.InDelta(t, 10, trk.Last().Distance, 1e-9)
}

func TestComputeMetricsGrade(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), []float64{100, 101, 101}, true)
	trk.ComputeMetrics()

	p := trk.At(1)
	assert.Equal(t, 1.0, p.Rise)
	assert.InDelta(t, math.Sqrt(24), p.Run, 1e-9)
	assert.InDelta(t, 100/math.Sqrt(24), p.Grade, 1e-9)
	assert.InDelta(t, p.Grade, trk.At(2).DeltaG, 1e-9)
}

func TestComputeMetricsClampsBogusGrade(t *testing.T) {
	// A 10 m climb over a 5 m step: rise exceeds dist, so the
	// horizontal leg comes from the positions and the grade is 200%.
	trk := newLineTrack(t, quietOptions(), []float64{100, 100, 110, 110}, true)
	trk.ComputeMetrics()

	assert.InDelta(t, 5, trk.At(2).Run, 1e-6)
	assert.Equal(t, trk.At(1).Grade, trk.At(2).Grade)
	for i := 0; i < trk.Len(); i++ {
		assert.LessOrEqual(t, math.Abs(trk.At(i).Grade), MaxGrade)
	}
}

func TestComputeMetricsDegenerateSample(t *testing.T) {
	stalled := func(t *testing.T, opts Options) *Track {
		trk := newLineTrack(t, opts, []float64{100, 101, 101, 102}, false)
		trk.At(2).Longitude = trk.At(1).Longitude
		return trk
	}

	t.Run("discarded", func(t *testing.T) {
		trk := stalled(t, quietOptions())
		trk.ComputeMetrics()

		require.Equal(t, 3, trk.Len())
		requireContiguous(t, trk)
		assert.Equal(t, 1, trk.NumDiscPoints)
		assert.Equal(t, startTS+3, trk.Last().Timestamp)
	})

	t.Run("carried forward in verbatim mode", func(t *testing.T) {
		opts := quietOptions()
		opts.Verbatim = true
		trk := stalled(t, opts)
		trk.ComputeMetrics()

		require.Equal(t, 4, trk.Len())
		p1, p2 := trk.At(1), trk.At(2)
		assert.Equal(t, p1.Distance, p2.Distance)
		assert.Equal(t, p1.Speed, p2.Speed)
		assert.Equal(t, p1.Grade, p2.Grade)
		assert.Equal(t, p1.Bearing, p2.Bearing)
		assert.Zero(t, p2.Dist)
	})
}

func TestComputeMetricsEmpty(t *testing.T) {
	trk := New(quietOptions())
	trk.ComputeMetrics()
	assert.Zero(t, trk.Distance)
	assert.False(t, trk.Agg.MaxElev.Valid())
}

func TestRecomputeAggregates(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), []float64{100, 101, 100.5, 102, 101}, true)
	trk.SensorMask = SensorHeartRate
	for i, hr := range []int{120, 130, 0, 140, 150} {
		trk.At(i).HeartRate = hr
	}
	trk.At(2).Speed = 0
	trk.ComputeMetrics()

	agg := trk.Agg
	assert.Equal(t, Extremum{Value: 102, Index: 3}, agg.MaxElev)
	assert.Equal(t, Extremum{Value: 100, Index: 0}, agg.MinElev)
	assert.InDelta(t, 2.5, agg.ElevGain, 1e-9)
	assert.InDelta(t, 1.5, agg.ElevLoss, 1e-9)

	assert.Equal(t, Extremum{Value: 150, Index: 4}, agg.MaxHeartRate)
	assert.Equal(t, Extremum{Value: 120, Index: 0}, agg.MinHeartRate)
	assert.InDelta(t, 135, agg.AvgHeartRate, 1e-9)
	assert.False(t, agg.MaxCadence.Valid(), "cadence is not in the sensor mask")

	// Zero speed is re-derived from the distance.
	assert.InDelta(t, 5, trk.At(2).Speed, 1e-9)
	assert.Zero(t, agg.StoppedTime)
	assert.Equal(t, trk.Time, trk.MovingTime())

	maxDG := 0.0
	for i := 1; i < trk.Len(); i++ {
		maxDG = math.Max(maxDG, trk.At(i).DeltaG)
	}
	assert.Equal(t, maxDG, agg.MaxDeltaG.Value)
}

func TestSummary(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), []float64{100, 101, 100.5, 102, 101}, true)
	trk.ActType = ActRide
	trk.ComputeMetrics()

	s := trk.Summary()
	assert.Equal(t, "cycling", s.ActivityType)
	assert.Equal(t, 5, s.NumPoints)
	assert.InDelta(t, 20, s.Distance, 1e-9)
	assert.Equal(t, int64(startTS), s.StartTime.Unix())
	assert.Equal(t, 4.0, s.Duration.Seconds())
	assert.InDelta(t, 5, s.AvgSpeed, 1e-9)
	assert.Equal(t, 102.0, s.MaxElevation)
	assert.Zero(t, s.MaxTemperature)
}

func TestComputeMetricsWarnings(t *testing.T) {
	build := func(t *testing.T, quiet bool) (*Track, *bytes.Buffer) {
		var buf bytes.Buffer
		trk := newLineTrack(t, Options{Quiet: quiet, Logger: log.New(&buf, "", 0)},
			[]float64{100, 100, 200, 200, 200}, true)
		trk.At(3).Speed = 95
		trk.At(4).Timestamp = trk.At(3).Timestamp
		return trk, &buf
	}

	t.Run("reported", func(t *testing.T) {
		trk, buf := build(t, false)
		trk.ComputeMetrics()

		out := buf.String()
		assert.Contains(t, out, "WARNING: TrkPt #2 (test.fit:3) has a bogus grade value: 2000.00 !")
		assert.Contains(t, out, "WARNING: TrkPt #3 (test.fit:4) has an implausible speed: 342.00 km/h !")
		assert.Contains(t, out, "WARNING: TrkPt #4 (test.fit:5) has a non-positive time delta: deltaT=0.000 !")
		assert.GreaterOrEqual(t, strings.Count(out, "TrkPt #2 at "), 1, "diagnostic dump around the point")
	})

	t.Run("quiet", func(t *testing.T) {
		trk, buf := build(t, true)
		trk.ComputeMetrics()

		assert.Empty(t, buf.String())
		assert.Equal(t, 5, trk.Len())
	})
}

func TestComputeMetricsRederivesSpeed(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), flat(3, 100), false)
	trk.ComputeMetrics()
	require.True(t, trk.At(1).DerivedSpeed)
	require.InDelta(t, 5, trk.At(1).Speed, 1e-6)

	// A 12 m rise stretches the 5 m run into a 13 m dist.
	trk.At(1).Elevation = 112
	trk.ComputeMetrics()
	assert.InDelta(t, 13, trk.At(1).Dist, 1e-6)
	assert.InDelta(t, 13, trk.At(1).Speed, 1e-6)

	t.Run("edited speed is kept", func(t *testing.T) {
		trk.Scale(MetricSpeed, 2, 2, 2)
		want := trk.At(2).Speed
		assert.False(t, trk.At(2).DerivedSpeed)

		trk.At(1).Elevation = 100
		trk.ComputeMetrics()
		assert.Equal(t, want, trk.At(2).Speed)
		assert.InDelta(t, 5, trk.At(1).Speed, 1e-6)
	})
}
