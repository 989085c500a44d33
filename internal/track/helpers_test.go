package track

import (
	"io"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sstent/trackedit/internal/geo"
)

const startTS = 1_700_000_000.0

// metersToDeg converts a distance along the equator to degrees of longitude.
func metersToDeg(m float64) float64 {
	return m / geo.EarthRadius * 180 / math.Pi
}

func quietOptions() Options {
	return Options{Quiet: true, Logger: log.New(io.Discard, "", 0)}
}

// newLineTrack builds a 1 Hz track heading east along the equator with the
// points 5 m apart. With sourceDist the points carry a cumulative distance
// and a 5 m/s speed, as a device with a wheel sensor would record.
func newLineTrack(t *testing.T, opts Options, elevations []float64, sourceDist bool) *Track {
	t.Helper()
	trk := New(opts)
	for i, ele := range elevations {
		p := NewTrackPoint(i, "test.fit", i+1)
		p.Timestamp = startTS + float64(i)
		p.Latitude = 0
		p.Longitude = metersToDeg(5 * float64(i))
		p.Elevation = ele
		if sourceDist {
			p.Distance = 5 * float64(i)
			p.Speed = 5
		}
		trk.Append(p)
	}
	require.Equal(t, len(elevations), trk.Len())
	return trk
}

func flat(n int, ele float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = ele
	}
	return out
}

func requireContiguous(t *testing.T, trk *Track) {
	t.Helper()
	for i := 0; i < trk.Len(); i++ {
		require.Equal(t, i, trk.At(i).Index, "index at position %d", i)
	}
}
