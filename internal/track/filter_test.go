package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/trackedit/internal/smooth"
)

func TestApplyFilterCMA(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), []float64{100, 100, 103, 100, 100}, true)
	trk.ComputeMetrics()

	require.NoError(t, trk.ApplyFilter(FilterCMA, MetricElevation, 3, 0, trk.Len()-1))

	assert.InDeltaSlice(t, []float64{100, 101, 101, 101, 100}, elevations(trk), 1e-9)
	assert.Equal(t, 3, trk.NumElevAdj)
	assert.InDelta(t, 1, trk.At(1).Rise, 1e-9)
	assert.InDelta(t, 1, trk.Agg.ElevGain, 1e-9)
}

func TestApplyFilterRange(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), []float64{100, 100, 103, 100, 100}, true)
	trk.ComputeMetrics()

	require.NoError(t, trk.ApplyFilter(FilterCMA, MetricElevation, 3, 2, 2))

	assert.InDeltaSlice(t, []float64{100, 100, 101, 100, 100}, elevations(trk), 1e-9)
	assert.Equal(t, 1, trk.NumElevAdj)
}

func TestApplyFilterUsesUnfilteredInput(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), flat(8, 100), true)
	for i, v := range []float64{5, 5, 5, 8, 5, 5, 5, 5} {
		trk.At(i).Speed = v
	}
	trk.ComputeMetrics()
	want, err := smooth.SMA(trk.Series(MetricSpeed), 3)
	require.NoError(t, err)

	require.NoError(t, trk.ApplyFilter(FilterSMA, MetricSpeed, 3, 0, trk.Len()-1))

	assert.InDeltaSlice(t, want, trk.Series(MetricSpeed), 1e-9)
	assert.Zero(t, trk.NumElevAdj)
}

func TestApplyFilterSGFConstant(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), flat(9, 42), true)
	trk.ComputeMetrics()

	require.NoError(t, trk.ApplyFilter(FilterSGF, MetricElevation, 5, 0, trk.Len()-1))
	assert.InDeltaSlice(t, flat(9, 42), elevations(trk), 1e-9)
}

func TestApplyFilterErrors(t *testing.T) {
	trk := newLineTrack(t, quietOptions(), flat(5, 100), true)
	trk.ComputeMetrics()

	err := trk.ApplyFilter(FilterSMA, MetricGradeChange, 3, 0, 4)
	assert.Error(t, err)

	err = trk.ApplyFilter(FilterCMA, MetricElevation, 4, 0, 4)
	assert.ErrorIs(t, err, smooth.ErrWindow)

	err = trk.ApplyFilter(FilterSGF, MetricElevation, 7, 0, 4)
	assert.ErrorIs(t, err, smooth.ErrWindow)
}
