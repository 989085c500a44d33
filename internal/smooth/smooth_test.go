package smooth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	t.Run("uses original values only", func(t *testing.T) {
		values := []float64{1, 2, 3, 4, 5, 6, 7, 8}
		got, err := SMA(values, 3)
		require.NoError(t, err)

		// Points before index W keep their value.
		assert.Equal(t, []float64{1, 2, 3}, got[:3])
		for i := 3; i < len(values); i++ {
			want := (values[i-2] + values[i-1] + values[i]) / 3
			assert.InDelta(t, want, got[i], 1e-12, "index %d", i)
		}
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, values, "input must not change")
	})

	t.Run("spike is spread over the trailing window", func(t *testing.T) {
		values := []float64{0, 0, 0, 0, 9, 0, 0, 0}
		got, err := SMA(values, 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0, 0, 3, 3, 3, 0}, got)
	})

	t.Run("short series is unchanged", func(t *testing.T) {
		got, err := SMA([]float64{4, 5, 6}, 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{4, 5, 6}, got)
	})

	t.Run("rejects small window", func(t *testing.T) {
		_, err := SMA([]float64{1, 2, 3, 4}, 2)
		assert.ErrorIs(t, err, ErrWindow)
	})
}

func TestCMA(t *testing.T) {
	t.Run("centered mean with boundaries retained", func(t *testing.T) {
		values := []float64{10, 20, 60, 20, 10, 40, 70}
		got, err := CMA(values, 5)
		require.NoError(t, err)

		assert.Equal(t, 10.0, got[0])
		assert.Equal(t, 20.0, got[1])
		assert.InDelta(t, (10+20+60+20+10)/5.0, got[2], 1e-12)
		assert.InDelta(t, (20+60+20+10+40)/5.0, got[3], 1e-12)
		assert.InDelta(t, (60+20+10+40+70)/5.0, got[4], 1e-12)
		assert.Equal(t, 40.0, got[5])
		assert.Equal(t, 70.0, got[6])
	})

	t.Run("window of one is the identity", func(t *testing.T) {
		got, err := CMA([]float64{3, 1, 2}, 1)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 1, 2}, got)
	})

	t.Run("rejects even window", func(t *testing.T) {
		_, err := CMA([]float64{1, 2, 3, 4, 5}, 4)
		assert.ErrorIs(t, err, ErrWindow)
	})
}

func TestSavitzkyGolay(t *testing.T) {
	t.Run("preserves a polynomial of the fit degree", func(t *testing.T) {
		values := make([]float64, 30)
		for i := range values {
			x := float64(i)
			values[i] = 0.001*x*x*x*x - 0.05*x*x*x + 0.5*x*x - 2*x + 100
		}
		got, err := SavitzkyGolay(values, 9)
		require.NoError(t, err)
		require.Len(t, got, len(values))
		for i := range values {
			assert.InDelta(t, values[i], got[i], 1e-6, "index %d", i)
		}
	})

	t.Run("constant series stays constant", func(t *testing.T) {
		values := []float64{7, 7, 7, 7, 7, 7, 7}
		got, err := SavitzkyGolay(values, 5)
		require.NoError(t, err)
		for _, v := range got {
			assert.InDelta(t, 7.0, v, 1e-9)
		}
	})

	t.Run("attenuates a spike", func(t *testing.T) {
		values := make([]float64, 21)
		values[10] = 10
		got, err := SavitzkyGolay(values, 11)
		require.NoError(t, err)
		assert.Less(t, got[10], 10.0)
		assert.Greater(t, got[10], 0.0)
	})

	t.Run("window validation", func(t *testing.T) {
		_, err := SavitzkyGolay(make([]float64, 10), 4)
		assert.ErrorIs(t, err, ErrWindow)

		_, err = SavitzkyGolay(make([]float64, 10), 3)
		assert.ErrorIs(t, err, ErrWindow, "degree 4 needs at least 5 points")

		_, err = SavitzkyGolay(make([]float64, 4), 5)
		assert.ErrorIs(t, err, ErrWindow)
	})
}

func TestKernelCoefficients(t *testing.T) {
	k, err := NewKernel(7, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, k.Window())

	// The classic 7-point quadratic smoothing weights.
	want := []float64{-2, 3, 6, 7, 6, 3, -2}
	for i, c := range k.coeffs[k.half] {
		assert.InDelta(t, want[i]/21, c, 1e-9)
	}

	// Every kernel, symmetric or not, reproduces a constant.
	for p, cs := range k.coeffs {
		var sum float64
		for _, c := range cs {
			sum += c
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "offset %d", p)
	}
}

func TestKernelDerivative(t *testing.T) {
	k, err := NewKernel(5, 2, 1)
	require.NoError(t, err)

	values := []float64{0, 2, 4, 6, 8, 10, 12}
	got, err := k.Apply(values)
	require.NoError(t, err)
	for _, v := range got {
		assert.InDelta(t, 2.0, v, 1e-9)
	}
}
