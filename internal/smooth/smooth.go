// Package smooth implements the moving-average and Savitzky-Golay filters
// applied to a single metric series. Every filter reads only the original
// input values and returns a new slice; points the filter is not defined for
// keep their input value.
package smooth

import (
	"errors"
	"fmt"
)

// ErrWindow is wrapped by every window-size validation failure.
var ErrWindow = errors.New("invalid filter window")

func windowError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrWindow}, args...)...)
}

// SMA returns the trailing simple moving average of values over window
// points. The value at index i >= window is the mean of values[i-window+1]
// through values[i]; earlier values are returned unchanged.
func SMA(values []float64, window int) ([]float64, error) {
	if window < 3 {
		return nil, windowError("SMA window must be at least 3, got %d", window)
	}

	out := make([]float64, len(values))
	copy(out, values)

	for i := window; i < len(values); i++ {
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(window)
	}
	return out, nil
}

// CMA returns the centered moving average of values over an odd window.
// With n = (window-1)/2, the value at index i is the mean of the n values
// before it, itself and the n values after it. Indices closer than n to
// either end keep their original value.
func CMA(values []float64, window int) ([]float64, error) {
	if window < 1 || window%2 == 0 {
		return nil, windowError("CMA window must be a positive odd number, got %d", window)
	}
	n := (window - 1) / 2

	out := make([]float64, len(values))
	copy(out, values)

	for i := n; i < len(values)-n; i++ {
		var sum float64
		for j := i - n; j <= i+n; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(window)
	}
	return out, nil
}
