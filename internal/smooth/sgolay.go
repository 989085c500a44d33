package smooth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultDegree is the polynomial order of the Savitzky-Golay fit.
	DefaultDegree = 4
	// DefaultDeriv selects plain smoothing (no derivative).
	DefaultDeriv = 0
)

// Kernel holds the Savitzky-Golay convolution coefficients for one window
// size. coeffs[p] applies to a window whose evaluation point sits at offset
// p; p = half is the symmetric kernel used away from the ends, the others
// are the asymmetric sets used near the first and last points.
type Kernel struct {
	window int
	half   int
	degree int
	deriv  int
	coeffs [][]float64
}

// NewKernel precomputes the coefficients for an odd window, fitting a
// polynomial of the given degree and returning its deriv-th derivative.
func NewKernel(window, degree, deriv int) (*Kernel, error) {
	if window < 1 || window%2 == 0 {
		return nil, windowError("SGF window must be a positive odd number, got %d", window)
	}
	if degree < 0 || window <= degree {
		return nil, windowError("SGF window %d must exceed the polynomial degree %d", window, degree)
	}
	if deriv < 0 || deriv > degree {
		return nil, fmt.Errorf("SGF derivative order %d out of range [0, %d]", deriv, degree)
	}

	k := &Kernel{
		window: window,
		half:   (window - 1) / 2,
		degree: degree,
		deriv:  deriv,
		coeffs: make([][]float64, window),
	}
	for p := 0; p < window; p++ {
		c, err := sgCoefficients(window, p, degree, deriv)
		if err != nil {
			return nil, err
		}
		k.coeffs[p] = c
	}
	return k, nil
}

// sgCoefficients solves the least-squares polynomial fit over a window whose
// evaluation point is at offset pos. Row deriv of the pseudo-inverse of the
// Vandermonde matrix, scaled by deriv!, gives the convolution weights.
func sgCoefficients(window, pos, degree, deriv int) ([]float64, error) {
	a := mat.NewDense(window, degree+1, nil)
	for j := 0; j < window; j++ {
		x := float64(j - pos)
		v := 1.0
		for col := 0; col <= degree; col++ {
			a.Set(j, col, v)
			v *= x
		}
	}

	ones := make([]float64, window)
	for i := range ones {
		ones[i] = 1
	}
	eye := mat.NewDiagDense(window, ones)

	var qr mat.QR
	qr.Factorize(a)

	var pinv mat.Dense
	if err := qr.SolveTo(&pinv, false, eye); err != nil {
		return nil, fmt.Errorf("SGF coefficients (window=%d pos=%d): %w", window, pos, err)
	}

	c := mat.Row(nil, deriv, &pinv)
	if f := factorial(deriv); f != 1 {
		for i := range c {
			c[i] *= f
		}
	}
	return c, nil
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

// Window returns the kernel's window size.
func (k *Kernel) Window() int { return k.window }

// Apply filters the whole series in one shot. The series must hold at least
// one full window.
func (k *Kernel) Apply(values []float64) ([]float64, error) {
	n := len(values)
	if n < k.window {
		return nil, windowError("SGF window %d is larger than the series (%d points)", k.window, n)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var start, pos int
		switch {
		case i < k.half:
			start, pos = 0, i
		case i >= n-k.half:
			start, pos = n-k.window, i-(n-k.window)
		default:
			start, pos = i-k.half, k.half
		}

		var sum float64
		for j, c := range k.coeffs[pos] {
			sum += c * values[start+j]
		}
		out[i] = sum
	}
	return out, nil
}

// SavitzkyGolay smooths values with the default degree-4 polynomial.
func SavitzkyGolay(values []float64, window int) ([]float64, error) {
	k, err := NewKernel(window, DefaultDegree, DefaultDeriv)
	if err != nil {
		return nil, err
	}
	return k.Apply(values)
}
