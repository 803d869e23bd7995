package distance

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// EuclideanDist computes the standard Euclidean (L2) distance.
// D(x, y) = sqrt(sum((x_i - y_i)^2))
func EuclideanDist(x, y []float64) float64 {
	if len(x) == 1 {
		return math.Abs(x[0] - y[0])
	}
	return math.Sqrt(sqdiff(x, y))
}

// Alpha returns the Euclidean distance raised to the power a, 0 < a <= 2.
// D(x, y) = ||x - y||^a
func Alpha(a float64) (Func, error) {
	if !(a > 0 && a <= 2) {
		return nil, ErrBadParam
	}
	return func(x, y []float64) float64 {
		return math.Pow(sqdiff(x, y), a/2)
	}, nil
}

// Gaussian returns the bounded Gaussian-kernel distance with bandwidth s.
// D(x, y) = 1 - exp(-||x - y||^2 / (2 s^2))
func Gaussian(s float64) (Func, error) {
	if !(s > 0) || math.IsInf(s, 0) {
		return nil, ErrBadParam
	}
	den := 2 * s * s
	return func(x, y []float64) float64 {
		return 1 - math.Exp(-sqdiff(x, y)/den)
	}, nil
}

// Manhattan is the L1 distance Σ|x_i - y_i|.
func Manhattan(x, y []float64) float64 {
	return floats.Distance(x, y, 1)
}

// Chebyshev is the L∞ distance max|x_i - y_i|.
func Chebyshev(x, y []float64) float64 {
	return floats.Distance(x, y, math.Inf(1))
}

// Minkowski returns the L^p distance for p >= 1.
// D(x, y) = (Σ|x_i - y_i|^p)^(1/p)
func Minkowski(p float64) (Func, error) {
	if !(p >= 1) || math.IsInf(p, 0) {
		return nil, ErrBadParam
	}
	return func(x, y []float64) float64 {
		return floats.Distance(x, y, p)
	}, nil
}

// DiscreteDist returns the discrete metric: 0 when every coordinate is
// equal, c otherwise.
func DiscreteDist(c float64) Func {
	return func(x, y []float64) float64 {
		for i := range x {
			if x[i] != y[i] {
				return c
			}
		}
		return 0
	}
}
