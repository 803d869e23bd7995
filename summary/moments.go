package summary

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Moments are the distance moments used by the asymptotic tests.
type Moments struct {
	// Mean is a../(n(n-1)), the mean off-diagonal distance.
	Mean float64
	// VC is the V-type distance variance (1/n^2) sum_ij Ã_ij^2, with Ã
	// the double-centred distance matrix.
	VC float64
	// Skw is tr(Ã^3)/n^3. It is NaN unless the full matrix is kept.
	Skw float64
}

// Moments returns the moments of s.
func (s *Summary) Moments() Moments {
	n := float64(s.N())
	m := Moments{Mean: math.NaN(), VC: math.NaN(), Skw: math.NaN()}
	if n >= 2 {
		m.Mean = s.Total / (n * (n - 1))
	}
	if n >= 1 {
		m.VC = (s.SumSq - 2*s.RowSumSq()/n + s.Total*s.Total/(n*n)) / (n * n)
	}
	m.Skw = s.Skewness()
	return m
}

// Skewness returns tr(Ã^3)/n^3. The value is computed once per summary.
func (s *Summary) Skewness() float64 {
	if s.Dist == nil {
		return math.NaN()
	}
	s.skewOnce.Do(func() {
		n := s.N()
		fn := float64(n)
		grand := s.Total / (fn * fn)
		c := mat.NewDense(n, n, nil)
		c.Apply(func(i, j int, v float64) float64 {
			return v - s.RowSums[i]/fn - s.RowSums[j]/fn + grand
		}, s.Dist)

		var sq, cube mat.Dense
		sq.Mul(c, c)
		cube.MulElem(&sq, c)
		s.skew = mat.Sum(&cube) / (fn * fn * fn)
	})
	return s.skew
}
