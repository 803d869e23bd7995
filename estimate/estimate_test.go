package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// rawTerms computes the sufficient statistics from two distance matrices.
func rawTerms(a, b [][]float64) Terms {
	n := len(a)
	var t Terms
	t.N = n
	var aTot, bTot float64
	for i := range n {
		var ai, bi float64
		for j := range n {
			t.CrossSum += a[i][j] * b[i][j]
			ai += a[i][j]
			bi += b[i][j]
		}
		t.RowProduct += ai * bi
		aTot += ai
		bTot += bi
	}
	t.GrandProduct = aTot * bTot
	return t
}

func absDist(x []float64) [][]float64 {
	d := make([][]float64, len(x))
	for i := range x {
		d[i] = make([]float64, len(x))
		for j := range x {
			d[i][j] = math.Abs(x[i] - x[j])
		}
	}
	return d
}

// uCentered returns the U-centred inner product divided by n(n-3).
func uCentered(a, b [][]float64) float64 {
	n := len(a)
	center := func(d [][]float64) [][]float64 {
		rows := make([]float64, n)
		var tot float64
		for i := range n {
			for j := range n {
				rows[i] += d[i][j]
			}
			tot += rows[i]
		}
		out := make([][]float64, n)
		for i := range n {
			out[i] = make([]float64, n)
			for j := range n {
				if i == j {
					continue
				}
				fn := float64(n)
				out[i][j] = d[i][j] - rows[i]/(fn-2) - rows[j]/(fn-2) + tot/((fn-1)*(fn-2))
			}
		}
		return out
	}
	ca, cb := center(a), center(b)
	var s float64
	for i := range n {
		for j := range n {
			s += ca[i][j] * cb[i][j]
		}
	}
	return s / float64(n*(n-3))
}

// vCentered returns the double-centred inner product divided by n².
func vCentered(a, b [][]float64) float64 {
	n := len(a)
	center := func(d [][]float64) [][]float64 {
		rows := make([]float64, n)
		var tot float64
		for i := range n {
			for j := range n {
				rows[i] += d[i][j]
			}
			tot += rows[i]
		}
		fn := float64(n)
		out := make([][]float64, n)
		for i := range n {
			out[i] = make([]float64, n)
			for j := range n {
				out[i][j] = d[i][j] - rows[i]/fn - rows[j]/fn + tot/(fn*fn)
			}
		}
		return out
	}
	ca, cb := center(a), center(b)
	var s float64
	for i := range n {
		for j := range n {
			s += ca[i][j] * cb[i][j]
		}
	}
	return s / float64(n*n)
}

var (
	xs = []float64{1.2, -0.4, 3.1, 0.7, 2.2, -1.5, 0.1, 1.9}
	ys = []float64{0.3, 1.1, -0.8, 2.4, 0.9, 0.2, -1.3, 1.7}
)

func TestBiasCorrectedMatchesUCentering(t *testing.T) {
	a, b := absDist(xs), absDist(ys)
	got := BiasCorrected{}.DCov2(rawTerms(a, b))
	assert.InDelta(t, uCentered(a, b), got, 1e-12)
}

func TestClassicalMatchesDoubleCentering(t *testing.T) {
	a, b := absDist(xs), absDist(ys)
	got := Classical{}.DCov2(rawTerms(a, b))
	assert.InDelta(t, vCentered(a, b), got, 1e-12)
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestRoot(t *testing.T) {
	bc := BiasCorrected{}
	assert.Equal(t, -2.0, bc.Root(-4))
	assert.Equal(t, 3.0, bc.Root(9))
	assert.True(t, math.IsNaN(bc.Root(math.NaN())))

	cl := Classical{}
	assert.Equal(t, 3.0, cl.Root(9))
	assert.Equal(t, 0.0, cl.Root(-1e-18))
}

func TestSmallN(t *testing.T) {
	assert.True(t, math.IsNaN(BiasCorrected{}.DCov2(Terms{N: 3})))
	assert.True(t, math.IsNaN(Classical{}.DCov2(Terms{N: 0})))
}

func TestDCor(t *testing.T) {
	a := absDist(xs)
	for _, est := range []Estimator{New(true), New(false)} {
		t.Run(est.Name(), func(t *testing.T) {
			v := est.DCov2(rawTerms(a, a))
			r := DCor(est.Root(v), v, v)
			assert.InDelta(t, 1.0, r, 1e-12)
		})
	}

	assert.True(t, math.IsNaN(DCor(0.5, 0, 1)))
	assert.True(t, math.IsNaN(DCor(0.5, 1, -1)))
	assert.InDelta(t, -0.5, DCor(-1, 4, 4), 1e-12)
}
