package corr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{None, Pearson, Spearman, Kendall} {
		got, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMethod("distance")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestRanksAverageTies(t *testing.T) {
	assert.Equal(t, []float64{2.5, 1, 2.5, 4}, Ranks([]float64{3, 1, 3, 7}))
}

func TestCoefficient(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 5, 4, 5}

	assert.InDelta(t, 0.7745967, Coefficient(Pearson, x, y), 1e-6)
	// Monotone but nonlinear.
	cube := []float64{1, 8, 27, 64, 125}
	assert.InDelta(t, 1, Coefficient(Spearman, x, cube), 1e-12)
	assert.InDelta(t, 1, Coefficient(Kendall, x, cube), 1e-12)
	assert.InDelta(t, -1, Coefficient(Kendall, x, []float64{5, 4, 3, 2, 1}), 1e-12)

	// cor(x, y, method = "kendall") with ties in y.
	assert.InDelta(t, 0.6708204, Coefficient(Kendall, x, y), 1e-6)
	assert.True(t, math.IsNaN(Coefficient(Pearson, x[:1], y[:1])))
}

func TestPValue(t *testing.T) {
	// cor.test(1:5, c(2,4,5,4,5))$p.value
	p, err := PValue(Pearson, 0.7745967, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.1240, p, 1e-3)

	p, err = PValue(Pearson, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, p)

	p, err = PValue(Spearman, 0.5, 2)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(p))

	_, err = PValue(Kendall, 0.5, 10)
	assert.ErrorIs(t, err, ErrNoPValue)
}

func TestMatrixMissing(t *testing.T) {
	nan := math.NaN()
	xs := [][]float64{{1, 2, 3, 4, nan}, {1, 2, 3, 4, 5}}
	ys := [][]float64{{2, 4, 6, 8, 10}}

	r, nobs := Matrix(Pearson, xs, ys, false, 2)
	assert.True(t, math.IsNaN(r.At(0, 0)))
	assert.InDelta(t, 1, r.At(1, 0), 1e-12)
	assert.Equal(t, 5.0, nobs.At(1, 0))

	r, nobs = Matrix(Pearson, xs, ys, true, 1)
	assert.InDelta(t, 1, r.At(0, 0), 1e-12)
	assert.Equal(t, 4.0, nobs.At(0, 0))

	p, err := PValues(Pearson, r, nobs)
	require.NoError(t, err)
	assert.Zero(t, p.At(0, 0))

	_, err = PValues(Kendall, r, nobs)
	assert.ErrorIs(t, err, ErrNoPValue)
}
