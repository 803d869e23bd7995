package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEuclidean(t *testing.T) {
	a := []float64{0, 0, 0}
	b := []float64{3, 4, 0}

	assert.InDelta(t, 5.0, EuclideanDist(a, b), 1e-12)
	assert.InDelta(t, 2.5, EuclideanDist([]float64{-1}, []float64{1.5}), 1e-12)
}

func TestManhattan(t *testing.T) {
	a := []float64{0, 0, 0}
	b := []float64{3, 4, 5}

	assert.InDelta(t, 12.0, Manhattan(a, b), 1e-12)
}

func TestCosine(t *testing.T) {
	a := []float64{1, 0, 0}
	b := []float64{0, 1, 0}

	// Orthogonal vectors have cosine similarity 0, distance 1
	assert.InDelta(t, 1.0, Cosine(a, b), 1e-12)
	assert.InDelta(t, 0.0, Cosine(a, []float64{2, 0, 0}), 1e-12)
}

func TestHamming(t *testing.T) {
	a := []float64{1, 0, 1, 0}
	b := []float64{1, 1, 0, 0}

	assert.InDelta(t, 0.5, Hamming(a, b), 1e-12)
}

func TestBinaryFamily(t *testing.T) {
	// tt=1 tf=1 ft=1 ff=1
	a := []float64{1, 0, 1, 0}
	b := []float64{1, 1, 0, 0}

	assert.InDelta(t, 2.0/3, Jaccard(a, b), 1e-12)
	assert.InDelta(t, 0.5, Dice(a, b), 1e-12)
	assert.InDelta(t, 0.75, RussellRao(a, b), 1e-12)
	assert.InDelta(t, 0.8, SokalSneath(a, b), 1e-12)
	assert.InDelta(t, 1.0, Yule(a, b), 1e-12)

	zero := []float64{0, 0, 0}
	assert.Equal(t, 0.0, Jaccard(zero, zero))
	assert.Equal(t, 0.0, Hamming(nil, nil))
}

func TestCorrelationDistance(t *testing.T) {
	assert.InDelta(t, 0.0, Correlation([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	assert.InDelta(t, 2.0, Correlation([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
	assert.Equal(t, 0.0, Correlation([]float64{1, 1}, []float64{2, 2}))
	assert.Equal(t, 1.0, Correlation([]float64{1, 1}, []float64{1, 2}))
}

func TestSpecialMetrics(t *testing.T) {
	assert.InDelta(t, 1.0, Canberra([]float64{0, 1}, []float64{0, -1}), 1e-12)
	assert.InDelta(t, 1.0/3, BrayCurtis([]float64{1, 1}, []float64{3, 1}), 1e-12)
	assert.InDelta(t, math.Pi/2, Haversine([]float64{0, 0}, []float64{0, math.Pi / 2}), 1e-12)
	assert.InDelta(t, 1.0, Hellinger([]float64{1, 0}, []float64{0, 1}), 1e-12)
	assert.InDelta(t, 4.0, Chebyshev([]float64{0, 0}, []float64{3, -4}), 1e-12)
}

func TestDiscrete(t *testing.T) {
	f := DiscreteDist(2)
	assert.Equal(t, 0.0, f([]float64{1, 3}, []float64{1, 3}))
	assert.Equal(t, 2.0, f([]float64{1, 3}, []float64{1, 4}))
}

func TestParamMetrics(t *testing.T) {
	alpha, err := Alpha(1)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, alpha([]float64{0, 0}, []float64{3, 4}), 1e-12)

	half, err := Alpha(0.5)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(5), half([]float64{0, 0}, []float64{3, 4}), 1e-12)

	g, err := Gaussian(1)
	require.NoError(t, err)
	assert.InDelta(t, 1-math.Exp(-0.5), g([]float64{0}, []float64{1}), 1e-12)

	mk, err := Minkowski(1)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, mk([]float64{0, 0}, []float64{3, 4}), 1e-12)

	for _, bad := range []func() error{
		func() error { _, err := Alpha(0); return err },
		func() error { _, err := Alpha(2.5); return err },
		func() error { _, err := Gaussian(-1); return err },
		func() error { _, err := Minkowski(0.5); return err },
	} {
		assert.ErrorIs(t, bad(), ErrBadParam)
	}
}

func TestRegistry(t *testing.T) {
	metrics := []string{"euclidean", "l2", "manhattan", "l1", "cosine", "chebyshev", "canberra", "discrete"}

	for _, name := range metrics {
		fn, ok := Get(name)
		if !ok {
			t.Errorf("Metric %s not found in registry", name)
			continue
		}

		dist := fn([]float64{1, 2, 3}, []float64{4, 5, 6})
		if math.IsNaN(dist) || math.IsInf(dist, 0) {
			t.Errorf("Metric %s returned non-finite value: %f", name, dist)
		}
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Euclidean, KindOf("euclidean"))
	assert.Equal(t, Euclidean, KindOf("l2"))
	assert.Equal(t, Discrete, KindOf("discrete"))
	assert.Equal(t, General, KindOf("manhattan"))
	assert.Equal(t, General, KindOf("alpha"))
}

func TestParseSpec(t *testing.T) {
	assert.Equal(t, Spec{Name: "euclidean"}, ParseSpec("Euclidean"))
	assert.Equal(t, Spec{Name: "gaussian", Param: "median"}, ParseSpec("gaussian:median"))
	assert.Equal(t, Spec{Name: "alpha", Param: "0.5"}, ParseSpec(" alpha : 0.5 "))
	assert.Equal(t, "alpha:0.5", ParseSpec("alpha:0.5").String())
}

func TestResolveSpecs(t *testing.T) {
	tests := []struct {
		name   string
		specs  []string
		groups int
		want   []Spec
		err    error
	}{
		{
			name:   "default euclidean",
			groups: 2,
			want:   []Spec{{Name: "euclidean"}, {Name: "euclidean"}},
		},
		{
			name:   "broadcast single",
			specs:  []string{"manhattan"},
			groups: 3,
			want:   []Spec{{Name: "manhattan"}, {Name: "manhattan"}, {Name: "manhattan"}},
		},
		{
			name:   "legacy name and parameter",
			specs:  []string{"gaussian", "median"},
			groups: 2,
			want:   []Spec{{Name: "gaussian", Param: "median"}, {Name: "gaussian", Param: "median"}},
		},
		{
			name:   "legacy numeric parameter",
			specs:  []string{"alpha", "0.5"},
			groups: 3,
			want:   []Spec{{Name: "alpha", Param: "0.5"}, {Name: "alpha", Param: "0.5"}, {Name: "alpha", Param: "0.5"}},
		},
		{
			name:   "two groups two names",
			specs:  []string{"euclidean", "discrete"},
			groups: 2,
			want:   []Spec{{Name: "euclidean"}, {Name: "discrete"}},
		},
		{
			name:   "per group with params",
			specs:  []string{"alpha:1.5", "euclidean", "discrete:2"},
			groups: 3,
			want:   []Spec{{Name: "alpha", Param: "1.5"}, {Name: "euclidean"}, {Name: "discrete", Param: "2"}},
		},
		{
			name:   "count mismatch",
			specs:  []string{"euclidean", "manhattan", "cosine"},
			groups: 2,
			err:    ErrMetricCount,
		},
		{
			name:   "unknown",
			specs:  []string{"wasserstein"},
			groups: 1,
			err:    ErrUnknownMetric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSpecs(tt.specs, tt.groups)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	data := mat.NewDense(4, 1, []float64{0, 1, 3, math.NaN()})

	m, err := New(Spec{Name: "euclidean"}, data)
	require.NoError(t, err)
	assert.Equal(t, Euclidean, m.Kind)
	assert.True(t, math.IsNaN(m.Param))
	assert.Equal(t, "euclidean", m.String())

	d, err := New(Spec{Name: "discrete"}, data)
	require.NoError(t, err)
	assert.Equal(t, Discrete, d.Kind)
	assert.Equal(t, 1.0, d.Param)

	d3, err := New(Spec{Name: "discrete", Param: "3"}, data)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d3.Dist([]float64{1}, []float64{2}))
	assert.Equal(t, "discrete:3", d3.String())

	// Pairwise distances of {0, 1, 3} are {1, 2, 3}; the NaN row is ignored.
	g, err := New(Spec{Name: "gaussian", Param: "median"}, data)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, g.Param, 1e-12)

	g2, err := New(Spec{Name: "gaussian"}, data)
	require.NoError(t, err)
	assert.InDelta(t, g.Param, g2.Param, 1e-12)

	_, err = New(Spec{Name: "manhattan", Param: "2"}, data)
	assert.ErrorIs(t, err, ErrBadParam)

	_, err = New(Spec{Name: "alpha", Param: "median"}, data)
	assert.ErrorIs(t, err, ErrBadParam)

	_, err = New(Spec{Name: "alpha", Param: "abc"}, data)
	assert.ErrorIs(t, err, ErrBadParam)

	_, err = New(Spec{Name: "haversine"}, data)
	assert.ErrorIs(t, err, ErrBadParam)
	latLon, err := New(Spec{Name: "haversine"}, mat.NewDense(2, 2, []float64{0, 0, 0, 1}))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, latLon.Dist([]float64{0, 0}, []float64{0, 1}), 1e-12)

	_, err = New(Spec{Name: "nope"}, data)
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestMedianBandwidthDegenerate(t *testing.T) {
	same := mat.NewDense(3, 1, []float64{2, 2, 2})
	assert.Equal(t, 1.0, MedianBandwidth(same))

	mostlySame := mat.NewDense(4, 1, []float64{2, 2, 2, 5})
	assert.Equal(t, 3.0, MedianBandwidth(mostlySame))
}

func BenchmarkEuclidean(b *testing.B) {
	x := make([]float64, 100)
	y := make([]float64, 100)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i + 1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EuclideanDist(x, y)
	}
}
