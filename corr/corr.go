// Package corr computes Pearson, Spearman and Kendall correlation matrices
// between the columns of two samples, with t-test p-values.
package corr

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/nozzle/dcor/internal/parallel"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrUnknownMethod is returned for an unrecognised correlation method.
	ErrUnknownMethod = errors.New("corr: unknown method")
	// ErrNoPValue is returned when a method has no p-value implementation.
	ErrNoPValue = errors.New("corr: p-values not available for method")
)

// Method is a correlation coefficient.
type Method int

const (
	None Method = iota
	Pearson
	Spearman
	Kendall
)

func (m Method) String() string {
	switch m {
	case Pearson:
		return "pearson"
	case Spearman:
		return "spearman"
	case Kendall:
		return "kendall"
	default:
		return "none"
	}
}

// ParseMethod parses a method name.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "pearson":
		return Pearson, nil
	case "spearman":
		return Spearman, nil
	case "kendall":
		return Kendall, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Coefficient returns the correlation of x and y, which must be complete
// and of equal length.
func Coefficient(m Method, x, y []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	switch m {
	case Pearson:
		return stat.Correlation(x, y, nil)
	case Spearman:
		return stat.Correlation(Ranks(x), Ranks(y), nil)
	case Kendall:
		return KendallTau(x, y)
	default:
		return math.NaN()
	}
}

// Ranks returns 1-based ranks with ties given their average rank.
func Ranks(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case x[a] < x[b]:
			return -1
		case x[a] > x[b]:
			return 1
		}
		return 0
	})
	r := make([]float64, len(x))
	for i := 0; i < len(idx); {
		j := i + 1
		for j < len(idx) && x[idx[j]] == x[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			r[idx[k]] = avg
		}
		i = j
	}
	return r
}

// KendallTau returns Kendall's tau-b.
func KendallTau(x, y []float64) float64 {
	var concordant, discordant, tiesX, tiesY float64
	for i := range x {
		for j := i + 1; j < len(x); j++ {
			dx := x[i] - x[j]
			dy := y[i] - y[j]
			switch {
			case dx == 0 && dy == 0:
			case dx == 0:
				tiesX++
			case dy == 0:
				tiesY++
			case (dx > 0) == (dy > 0):
				concordant++
			default:
				discordant++
			}
		}
	}
	denom := math.Sqrt((concordant + discordant + tiesX) * (concordant + discordant + tiesY))
	if denom == 0 {
		return math.NaN()
	}
	return (concordant - discordant) / denom
}

// PValue returns the two-sided t-test p-value of r on n observations.
func PValue(m Method, r float64, n int) (float64, error) {
	if m == Kendall {
		return math.NaN(), fmt.Errorf("%w: %s", ErrNoPValue, m)
	}
	if n < 3 || math.IsNaN(r) {
		return math.NaN(), nil
	}
	if math.Abs(r) >= 1 {
		return 0, nil
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	st := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * st.Survival(math.Abs(t)), nil
}

// Matrix correlates every column of xs with every column of ys. NaN marks
// missing values: with pairwise set each cell uses the rows complete in
// both columns, otherwise a missing value makes the cell NaN. The second
// result holds the number of rows used per cell.
func Matrix(m Method, xs, ys [][]float64, pairwise bool, workers int) (*mat.Dense, *mat.Dense) {
	r := mat.NewDense(len(xs), len(ys), nil)
	nobs := mat.NewDense(len(xs), len(ys), nil)
	parallel.ParallelFor(0, len(xs)*len(ys), workers, func(k int) {
		i, j := k/len(ys), k%len(ys)
		x, y, ok := complete(xs[i], ys[j], pairwise)
		nobs.Set(i, j, float64(len(x)))
		if !ok {
			r.Set(i, j, math.NaN())
			return
		}
		r.Set(i, j, Coefficient(m, x, y))
	})
	return r, nobs
}

// PValues applies PValue to every cell of r.
func PValues(m Method, r, nobs *mat.Dense) (*mat.Dense, error) {
	rows, cols := r.Dims()
	p := mat.NewDense(rows, cols, nil)
	for i := range rows {
		for j := range cols {
			v, err := PValue(m, r.At(i, j), int(nobs.At(i, j)))
			if err != nil {
				return nil, err
			}
			p.Set(i, j, v)
		}
	}
	return p, nil
}

func complete(x, y []float64, pairwise bool) ([]float64, []float64, bool) {
	cx := make([]float64, 0, len(x))
	cy := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			if !pairwise {
				return nil, nil, false
			}
			continue
		}
		cx = append(cx, x[i])
		cy = append(cy, y[i])
	}
	return cx, cy, true
}
