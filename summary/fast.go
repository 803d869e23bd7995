package summary

import (
	"slices"

	"github.com/nozzle/dcor/distance"
	"github.com/nozzle/dcor/sample"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Fast computes summaries and cross terms in O(n log n) for single-column
// groups under the euclidean or discrete metric. Groups outside that class
// are handled with on-demand distances.
type Fast struct{}

func (Fast) Name() string { return "fast" }

func (Fast) Summarize(g Group, rows sample.RowSet) *Summary {
	s := newSummary(g, rows)
	if len(rows) == 0 {
		return s
	}
	s.attach(g, g.points(rows))
	if !FastEligible([]Group{g}) {
		onDemandSums(s)
		return s
	}
	s.values = mat.Col(nil, 0, s.points)
	if g.Metric.Kind == distance.Discrete {
		s.Total, s.SumSq = discreteSums(s.values, g.Metric.Param, s.RowSums)
	} else {
		s.Total, s.SumSq = absSums(s.values, s.RowSums)
	}
	return s
}

func (Fast) Cross(a, b *Summary) float64 {
	if a.values == nil || b.values == nil {
		return onDemandCross(a, b, nil)
	}
	return fastCross(a, b, b.values)
}

func (Fast) PermutedCross(a, b *Summary, perm []int) float64 {
	if a.values == nil || b.values == nil {
		return onDemandCross(a, b, perm)
	}
	y := make([]float64, len(perm))
	for i, p := range perm {
		y[i] = b.values[p]
	}
	return fastCross(a, b, y)
}

// fastCross dispatches on the metric kinds; y holds b's values in the row
// order of a.
func fastCross(a, b *Summary, y []float64) float64 {
	ad := a.metric.Kind == distance.Discrete
	bd := b.metric.Kind == distance.Discrete
	switch {
	case ad && bd:
		return a.metric.Param * b.metric.Param * discreteCross(a.values, y)
	case ad:
		return a.metric.Param * (b.Total - withinLevels(a.values, y))
	case bd:
		return b.metric.Param * (a.Total - withinLevels(y, a.values))
	default:
		return absCross(a.values, y)
	}
}

// absSums fills sums with sum_j |x_i - x_j| and returns the grand total and
// sum_ij (x_i - x_j)^2.
func absSums(x, sums []float64) (total, sumsq float64) {
	m := len(x)
	xc := centred(x)
	order := argsort(xc)
	all := floats.Sum(xc)
	var prefix float64
	for k, i := range order {
		v := xc[i]
		below := v*float64(k) - prefix
		above := (all - prefix - v) - v*float64(m-k-1)
		sums[i] = below + above
		prefix += v
	}
	return floats.Sum(sums), 2 * float64(m) * floats.Dot(xc, xc)
}

// discreteSums fills sums for the discrete metric with constant c.
func discreteSums(x []float64, c float64, sums []float64) (total, sumsq float64) {
	counts := make(map[float64]int)
	for _, v := range x {
		counts[v]++
	}
	m := len(x)
	for i, v := range x {
		sums[i] = c * float64(m-counts[v])
	}
	total = floats.Sum(sums)
	return total, c * total
}

// absCross returns sum_ij |x_i - x_j| |y_i - y_j| using a Fenwick tree
// over the ranks of y, visiting rows in increasing x.
func absCross(x, y []float64) float64 {
	m := len(x)
	xc := centred(x)
	yc := centred(y)
	order := argsort(xc)
	rank := ranks(yc)

	t := newFenwick(m)
	var tc, tx, ty, txy, sum float64
	for _, i := range order {
		xi, yi := xc[i], yc[i]
		c, sx, sy, sxy := t.prefix(rank[i])
		lower := xi*yi*c - xi*sy - yi*sx + sxy
		cu, sxu, syu, sxyu := tc-c, tx-sx, ty-sy, txy-sxy
		upper := xi*yi*cu - xi*syu - yi*sxu + sxyu
		sum += lower - upper
		t.add(rank[i], xi, yi)
		tc++
		tx += xi
		ty += yi
		txy += xi * yi
	}
	return 2 * sum
}

// discreteCross counts ordered pairs that differ in both x and y.
func discreteCross(x, y []float64) float64 {
	type key struct{ x, y float64 }
	cx := make(map[float64]int)
	cy := make(map[float64]int)
	cxy := make(map[key]int)
	for i := range x {
		cx[x[i]]++
		cy[y[i]]++
		cxy[key{x[i], y[i]}]++
	}
	m := float64(len(x))
	n := m * m
	for _, c := range cx {
		n -= float64(c * c)
	}
	for _, c := range cy {
		n -= float64(c * c)
	}
	for _, c := range cxy {
		n += float64(c * c)
	}
	return n
}

// withinLevels returns sum over levels L of levels of sum_{i,j in L} |y_i - y_j|.
func withinLevels(levels, y []float64) float64 {
	byLevel := make(map[float64][]float64)
	for i, l := range levels {
		byLevel[l] = append(byLevel[l], y[i])
	}
	var sum float64
	for _, ys := range byLevel {
		slices.Sort(ys)
		ml := len(ys)
		for k, v := range ys {
			sum += v * float64(2*k-ml+1)
		}
	}
	return 2 * sum
}

func centred(x []float64) []float64 {
	mean := stat.Mean(x, nil)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - mean
	}
	return out
}

// argsort returns the indices that sort x ascending.
func argsort(x []float64) []int {
	tmp := slices.Clone(x)
	idx := make([]int, len(x))
	floats.Argsort(tmp, idx)
	return idx
}

// ranks returns the 0-based position of each element in ascending order.
func ranks(x []float64) []int {
	r := make([]int, len(x))
	for pos, i := range argsort(x) {
		r[i] = pos
	}
	return r
}

// fenwick accumulates count, sum x, sum y and sum xy over rank positions.
type fenwick struct {
	c, x, y, xy []float64
}

func newFenwick(n int) *fenwick {
	return &fenwick{
		c:  make([]float64, n+1),
		x:  make([]float64, n+1),
		y:  make([]float64, n+1),
		xy: make([]float64, n+1),
	}
}

func (f *fenwick) add(pos int, x, y float64) {
	for i := pos + 1; i < len(f.c); i += i & -i {
		f.c[i]++
		f.x[i] += x
		f.y[i] += y
		f.xy[i] += x * y
	}
}

// prefix sums positions [0, pos).
func (f *fenwick) prefix(pos int) (c, x, y, xy float64) {
	for i := pos; i > 0; i -= i & -i {
		c += f.c[i]
		x += f.x[i]
		y += f.y[i]
		xy += f.xy[i]
	}
	return c, x, y, xy
}
