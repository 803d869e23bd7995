// Package summary computes the sufficient statistics of per-group distance
// matrices and combines two groups into the cross terms of dCov².
//
// Three algorithms produce the same statistics with different costs:
// Fast (O(n log n), single-column euclidean or discrete groups), Standard
// (O(n²) memory, any metric) and MemSave (distances recomputed on demand).
package summary

import (
	"math"
	"sync"

	"github.com/nozzle/dcor/distance"
	"github.com/nozzle/dcor/sample"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Group is one variable group ready for summarisation.
type Group struct {
	Label  string
	Data   *mat.Dense // every sample row; NaN marks missing
	Metric distance.Metric
	// Spec is the request Metric was resolved from. Data-driven specs are
	// resolved again on the points of every summary.
	Spec   distance.Spec
	Affine bool
}

// Width returns the number of columns in the group.
func (g Group) Width() int {
	if g.Data == nil {
		return 0
	}
	_, c := g.Data.Dims()
	return c
}

// points returns the group's observations on rows, whitened when the group
// is affine-normalised.
func (g Group) points(rows sample.RowSet) *mat.Dense {
	pts := sample.Gather(g.Data, rows)
	if pts == nil || !g.Affine || g.Metric.Kind == distance.Discrete {
		return pts
	}
	return sample.Whiten(pts)
}

// metricFor returns the metric to apply to pts.
func (g Group) metricFor(pts *mat.Dense) distance.Metric {
	if pts == nil || !distance.DataDriven(g.Spec) {
		return g.Metric
	}
	m, err := distance.New(g.Spec, pts)
	if err != nil {
		return g.Metric
	}
	return m
}

// attach stores the points of s and the metric resolved on them.
func (s *Summary) attach(g Group, pts *mat.Dense) {
	s.points = pts
	s.metric = g.metricFor(pts)
}

// Summary holds the sufficient statistics of one group's raw distance
// matrix on a fixed row set. Total always equals the sum of RowSums.
type Summary struct {
	Rows    sample.RowSet
	RowSums []float64 // a_i.
	Total   float64   // a..
	SumSq   float64   // sum_ij a_ij^2

	// Dist is the full distance matrix; only the standard algorithm keeps it.
	Dist *mat.Dense

	metric distance.Metric
	points *mat.Dense
	values []float64

	skewOnce sync.Once
	skew     float64
}

// N returns the number of rows the summary covers.
func (s *Summary) N() int { return len(s.Rows) }

// Metric returns the metric the distances were computed with.
func (s *Summary) Metric() distance.Metric { return s.metric }

// RowSumSq returns sum_i a_i.^2.
func (s *Summary) RowSumSq() float64 {
	return floats.Dot(s.RowSums, s.RowSums)
}

// Algorithm builds summaries and their cross terms. Both summaries passed
// to Cross must come from the same Algorithm and cover the same rows.
type Algorithm interface {
	Name() string
	Summarize(g Group, rows sample.RowSet) *Summary
	// Cross returns sum_ij a_ij b_ij.
	Cross(a, b *Summary) float64
	// PermutedCross returns sum_ij a_ij b_{perm[i] perm[j]}.
	PermutedCross(a, b *Summary, perm []int) float64
}

func newSummary(g Group, rows sample.RowSet) *Summary {
	return &Summary{
		Rows:    rows,
		RowSums: make([]float64, len(rows)),
		metric:  g.Metric,
		skew:    math.NaN(),
	}
}

// onDemandCross computes the (permuted) cross term from the stored
// observations, recomputing every distance. perm may be nil.
func onDemandCross(a, b *Summary, perm []int) float64 {
	m := a.N()
	var sum float64
	for i := range m {
		ai := a.points.RawRowView(i)
		pi := i
		if perm != nil {
			pi = perm[i]
		}
		bi := b.points.RawRowView(pi)
		for j := i + 1; j < m; j++ {
			pj := j
			if perm != nil {
				pj = perm[j]
			}
			sum += a.metric.Dist(ai, a.points.RawRowView(j)) * b.metric.Dist(bi, b.points.RawRowView(pj))
		}
	}
	return 2 * sum
}

// onDemandSums fills RowSums, Total and SumSq from s.points.
func onDemandSums(s *Summary) {
	m := s.N()
	for i := range m {
		xi := s.points.RawRowView(i)
		for j := i + 1; j < m; j++ {
			d := s.metric.Dist(xi, s.points.RawRowView(j))
			s.RowSums[i] += d
			s.RowSums[j] += d
			s.SumSq += 2 * d * d
		}
	}
	s.Total = floats.Sum(s.RowSums)
}
