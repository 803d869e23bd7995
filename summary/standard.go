package summary

import (
	"github.com/nozzle/dcor/sample"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Standard materialises the full n×n distance matrix of every group.
type Standard struct{}

func (Standard) Name() string { return "standard" }

func (Standard) Summarize(g Group, rows sample.RowSet) *Summary {
	s := newSummary(g, rows)
	m := len(rows)
	if m == 0 {
		return s
	}
	s.attach(g, g.points(rows))
	pts := s.points
	d := mat.NewDense(m, m, nil)
	raw := d.RawMatrix()
	for i := range m {
		xi := pts.RawRowView(i)
		for j := i + 1; j < m; j++ {
			v := s.metric.Dist(xi, pts.RawRowView(j))
			raw.Data[i*raw.Stride+j] = v
			raw.Data[j*raw.Stride+i] = v
			s.RowSums[i] += v
			s.RowSums[j] += v
			s.SumSq += 2 * v * v
		}
	}
	s.Total = floats.Sum(s.RowSums)
	s.Dist = d
	return s
}

func (Standard) Cross(a, b *Summary) float64 {
	if a.N() == 0 {
		return 0
	}
	var sum float64
	for i := range a.N() {
		sum += floats.Dot(a.Dist.RawRowView(i), b.Dist.RawRowView(i))
	}
	return sum
}

func (Standard) PermutedCross(a, b *Summary, perm []int) float64 {
	var sum float64
	for i := range a.N() {
		ai := a.Dist.RawRowView(i)
		bi := b.Dist.RawRowView(perm[i])
		for j, v := range ai {
			sum += v * bi[perm[j]]
		}
	}
	return sum
}
