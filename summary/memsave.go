package summary

import "github.com/nozzle/dcor/sample"

// MemSave keeps only the observations and recomputes distances when a
// cross term is needed.
type MemSave struct{}

func (MemSave) Name() string { return "memsave" }

func (MemSave) Summarize(g Group, rows sample.RowSet) *Summary {
	s := newSummary(g, rows)
	if len(rows) == 0 {
		return s
	}
	s.attach(g, g.points(rows))
	onDemandSums(s)
	return s
}

func (MemSave) Cross(a, b *Summary) float64 {
	return onDemandCross(a, b, nil)
}

func (MemSave) PermutedCross(a, b *Summary, perm []int) float64 {
	return onDemandCross(a, b, perm)
}
