package sample

import (
	"fmt"
	"strings"
)

// RowSet is a sorted set of row indices. It records exactly which
// observations contributed to a statistic.
type RowSet []int

// All returns the rows 0..n-1.
func All(n int) RowSet {
	r := make(RowSet, n)
	for i := range r {
		r[i] = i
	}
	return r
}

// Len returns the number of rows.
func (r RowSet) Len() int { return len(r) }

// Intersect returns the rows present in both sets.
func (r RowSet) Intersect(o RowSet) RowSet {
	out := make(RowSet, 0, min(len(r), len(o)))
	i, j := 0, 0
	for i < len(r) && j < len(o) {
		switch {
		case r[i] == o[j]:
			out = append(out, r[i])
			i++
			j++
		case r[i] < o[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// Equal reports whether both sets hold the same rows.
func (r RowSet) Equal(o RowSet) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i] != o[i] {
			return false
		}
	}
	return true
}

// Use selects how missing data is handled.
type Use int

const (
	// Everything uses all rows; groups with missing entries are skipped.
	Everything Use = iota
	// CompleteObs drops rows with a missing entry anywhere before computing.
	CompleteObs
	// PairwiseCompleteObs uses, per group pair, the rows complete in both groups.
	PairwiseCompleteObs
)

// String returns the mode name.
func (u Use) String() string {
	switch u {
	case CompleteObs:
		return "complete.obs"
	case PairwiseCompleteObs:
		return "pairwise.complete.obs"
	default:
		return "everything"
	}
}

// ParseUse parses a missing-data mode name.
func ParseUse(s string) (Use, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "everything", "all", "":
		return Everything, nil
	case "complete.obs", "complete":
		return CompleteObs, nil
	case "pairwise.complete.obs", "pairwise":
		return PairwiseCompleteObs, nil
	default:
		return Everything, fmt.Errorf("%w: %q", ErrUnknownUse, s)
	}
}

// CompleteAcross returns the rows complete in every column of every matrix.
// Nil matrices are ignored.
func CompleteAcross(ms ...*Matrix) RowSet {
	var out RowSet
	first := true
	for _, m := range ms {
		if m == nil {
			continue
		}
		rows := m.CompleteRows(m.AllCols())
		if first {
			out = rows
			first = false
			continue
		}
		out = out.Intersect(rows)
	}
	return out
}
