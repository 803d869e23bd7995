package summary

import (
	"github.com/nozzle/dcor/estimate"
	"gonum.org/v1/gonum/floats"
)

// PairTerms are the dCov² terms of two groups together with the summaries
// they were built from.
type PairTerms struct {
	estimate.Terms
	A, B *Summary
}

// Combine builds the pair terms of a and b. Both summaries must cover the
// same rows.
func Combine(alg Algorithm, a, b *Summary) PairTerms {
	if !a.Rows.Equal(b.Rows) {
		panic("summary: combining summaries over different rows")
	}
	return PairTerms{
		Terms: estimate.Terms{
			N:            a.N(),
			CrossSum:     alg.Cross(a, b),
			RowProduct:   floats.Dot(a.RowSums, b.RowSums),
			GrandProduct: a.Total * b.Total,
		},
		A: a,
		B: b,
	}
}

// Permute returns the terms of t with the rows of B relabelled by perm.
// GrandProduct is invariant under relabelling.
func Permute(alg Algorithm, t PairTerms, perm []int) estimate.Terms {
	var rp float64
	for k, p := range perm {
		rp += t.A.RowSums[k] * t.B.RowSums[p]
	}
	return estimate.Terms{
		N:            t.N,
		CrossSum:     alg.PermutedCross(t.A, t.B, perm),
		RowProduct:   rp,
		GrandProduct: t.GrandProduct,
	}
}

// Self returns the terms of s paired with itself, whose estimate is the
// squared distance variance.
func Self(s *Summary) estimate.Terms {
	return estimate.Terms{
		N:            s.N(),
		CrossSum:     s.SumSq,
		RowProduct:   s.RowSumSq(),
		GrandProduct: s.Total * s.Total,
	}
}
