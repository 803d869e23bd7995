// Package estimate turns the sufficient statistics of a group pair into
// distance covariance and distance correlation estimates.
package estimate

import "math"

// Terms are the sufficient statistics of dCov² for one pair of groups,
// computed on the same N rows.
type Terms struct {
	N            int
	CrossSum     float64 // sum_ij a_ij b_ij
	RowProduct   float64 // sum_k a_k. b_k.
	GrandProduct float64 // a.. b..
}

// Estimator converts Terms into dCov² and its root.
type Estimator interface {
	Name() string
	DCov2(t Terms) float64
	Root(dcov2 float64) float64
}

// New returns the bias-corrected estimator when biasCorr is set and the
// classical one otherwise.
func New(biasCorr bool) Estimator {
	if biasCorr {
		return BiasCorrected{}
	}
	return Classical{}
}

// BiasCorrected is the unbiased U-statistic estimator of dCov².
// It needs at least four rows and may be slightly negative.
type BiasCorrected struct{}

// Name returns "bias-corrected".
func (BiasCorrected) Name() string { return "bias-corrected" }

// DCov2 returns
//
//	aijbij/(n(n-3)) - 2 Sab/(n(n-2)(n-3)) + a..b../(n(n-1)(n-2)(n-3))
func (BiasCorrected) DCov2(t Terms) float64 {
	if t.N < 4 {
		return math.NaN()
	}
	n := float64(t.N)
	n3 := n * (n - 3)
	return t.CrossSum/n3 -
		2*t.RowProduct/(n3*(n-2)) +
		t.GrandProduct/(n3*(n-1)*(n-2))
}

// Root returns sign(x)·sqrt(|x|).
func (BiasCorrected) Root(dcov2 float64) float64 {
	if math.IsNaN(dcov2) {
		return dcov2
	}
	return math.Copysign(math.Sqrt(math.Abs(dcov2)), dcov2)
}

// Classical is the V-statistic estimator of dCov². It is non-negative up to
// rounding.
type Classical struct{}

// Name returns "classical".
func (Classical) Name() string { return "classical" }

// DCov2 returns aijbij/n² - 2 Sab/n³ + a..b../n⁴.
func (Classical) DCov2(t Terms) float64 {
	if t.N < 1 {
		return math.NaN()
	}
	n := float64(t.N)
	n2 := n * n
	return t.CrossSum/n2 - 2*t.RowProduct/(n2*n) + t.GrandProduct/(n2*n2)
}

// Root returns sqrt(x), with rounding noise below zero mapped to 0.
func (Classical) Root(dcov2 float64) float64 {
	if math.IsNaN(dcov2) {
		return dcov2
	}
	return math.Sqrt(math.Max(dcov2, 0))
}

// DCor normalises dcov by the fourth root of the product of the two
// squared distance variances. It is NaN when either variance is not
// positive.
func DCor(dcov, varX2, varY2 float64) float64 {
	if !(varX2 > 0) || !(varY2 > 0) || math.IsNaN(dcov) {
		return math.NaN()
	}
	return dcov / math.Sqrt(math.Sqrt(varX2*varY2))
}
