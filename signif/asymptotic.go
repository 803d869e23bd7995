package signif

import (
	"math"

	"github.com/nozzle/dcor/estimate"
	"github.com/nozzle/dcor/summary"
	"gonum.org/v1/gonum/stat/distuv"
)

// null holds the statistic T = n·dCov²_U + U2·U3 shared by the asymptotic
// tests, where U2 and U3 are the mean off-diagonal distances.
type null struct {
	T, U2, U3 float64
}

func nullStat(t summary.PairTerms) (null, bool) {
	n := float64(t.N)
	if t.N < 4 {
		return null{}, false
	}
	u2 := t.A.Total / (n * (n - 1))
	u3 := t.B.Total / (n * (n - 1))
	stat := n*estimate.BiasCorrected{}.DCov2(t.Terms) + u2*u3
	if math.IsNaN(stat) {
		return null{}, false
	}
	return null{T: stat, U2: u2, U3: u3}, true
}

// Gamma approximates the null distribution of T by a gamma distribution
// with the first two moments estimated from bias-corrected distance
// variances.
type Gamma struct{}

func (Gamma) Name() string { return "gamma" }

func (Gamma) PValue(in Input) float64 {
	h, ok := nullStat(in.Terms)
	if !ok {
		return math.NaN()
	}
	bc := estimate.BiasCorrected{}
	u1 := bc.DCov2(summary.Self(in.Terms.A)) * bc.DCov2(summary.Self(in.Terms.B))
	mu := h.U2 * h.U3
	if !(u1 > 0) || !(mu > 0) {
		return math.NaN()
	}
	g := distuv.Gamma{Alpha: mu * mu / (2 * u1), Beta: mu / (2 * u1)}
	return g.Survival(h.T)
}

// Conservative matches the mean and variance of T with a scaled
// chi-square c·χ²_ν.
type Conservative struct{}

func (Conservative) Name() string { return "conservative" }

func (Conservative) PValue(in Input) float64 {
	h, ok := nullStat(in.Terms)
	if !ok {
		return math.NaN()
	}
	mu, sigma := twoMoments(h, in.Terms.A.Moments(), in.Terms.B.Moments())
	return scaledChiSq(h.T, mu, sigma)
}

// BB3 adds the third moment and uses a Pearson-type chi-square
// approximation. Non-positive skewness falls back to Conservative.
type BB3 struct{}

func (BB3) Name() string { return "bb3" }

func (BB3) PValue(in Input) float64 {
	h, ok := nullStat(in.Terms)
	if !ok {
		return math.NaN()
	}
	ma, mb := in.Terms.A.Moments(), in.Terms.B.Moments()
	mu, sigma := twoMoments(h, ma, mb)
	beta := 8 * ma.Skw * mb.Skw / (sigma * sigma * sigma)
	return threeMoment(h.T, mu, sigma, beta)
}

func twoMoments(h null, a, b summary.Moments) (mu, sigma float64) {
	return h.U2 * h.U3, math.Sqrt(2 * a.VC * b.VC)
}

// scaledChiSq returns P(c·χ²_ν > t) with c·ν = mu and 2c²ν = sigma².
func scaledChiSq(t, mu, sigma float64) float64 {
	if !(sigma > 0) || !(mu > 0) {
		return math.NaN()
	}
	c := sigma * sigma / (2 * mu)
	nu := 2 * mu * mu / (sigma * sigma)
	return distuv.ChiSquared{K: nu}.Survival(t / c)
}

// threeMoment returns the upper tail of t under a chi-square matched to
// mean mu, sd sigma and skewness beta.
func threeMoment(t, mu, sigma, beta float64) float64 {
	if !(sigma > 0) {
		return math.NaN()
	}
	if !(beta > 0) {
		return scaledChiSq(t, mu, sigma)
	}
	nu := 8 / (beta * beta)
	x := nu + math.Sqrt(2*nu)*(t-mu)/sigma
	if x <= 0 {
		return 1
	}
	return distuv.ChiSquared{K: nu}.Survival(x)
}
