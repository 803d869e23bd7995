// Package signif computes independence-test p-values for one group pair
// from its dCov² terms.
package signif

import (
	"fmt"
	"math"
	"strings"

	"github.com/nozzle/dcor/estimate"
	"github.com/nozzle/dcor/internal/rand"
	"github.com/nozzle/dcor/summary"
)

// Input carries everything a tester may need for one pair.
type Input struct {
	Terms     summary.PairTerms
	Algorithm summary.Algorithm
	Estimator estimate.Estimator
	// Observed is Estimator.DCov2 of Terms.
	Observed float64
	// Pair is the index of the pair in the result; it seeds per-pair
	// permutations.
	Pair int
}

// Tester produces a p-value for one pair. Implementations are safe for
// concurrent use.
type Tester interface {
	Name() string
	PValue(in Input) float64
}

// Options configures New.
type Options struct {
	B    int   // permutations
	N    int   // rows of the full sample
	Seed int64 // permutation seed
	// Workers > 1 spreads the resamples of each pair over goroutines.
	Workers int
}

// Names lists the accepted test names.
var Names = []string{"none", "permutation", "gamma", "conservative", "bb3"}

// New returns the tester called name.
func New(name string, opts Options) (Tester, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None{}, nil
	case "permutation":
		return NewPermutation(opts)
	case "gamma":
		return Gamma{}, nil
	case "conservative":
		return Conservative{}, nil
	case "bb3":
		return BB3{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownTest, name, strings.Join(Names, ", "))
	}
}

// None computes no p-values.
type None struct{}

func (None) Name() string { return "none" }

func (None) PValue(Input) float64 { return math.NaN() }

// PairSeed derives the permutation seed for pair k.
func PairSeed(seed int64, k int) uint32 {
	return uint32(seed) + uint32(k)*0x9E3779B9
}

// Permutation compares the observed dCov² with its value under B random
// relabellings of the rows of the second group.
type Permutation struct {
	opts  Options
	perms [][]int
}

// NewPermutation draws opts.B permutations of opts.N rows up front.
func NewPermutation(opts Options) (*Permutation, error) {
	if opts.B < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadB, opts.B)
	}
	return &Permutation{opts: opts, perms: rand.Perms(uint32(opts.Seed), opts.B, opts.N)}, nil
}

func (*Permutation) Name() string { return "permutation" }

// PValue returns (1 + #{permuted dCov² > observed}) / (1 + B). Pairs whose
// row count differs from the full sample draw their own permutations.
func (p *Permutation) PValue(in Input) float64 {
	if math.IsNaN(in.Observed) {
		return math.NaN()
	}
	perms := p.perms
	if in.Terms.N != p.opts.N {
		perms = rand.Perms(PairSeed(p.opts.Seed, in.Pair), p.opts.B, in.Terms.N)
	}
	stats := permuted(in, perms, max(p.opts.Workers, 1))
	exceed := 0
	for _, s := range stats {
		if s > in.Observed {
			exceed++
		}
	}
	return float64(1+exceed) / float64(1+p.opts.B)
}
