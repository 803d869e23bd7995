package signif

import (
	"github.com/nozzle/dcor/internal/parallel"
	"github.com/nozzle/dcor/summary"
)

// permuted evaluates the estimator on every permutation of in.Terms.
func permuted(in Input, perms [][]int, workers int) []float64 {
	return parallel.ParallelMap(0, len(perms), workers, func(i int) float64 {
		return in.Estimator.DCov2(summary.Permute(in.Algorithm, in.Terms, perms[i]))
	})
}
