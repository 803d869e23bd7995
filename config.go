package dcor

import "log/slog"

// Config configures Compute.
type Config struct {
	// CalcDCov and CalcDCor select which matrices are returned.
	// Default: true, true
	CalcDCov bool
	CalcDCor bool

	// CalcCor adds a column correlation matrix.
	// Options: "none", "pearson", "spearman", "kendall"
	// Default: "none"
	CalcCor string

	// CalcPValCor adds t-test p-values for CalcCor. Not available for
	// kendall.
	// Default: false
	CalcPValCor bool

	// Test is the independence test.
	// Options: "none", "permutation", "gamma", "conservative", "bb3"
	// Default: "none"
	Test string

	// AdjustP is the multiple-comparison correction applied to the p-values.
	// Options: "none", "holm", "hochberg", "hommel", "bonferroni", "BH",
	// "BY", "fdr"
	// Default: "none"
	AdjustP string

	// B is the number of permutations for the permutation test.
	// Default: 499
	B int

	// Affine whitens every non-discrete group before computing distances.
	// Default: false
	Affine bool

	// BiasCorr selects the bias-corrected estimator.
	// Default: false
	BiasCorr bool

	// GroupX and GroupY label the columns of x and y; columns sharing a
	// label form one group. nil makes every column its own group.
	GroupX, GroupY []string

	// MetricX and MetricY are the distance metrics, one for all groups or
	// one per group, as "name" or "name:param".
	// Default: euclidean
	MetricX, MetricY []string

	// Use is the missing-data mode.
	// Options: "everything", "complete.obs", "pairwise.complete.obs"
	// Default: "everything"
	Use string

	// Algorithm selects how distances are summarised.
	// Options: "auto", "fast", "standard", "memsave"
	// Default: "auto"
	Algorithm string

	// FCDiscrete forces the discrete metric on single categorical columns.
	// Default: false
	FCDiscrete bool

	// ReturnData keeps the (filtered) input matrices on the Result.
	// Default: false
	ReturnData bool

	// Seed for the permutation test.
	// Default: 42
	Seed int64

	// NumWorkers bounds concurrent pair computations.
	// 0 = GOMAXPROCS.
	// Default: 0
	NumWorkers int

	// Logger receives debug output and warnings. nil uses the package
	// default logger.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		CalcDCov:  true,
		CalcDCor:  true,
		CalcCor:   "none",
		Test:      "none",
		AdjustP:   "none",
		B:         499,
		Use:       "everything",
		Algorithm: "auto",
		Seed:      42,
	}
}
