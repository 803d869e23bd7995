package signif

import "errors"

var (
	// ErrUnknownTest is returned for an unrecognised test name.
	ErrUnknownTest = errors.New("signif: unknown test")
	// ErrBadB is returned when a permutation test is asked for fewer than
	// one resample.
	ErrBadB = errors.New("signif: number of permutations must be positive")
)
