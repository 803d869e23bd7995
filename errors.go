package dcor

import (
	"errors"

	"github.com/nozzle/dcor/sample"
	"github.com/nozzle/dcor/signif"
	"github.com/nozzle/dcor/summary"
)

var (
	// ErrRowMismatch is returned when x and y have different row counts.
	ErrRowMismatch = errors.New("dcor: x and y have different numbers of rows")

	// ErrEmpty is returned when x has no columns or no rows.
	ErrEmpty = sample.ErrEmpty
	// ErrUnknownUse is returned for an unrecognised Config.Use.
	ErrUnknownUse = sample.ErrUnknownUse
	// ErrUnknownAlgorithm is returned for an unrecognised Config.Algorithm.
	ErrUnknownAlgorithm = summary.ErrUnknownAlgorithm
	// ErrBB3Algorithm is returned when the bb3 test is combined with the
	// fast or memsave algorithm.
	ErrBB3Algorithm = summary.ErrBB3Algorithm
	// ErrUnknownTest is returned for an unrecognised Config.Test.
	ErrUnknownTest = signif.ErrUnknownTest
	// ErrBadB is returned when the permutation test gets fewer than one
	// permutation.
	ErrBadB = signif.ErrBadB
)
