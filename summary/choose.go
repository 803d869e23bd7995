package summary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nozzle/dcor/distance"
)

var (
	// ErrUnknownAlgorithm is returned for an unrecognised algorithm name.
	ErrUnknownAlgorithm = errors.New("summary: unknown algorithm")
	// ErrBB3Algorithm is returned when the bb3 test is combined with an
	// algorithm that does not keep the full distance matrix.
	ErrBB3Algorithm = errors.New("summary: bb3 test requires the standard algorithm")
)

// FastThreshold is the sample size above which "auto" picks Fast.
const FastThreshold = 200

// ParseAlgorithm validates an algorithm name.
func ParseAlgorithm(name string) (string, error) {
	switch s := strings.ToLower(strings.TrimSpace(name)); s {
	case "", "auto":
		return "auto", nil
	case "fast", "standard", "memsave":
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// FastEligible reports whether every group is a single euclidean or
// discrete column.
func FastEligible(groups []Group) bool {
	for _, g := range groups {
		if g.Width() != 1 {
			return false
		}
		if k := g.Metric.Kind; k != distance.Euclidean && k != distance.Discrete {
			return false
		}
	}
	return true
}

// Choose resolves the requested algorithm name for n rows and the given
// groups (of both samples). The "auto" rule is:
//
//	n > FastThreshold && FastEligible(groups) && !bb3  => fast
//	otherwise                                          => standard
//
// An explicit "fast" on ineligible groups falls back to standard and
// returns a warning. bb3 with an explicit fast or memsave is an error.
func Choose(name string, n int, groups []Group, bb3 bool) (Algorithm, []string, error) {
	name, err := ParseAlgorithm(name)
	if err != nil {
		return nil, nil, err
	}
	if bb3 && (name == "fast" || name == "memsave") {
		return nil, nil, fmt.Errorf("%w: got %q", ErrBB3Algorithm, name)
	}

	var warnings []string
	switch name {
	case "auto":
		if n > FastThreshold && FastEligible(groups) && !bb3 {
			return Fast{}, nil, nil
		}
		return Standard{}, nil, nil
	case "fast":
		if FastEligible(groups) {
			return Fast{}, nil, nil
		}
		warnings = append(warnings, "fast algorithm needs single-column euclidean or discrete groups; using standard")
		return Standard{}, warnings, nil
	case "memsave":
		return MemSave{}, nil, nil
	default:
		return Standard{}, nil, nil
	}
}
