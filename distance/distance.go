// Package distance provides the pairwise distance metrics used to build
// per-group distance matrices.
package distance

import (
	"math"
)

// Func is a distance function between two observations (rows of a group).
type Func func(x, y []float64) float64

// ParamFunc builds a distance function from a numeric parameter.
type ParamFunc func(p float64) (Func, error)

// Kind classifies a metric for algorithm selection.
type Kind int

const (
	// General metrics only support the standard and memsave algorithms.
	General Kind = iota
	// Euclidean metrics reduce to |x-y| on a single column.
	Euclidean
	// Discrete metrics are 0 for equal observations and a constant otherwise.
	Discrete
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Euclidean:
		return "euclidean"
	case Discrete:
		return "discrete"
	default:
		return "general"
	}
}

// Metric is a resolved distance metric.
type Metric struct {
	Name  string
	Kind  Kind
	Param float64 // NaN when the metric takes no parameter
	Func  Func
}

// Dist returns the distance between x and y.
func (m Metric) Dist(x, y []float64) float64 {
	return m.Func(x, y)
}

// String returns the metric in "name" or "name:param" form.
func (m Metric) String() string {
	if math.IsNaN(m.Param) {
		return m.Name
	}
	return Spec{Name: m.Name, Param: formatParam(m.Param)}.String()
}

// Registry maps metric names to their implementations.
var Registry = map[string]Func{
	// Minkowski family
	"euclidean": EuclideanDist,
	"l2":        EuclideanDist,
	"manhattan": Manhattan,
	"l1":        Manhattan,
	"taxicab":   Manhattan,
	"chebyshev": Chebyshev,
	"linfinity": Chebyshev,
	"linf":      Chebyshev,

	// Angular metrics
	"cosine":      Cosine,
	"correlation": Correlation,

	// Other metrics
	"canberra":   Canberra,
	"braycurtis": BrayCurtis,
	"haversine":  Haversine,
	"hellinger":  Hellinger,

	// Binary metrics
	"hamming":     Hamming,
	"jaccard":     Jaccard,
	"dice":        Dice,
	"matching":    Hamming,
	"russellrao":  RussellRao,
	"sokalsneath": SokalSneath,
	"yule":        Yule,

	// Categorical
	"discrete": DiscreteDist(1),
}

// ParamRegistry maps parameterised metric names to their constructors.
// A bare name (no parameter) uses the entry in DefaultParams.
var ParamRegistry = map[string]ParamFunc{
	"alpha":     Alpha,
	"gaussian":  Gaussian,
	"minkowski": Minkowski,
	"discrete": func(c float64) (Func, error) {
		if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrBadParam
		}
		return DiscreteDist(c), nil
	},
}

// DefaultParams holds the parameter used when a parameterised metric is
// named without one. "gaussian" defaults to the median heuristic.
var DefaultParams = map[string]float64{
	"alpha":     1,
	"minkowski": 2,
	"discrete":  1,
}

// Get returns the plain distance function for the given metric name.
func Get(name string) (Func, bool) {
	f, ok := Registry[name]
	return f, ok
}

// Known reports whether name is a metric name, plain or parameterised.
func Known(name string) bool {
	if _, ok := Registry[name]; ok {
		return true
	}
	_, ok := ParamRegistry[name]
	return ok
}

// KindOf returns the kind of a metric name.
func KindOf(name string) Kind {
	switch name {
	case "euclidean", "l2":
		return Euclidean
	case "discrete":
		return Discrete
	default:
		return General
	}
}

func sqdiff(x, y []float64) float64 {
	var sum float64
	for i := range x {
		d := x[i] - y[i]
		sum += d * d
	}
	return sum
}
