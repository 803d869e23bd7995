package distance

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MedianParam selects the median pairwise distance as the gaussian bandwidth.
const MedianParam = "median"

// Spec is an unresolved metric request: a name and an optional parameter.
type Spec struct {
	Name  string
	Param string
}

// ParseSpec parses "name" or "name:param".
func ParseSpec(s string) Spec {
	s = strings.TrimSpace(s)
	name, param, _ := strings.Cut(s, ":")
	return Spec{Name: strings.ToLower(strings.TrimSpace(name)), Param: strings.TrimSpace(param)}
}

// String returns the spec in "name" or "name:param" form.
func (s Spec) String() string {
	if s.Param == "" {
		return s.Name
	}
	return s.Name + ":" + s.Param
}

// ResolveSpecs assigns one metric spec to each of groups groups.
//
// An empty list means euclidean everywhere and a single entry is broadcast.
// A two-element list whose second element is a parameter rather than a
// metric name (for example {"gaussian", "median"} or {"alpha", "0.5"}) is
// read as one parameterised metric and broadcast. Otherwise the list must
// hold exactly one entry per group.
func ResolveSpecs(specs []string, groups int) ([]Spec, error) {
	out := make([]Spec, groups)
	switch {
	case len(specs) == 0:
		for i := range out {
			out[i] = Spec{Name: "euclidean"}
		}
	case len(specs) == 1:
		s := ParseSpec(specs[0])
		for i := range out {
			out[i] = s
		}
	case len(specs) == 2 && isParam(specs[1]):
		s := ParseSpec(specs[0])
		s.Param = strings.TrimSpace(specs[1])
		for i := range out {
			out[i] = s
		}
	case len(specs) == groups:
		for i, raw := range specs {
			out[i] = ParseSpec(raw)
		}
	default:
		return nil, fmt.Errorf("%w: got %d entries for %d groups", ErrMetricCount, len(specs), groups)
	}

	for _, s := range out {
		if !Known(s.Name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, s.Name)
		}
	}
	return out, nil
}

// DataDriven reports whether resolving spec reads the group's data, so the
// metric has to be resolved again on the exact points it is applied to.
func DataDriven(spec Spec) bool {
	return spec.Name == "gaussian" && (spec.Param == "" || strings.EqualFold(spec.Param, MedianParam))
}

// isParam reports whether s reads as a metric parameter and not a metric name.
func isParam(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if Known(s) {
		return false
	}
	if s == MedianParam {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// New resolves spec into a Metric. data holds the group's observations
// (NaN marks missing values) and is only read for data-driven parameters.
func New(spec Spec, data *mat.Dense) (Metric, error) {
	name := spec.Name
	if spec.Param == "" {
		if name == "gaussian" {
			return New(Spec{Name: name, Param: MedianParam}, data)
		}
		if p, ok := DefaultParams[name]; ok {
			return newParam(name, p)
		}
		f, ok := Get(name)
		if !ok {
			return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
		}
		if name == "haversine" && data != nil {
			if _, c := data.Dims(); c != 2 {
				return Metric{}, fmt.Errorf("%w: haversine needs 2 columns (lat, lon), got %d", ErrBadParam, c)
			}
		}
		return Metric{Name: name, Kind: KindOf(name), Param: math.NaN(), Func: f}, nil
	}

	if _, ok := ParamRegistry[name]; !ok {
		if Known(name) {
			return Metric{}, fmt.Errorf("%w: %q takes no parameter", ErrBadParam, name)
		}
		return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}

	if strings.EqualFold(spec.Param, MedianParam) {
		if name != "gaussian" {
			return Metric{}, fmt.Errorf("%w: %q only applies to gaussian", ErrBadParam, MedianParam)
		}
		return newParam(name, MedianBandwidth(data))
	}

	p, err := strconv.ParseFloat(spec.Param, 64)
	if err != nil {
		return Metric{}, fmt.Errorf("%w: %q: %v", ErrBadParam, spec.Param, err)
	}
	return newParam(name, p)
}

func newParam(name string, p float64) (Metric, error) {
	f, err := ParamRegistry[name](p)
	if err != nil {
		return Metric{}, fmt.Errorf("%s(%g): %w", name, p, err)
	}
	return Metric{Name: name, Kind: KindOf(name), Param: p, Func: f}, nil
}

// MedianBandwidth returns the median pairwise Euclidean distance between the
// complete rows of data. A zero median falls back to the largest distance,
// and to 1 when every complete row is identical.
func MedianBandwidth(data *mat.Dense) float64 {
	if data == nil {
		return 1
	}
	r, _ := data.Dims()
	rows := make([][]float64, 0, r)
	for i := range r {
		row := data.RawRowView(i)
		if complete(row) {
			rows = append(rows, row)
		}
	}

	dists := make([]float64, 0, len(rows)*(len(rows)-1)/2)
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			dists = append(dists, math.Sqrt(sqdiff(rows[i], rows[j])))
		}
	}
	if len(dists) == 0 {
		return 1
	}
	sort.Float64s(dists)
	med := stat.Quantile(0.5, stat.Empirical, dists, nil)
	if med > 0 {
		return med
	}
	if last := dists[len(dists)-1]; last > 0 {
		return last
	}
	return 1
}

func complete(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

func formatParam(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
