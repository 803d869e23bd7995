// Package adjust corrects p-values for multiple comparisons.
package adjust

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ErrUnknownMethod is returned for an unrecognised adjustment method.
var ErrUnknownMethod = errors.New("adjust: unknown method")

// Method is a p-value adjustment procedure.
type Method string

const (
	None       Method = "none"
	Holm       Method = "holm"
	Hochberg   Method = "hochberg"
	Hommel     Method = "hommel"
	Bonferroni Method = "bonferroni"
	BH         Method = "BH"
	BY         Method = "BY"
)

// Methods lists every accepted method; "fdr" is an alias for BH.
var Methods = []Method{Holm, Hochberg, Hommel, Bonferroni, BH, BY, None}

// ParseMethod parses a method name.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "holm":
		return Holm, nil
	case "hochberg":
		return Hochberg, nil
	case "hommel":
		return Hommel, nil
	case "bonferroni":
		return Bonferroni, nil
	case "bh", "fdr":
		return BH, nil
	case "by":
		return BY, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Adjust returns the adjusted p-values. NaN entries are passed through and
// do not count towards the number of tests.
func Adjust(p []float64, m Method) []float64 {
	out := slices.Clone(p)
	var idx []int
	var vals []float64
	for i, v := range p {
		if !math.IsNaN(v) {
			idx = append(idx, i)
			vals = append(vals, v)
		}
	}
	n := len(vals)
	if n <= 1 {
		return out
	}
	if m == Hommel && n == 2 {
		m = Hochberg
	}

	var adj []float64
	switch m {
	case Bonferroni:
		adj = make([]float64, n)
		for i, v := range vals {
			adj[i] = math.Min(1, float64(n)*v)
		}
	case Holm:
		adj = stepDown(vals)
	case Hochberg:
		adj = stepUp(vals, func(i int) float64 { return float64(n - i) })
	case BH:
		adj = stepUp(vals, func(i int) float64 { return float64(n) / float64(i+1) })
	case BY:
		var q float64
		for k := 1; k <= n; k++ {
			q += 1 / float64(k)
		}
		adj = stepUp(vals, func(i int) float64 { return q * float64(n) / float64(i+1) })
	case Hommel:
		adj = hommel(vals)
	default:
		adj = vals
	}
	for k, i := range idx {
		out[i] = adj[k]
	}
	return out
}

// order returns the indices sorting p ascending, ties in input order.
func order(p []float64) []int {
	o := make([]int, len(p))
	for i := range o {
		o[i] = i
	}
	slices.SortStableFunc(o, func(a, b int) int {
		switch {
		case p[a] < p[b]:
			return -1
		case p[a] > p[b]:
			return 1
		}
		return 0
	})
	return o
}

// stepDown is Holm: running max of (n-i)·p_(i) over ascending p.
func stepDown(p []float64) []float64 {
	n := len(p)
	out := make([]float64, n)
	running := 0.0
	for i, k := range order(p) {
		running = math.Max(running, float64(n-i)*p[k])
		out[k] = math.Min(1, running)
	}
	return out
}

// stepUp takes the running min of factor(i)·p_(i) from the largest p down,
// where i is the 0-based ascending rank.
func stepUp(p []float64, factor func(i int) float64) []float64 {
	n := len(p)
	o := order(p)
	out := make([]float64, n)
	running := math.Inf(1)
	for i := n - 1; i >= 0; i-- {
		k := o[i]
		running = math.Min(running, factor(i)*p[k])
		out[k] = math.Min(1, running)
	}
	return out
}

func hommel(p []float64) []float64 {
	n := len(p)
	o := order(p)
	s := make([]float64, n)
	for i, k := range o {
		s[i] = p[k]
	}

	first := math.Inf(1)
	for i, v := range s {
		first = math.Min(first, float64(n)*v/float64(i+1))
	}
	pa := make([]float64, n)
	q := make([]float64, n)
	for i := range pa {
		pa[i] = first
		q[i] = first
	}

	for m := n - 1; m >= 2; m-- {
		fm := float64(m)
		q1 := math.Inf(1)
		for k := 0; k < m-1; k++ {
			q1 = math.Min(q1, fm*s[n-m+1+k]/float64(k+2))
		}
		for i := 0; i <= n-m; i++ {
			q[i] = math.Min(fm*s[i], q1)
		}
		for i := n - m + 1; i < n; i++ {
			q[i] = q[n-m]
		}
		for i := range pa {
			pa[i] = math.Max(pa[i], q[i])
		}
	}

	out := make([]float64, n)
	for i, k := range o {
		out[k] = math.Max(pa[i], s[i])
	}
	return out
}
