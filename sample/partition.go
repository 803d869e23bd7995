package sample

import (
	"fmt"
	"sort"
	"strconv"
)

// Group is a named subset of a matrix's columns treated as one
// multivariate variable.
type Group struct {
	Label string
	Cols  []int
}

// Partition splits p columns into groups by label. With no labels every
// column is its own group, in column order, labelled by names. Otherwise
// there is one group per distinct label in sorted-label order: numeric when
// every label is a number, lexicographic otherwise.
func Partition(labels []string, names []string) ([]Group, error) {
	p := len(names)
	if len(labels) == 0 {
		groups := make([]Group, p)
		for j := range groups {
			groups[j] = Group{Label: names[j], Cols: []int{j}}
		}
		return groups, nil
	}
	if len(labels) != p {
		return nil, fmt.Errorf("%w: %d labels for %d columns", ErrGroupLength, len(labels), p)
	}

	byLabel := make(map[string][]int)
	var order []string
	for j, l := range labels {
		if _, ok := byLabel[l]; !ok {
			order = append(order, l)
		}
		byLabel[l] = append(byLabel[l], j)
	}
	sortLabels(order)

	groups := make([]Group, len(order))
	for g, l := range order {
		groups[g] = Group{Label: l, Cols: byLabel[l]}
	}
	return groups, nil
}

// Sizes maps each group label to its column count.
func Sizes(groups []Group) map[string]int {
	out := make(map[string]int, len(groups))
	for _, g := range groups {
		out[g.Label] = len(g.Cols)
	}
	return out
}

func sortLabels(labels []string) {
	nums := make([]float64, len(labels))
	numeric := true
	for i, l := range labels {
		v, err := strconv.ParseFloat(l, 64)
		if err != nil {
			numeric = false
			break
		}
		nums[i] = v
	}
	if !numeric {
		sort.Strings(labels)
		return
	}
	sort.Sort(byValue{labels: labels, nums: nums})
}

type byValue struct {
	labels []string
	nums   []float64
}

func (b byValue) Len() int           { return len(b.labels) }
func (b byValue) Less(i, j int) bool { return b.nums[i] < b.nums[j] }
func (b byValue) Swap(i, j int) {
	b.labels[i], b.labels[j] = b.labels[j], b.labels[i]
	b.nums[i], b.nums[j] = b.nums[j], b.nums[i]
}
