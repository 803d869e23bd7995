// Package sample holds the observation matrices, their column groups and
// the row sets that decide which observations enter a computation.
package sample

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Column is one variable of a sample. Missing entries are NaN.
// Categorical columns carry their level names and store level codes.
type Column struct {
	Name   string
	Values []float64
	Levels []string
}

// Numeric returns a numeric column. NaN marks a missing entry.
func Numeric(name string, values []float64) Column {
	return Column{Name: name, Values: values}
}

// Categorical returns a categorical column coded by sorted level name.
// Empty strings and "NA" mark missing entries.
func Categorical(name string, values []string) Column {
	seen := make(map[string]bool)
	for _, v := range values {
		if !IsNA(v) {
			seen[v] = true
		}
	}
	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)

	code := make(map[string]float64, len(levels))
	for i, l := range levels {
		code[l] = float64(i)
	}
	codes := make([]float64, len(values))
	for i, v := range values {
		if IsNA(v) {
			codes[i] = math.NaN()
			continue
		}
		codes[i] = code[v]
	}
	return Column{Name: name, Values: codes, Levels: levels}
}

// IsNA reports whether a raw cell denotes a missing value.
func IsNA(s string) bool {
	return s == "" || s == "NA" || s == "NaN"
}

// IsCategorical reports whether the column holds level codes.
func (c Column) IsCategorical() bool {
	return c.Levels != nil
}

// Matrix is an n-row sample made of numeric or categorical columns.
type Matrix struct {
	rows int
	cols []Column
}

// NewMatrix builds a matrix from columns of equal length.
func NewMatrix(cols ...Column) (*Matrix, error) {
	if len(cols) == 0 || len(cols[0].Values) == 0 {
		return nil, ErrEmpty
	}
	cols = append([]Column(nil), cols...)
	n := len(cols[0].Values)
	for j, c := range cols {
		if len(c.Values) != n {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", ErrRagged, j, len(c.Values), n)
		}
		if c.Name == "" {
			cols[j].Name = strconv.Itoa(j + 1)
		}
	}
	return &Matrix{rows: n, cols: cols}, nil
}

// FromRows builds a numeric matrix from row-major data.
func FromRows(data [][]float64) (*Matrix, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, ErrEmpty
	}
	p := len(data[0])
	cols := make([]Column, p)
	for j := range cols {
		cols[j] = Column{Name: strconv.Itoa(j + 1), Values: make([]float64, len(data))}
	}
	for i, row := range data {
		if len(row) != p {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRagged, i, len(row), p)
		}
		for j, v := range row {
			cols[j].Values[i] = v
		}
	}
	return &Matrix{rows: len(data), cols: cols}, nil
}

// Rows returns the number of observations.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return len(m.cols) }

// Column returns column j.
func (m *Matrix) Column(j int) Column { return m.cols[j] }

// Names returns the column names.
func (m *Matrix) Names() []string {
	names := make([]string, len(m.cols))
	for j, c := range m.cols {
		names[j] = c.Name
	}
	return names
}

// Dense returns the n×len(cols) matrix of the selected columns.
func (m *Matrix) Dense(cols []int) *mat.Dense {
	d := mat.NewDense(m.rows, len(cols), nil)
	for k, j := range cols {
		d.SetCol(k, m.cols[j].Values)
	}
	return d
}

// Subset returns a matrix restricted to rows, in RowSet order.
func (m *Matrix) Subset(rows RowSet) *Matrix {
	cols := make([]Column, len(m.cols))
	for j, c := range m.cols {
		vals := make([]float64, len(rows))
		for k, i := range rows {
			vals[k] = c.Values[i]
		}
		cols[j] = Column{Name: c.Name, Values: vals, Levels: c.Levels}
	}
	return &Matrix{rows: len(rows), cols: cols}
}

// CompleteRows returns the rows without a missing entry in any of cols.
func (m *Matrix) CompleteRows(cols []int) RowSet {
	rows := make(RowSet, 0, m.rows)
	for i := range m.rows {
		ok := true
		for _, j := range cols {
			if math.IsNaN(m.cols[j].Values[i]) {
				ok = false
				break
			}
		}
		if ok {
			rows = append(rows, i)
		}
	}
	return rows
}

// AllCols returns the indices of every column.
func (m *Matrix) AllCols() []int {
	idx := make([]int, len(m.cols))
	for j := range idx {
		idx[j] = j
	}
	return idx
}
