package sample

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Gather returns the rows of data listed in rows as a new matrix, or nil
// when rows is empty.
func Gather(data *mat.Dense, rows RowSet) *mat.Dense {
	if len(rows) == 0 {
		return nil
	}
	_, c := data.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for k, i := range rows {
		out.SetRow(k, data.RawRowView(i))
	}
	return out
}

// Whiten centres data and multiplies it by S^{-1/2}, where S is the sample
// covariance of its columns, so that distances computed on the result are
// invariant under affine transformations of the original columns.
// Directions with (numerically) zero variance are dropped.
func Whiten(data *mat.Dense) *mat.Dense {
	r, c := data.Dims()
	out := mat.NewDense(r, c, nil)
	if r < 2 {
		return out
	}

	centred := mat.NewDense(r, c, nil)
	for j := range c {
		col := mat.Col(nil, j, data)
		mu := stat.Mean(col, nil)
		for i := range col {
			col[i] -= mu
		}
		centred.SetCol(j, col)
	}

	if c == 1 {
		sd := stat.StdDev(mat.Col(nil, 0, data), nil)
		if sd > 0 {
			out.Scale(1/sd, centred)
		}
		return out
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	var eig mat.EigenSym
	if !eig.Factorize(&cov, true) {
		out.Copy(centred)
		return out
	}
	values := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	maxVal := 0.0
	for _, v := range values {
		maxVal = math.Max(maxVal, v)
	}
	tol := 1e-12 * maxVal
	scale := make([]float64, c)
	for k, v := range values {
		if v > tol {
			scale[k] = 1 / math.Sqrt(v)
		}
	}

	// S^{-1/2} = V diag(scale) V^T
	var scaled mat.Dense
	scaled.Apply(func(_, j int, v float64) float64 { return v * scale[j] }, &vecs)
	var invRoot mat.Dense
	invRoot.Mul(&scaled, vecs.T())

	out.Mul(centred, &invRoot)
	return out
}
