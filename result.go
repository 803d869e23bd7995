package dcor

import (
	"fmt"
	"math"

	"github.com/nozzle/dcor/adjust"
	"github.com/nozzle/dcor/corr"
	"github.com/nozzle/dcor/estimate"
	"github.com/nozzle/dcor/sample"
	"github.com/nozzle/dcor/summary"
	"gonum.org/v1/gonum/mat"
)

// Result holds the computed matrices and the settings that produced them.
// Matrix cells are NaN where a value could not be computed. Rows index the
// groups of x and columns the groups of y (or of x in single-sample mode).
type Result struct {
	DCov      *mat.Dense // nil unless Config.CalcDCov
	DCor      *mat.Dense // nil unless Config.CalcDCor
	PValue    *mat.Dense // nil when Test is "none"
	AdjPValue *mat.Dense // nil when Test is "none"

	// Corr and CorrPValue are column-by-column, when requested.
	Corr       *mat.Dense
	CorrPValue *mat.Dense

	N         int // rows after complete.obs filtering
	B         int
	Test      string
	BiasCorr  bool
	Affine    bool
	CalcCor   string
	Use       string
	Algorithm string // resolved
	AdjustP   string

	// GroupsX and GroupsY are the column indices of every group.
	GroupsX, GroupsY [][]int
	LabelsX, LabelsY []string
	// SizesX and SizesY map each group label to its column count.
	SizesX, SizesY map[string]int
	// MetricsX and MetricsY are the resolved metric of every group.
	MetricsX, MetricsY []string
	// ColumnsX and ColumnsY name the rows and columns of Corr.
	ColumnsX, ColumnsY []string

	Config   Config
	Warnings []string

	// X and Y are the data used, when Config.ReturnData is set.
	X, Y *sample.Matrix

	single bool
}

// SingleSample reports whether the result compares x with itself.
func (r *Result) SingleSample() bool {
	return r.single
}

func nanDense(r, c int) *mat.Dense {
	d := mat.NewDense(r, c, nil)
	raw := d.RawMatrix()
	for i := range raw.Data {
		raw.Data[i] = math.NaN()
	}
	return d
}

func (c *computation) assemble(results []pairResult) *Result {
	test := c.tester.Name()
	res := &Result{
		N:         c.n,
		B:         c.cfg.B,
		Test:      test,
		BiasCorr:  c.cfg.BiasCorr,
		Affine:    c.cfg.Affine,
		CalcCor:   c.cfg.CalcCor,
		Use:       c.use.String(),
		Algorithm: c.alg.Name(),
		Config:    c.cfg,
		single:    c.single,
	}
	res.GroupsX, res.LabelsX, res.MetricsX, res.SizesX = describe(c.gx)
	res.GroupsY, res.LabelsY, res.MetricsY, res.SizesY = describe(c.gy)

	rows, cols := len(c.gx), len(c.gy)
	dcov := nanDense(rows, cols)
	dcor := nanDense(rows, cols)
	var pval *mat.Dense
	if test != "none" {
		pval = nanDense(rows, cols)
	}

	for k, p := range c.pairs {
		r := results[k]
		set(dcov, p, r.dcov, c.single)
		set(dcor, p, r.dcor, c.single)
		if pval != nil {
			set(pval, p, r.p, c.single)
		}
	}

	if c.single {
		for i, st := range c.gx {
			if st.skipped {
				continue
			}
			dcov.Set(i, i, dvar(c.est, st.sum))
			dcor.Set(i, i, 1)
			if pval != nil {
				pval.Set(i, i, 0)
			}
		}
	}

	if c.cfg.CalcDCov {
		res.DCov = dcov
	}
	if c.cfg.CalcDCor {
		res.DCor = dcor
	}
	if pval != nil {
		res.PValue = pval
		res.AdjPValue, res.AdjustP = c.adjust(pval)
	}
	return res
}

func set(m *mat.Dense, p pairIndex, v float64, symmetric bool) {
	m.Set(p.i, p.j, v)
	if symmetric {
		m.Set(p.j, p.i, v)
	}
}

func describe(states []*groupState) (groups [][]int, labels, metrics []string, sizes map[string]int) {
	parts := make([]sample.Group, 0, len(states))
	for _, st := range states {
		parts = append(parts, sample.Group{Label: st.group.Label, Cols: st.cols})
		groups = append(groups, st.cols)
		labels = append(labels, st.group.Label)
		m := st.group.Metric
		if st.sum != nil {
			m = st.sum.Metric()
		}
		metrics = append(metrics, m.String())
	}
	return groups, labels, metrics, sample.Sizes(parts)
}

// adjust corrects the off-diagonal p-values; in single-sample mode only the
// upper triangle counts as tests and the result is mirrored.
func (c *computation) adjust(p *mat.Dense) (*mat.Dense, string) {
	out := mat.DenseCopyOf(p)
	method, err := adjust.ParseMethod(c.cfg.AdjustP)
	if err != nil {
		c.warn(fmt.Sprintf("unknown p-value adjustment %q; p-values left unadjusted", c.cfg.AdjustP))
		return out, c.cfg.AdjustP
	}

	rows, cols := p.Dims()
	var vals []float64
	var cells []pairIndex
	for i := range rows {
		for j := range cols {
			if c.single && j <= i {
				continue
			}
			if v := p.At(i, j); !math.IsNaN(v) {
				vals = append(vals, v)
				cells = append(cells, pairIndex{i, j})
			}
		}
	}
	for k, v := range adjust.Adjust(vals, method) {
		set(out, cells[k], v, c.single)
	}
	return out, string(method)
}

// correlate adds the column correlation matrix and, when requested, its
// p-values.
func (c *computation) correlate(res *Result, method corr.Method, x, y *sample.Matrix) {
	if y == nil {
		y = x
	}
	columns := func(m *sample.Matrix) [][]float64 {
		out := make([][]float64, m.Cols())
		for j := range out {
			out[j] = m.Column(j).Values
		}
		return out
	}
	r, nobs := corr.Matrix(method, columns(x), columns(y), c.use == sample.PairwiseCompleteObs, c.workers)
	// Level codes of categorical columns carry no order.
	rows, cols := r.Dims()
	for i := range rows {
		for j := range cols {
			if x.Column(i).IsCategorical() || y.Column(j).IsCategorical() {
				r.Set(i, j, math.NaN())
				nobs.Set(i, j, 0)
			}
		}
	}
	res.Corr = r
	res.ColumnsX, res.ColumnsY = x.Names(), y.Names()
	if !c.cfg.CalcPValCor {
		return
	}
	p, err := corr.PValues(method, r, nobs)
	if err != nil {
		c.warn(fmt.Sprintf("p-values are not available for %s correlation", method))
		return
	}
	res.CorrPValue = p
}

// dvar returns the distance variance (root of the self dCov²) of s.
func dvar(est estimate.Estimator, s *summary.Summary) float64 {
	return est.Root(est.DCov2(summary.Self(s)))
}
