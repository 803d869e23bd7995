// Package dcor computes distance covariance and distance correlation
// matrices between groups of variables, within one sample or across two
// samples of the same rows, together with independence tests per pair of
// groups.
//
// Basic usage:
//
//	x, _ := sample.FromRows(data)
//	res, err := dcor.Compute(x, nil, dcor.DefaultConfig())
//	// res.DCor is the symmetric group-by-group distance correlation matrix.
package dcor

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/nozzle/dcor/corr"
	"github.com/nozzle/dcor/distance"
	"github.com/nozzle/dcor/estimate"
	"github.com/nozzle/dcor/internal/logging"
	"github.com/nozzle/dcor/internal/parallel"
	"github.com/nozzle/dcor/sample"
	"github.com/nozzle/dcor/signif"
	"github.com/nozzle/dcor/summary"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Compute runs ComputeContext with a background context.
func Compute(x, y *sample.Matrix, cfg Config) (*Result, error) {
	return ComputeContext(context.Background(), x, y, cfg)
}

// ComputeContext computes the matrices configured by cfg. With y nil the
// groups of x are compared with each other and every matrix is symmetric.
// Configuration errors are returned before any work is done; degenerate
// groups or pairs yield NaN cells.
func ComputeContext(ctx context.Context, x, y *sample.Matrix, cfg Config) (*Result, error) {
	if x == nil || x.Cols() == 0 {
		return nil, fmt.Errorf("dcor: x: %w", ErrEmpty)
	}
	if y != nil && y.Rows() != x.Rows() {
		return nil, fmt.Errorf("%w: %d and %d", ErrRowMismatch, x.Rows(), y.Rows())
	}
	use, err := sample.ParseUse(cfg.Use)
	if err != nil {
		return nil, err
	}
	corrMethod, err := corr.ParseMethod(cfg.CalcCor)
	if err != nil {
		return nil, err
	}

	c := &computation{
		cfg:    cfg,
		use:    use,
		single: y == nil,
		log:    cfg.Logger,
	}
	if c.log == nil {
		c.log = logging.New("dcor")
	}

	if use == sample.CompleteObs {
		rows := sample.CompleteAcross(x, y)
		if len(rows) < x.Rows() {
			c.log.Debug("dropped incomplete rows", "kept", len(rows), "rows", x.Rows())
		}
		x = x.Subset(rows)
		if y != nil {
			y = y.Subset(rows)
		}
	}
	c.n = x.Rows()

	if c.gx, err = c.buildGroups(x, cfg.GroupX, cfg.MetricX); err != nil {
		return nil, fmt.Errorf("dcor: x: %w", err)
	}
	c.gy = c.gx
	if !c.single {
		if c.gy, err = c.buildGroups(y, cfg.GroupY, cfg.MetricY); err != nil {
			return nil, fmt.Errorf("dcor: y: %w", err)
		}
	}

	groups := make([]summary.Group, 0, len(c.gx)+len(c.gy))
	for _, g := range c.states() {
		groups = append(groups, g.group)
	}
	alg, warnings, err := summary.Choose(cfg.Algorithm, c.n, groups, isBB3(cfg.Test))
	if err != nil {
		return nil, err
	}
	c.alg = alg
	for _, w := range warnings {
		c.warn(w)
	}

	c.pairs = c.makePairs()
	c.workers = parallel.Workers(cfg.NumWorkers)
	permWorkers := 1
	if len(c.pairs) == 1 {
		permWorkers = c.workers
	}
	c.tester, err = signif.New(cfg.Test, signif.Options{B: cfg.B, N: c.n, Seed: cfg.Seed, Workers: permWorkers})
	if err != nil {
		return nil, err
	}
	c.est = estimate.New(cfg.BiasCorr)

	c.log.Debug("computing distance statistics",
		"n", c.n,
		"groups_x", len(c.gx),
		"groups_y", len(c.gy),
		"pairs", len(c.pairs),
		"algorithm", alg.Name(),
		"estimator", c.est.Name(),
		"test", c.tester.Name())

	c.summarize()
	results, err := c.run(ctx)
	if err != nil {
		return nil, err
	}

	res := c.assemble(results)
	if corrMethod != corr.None {
		c.correlate(res, corrMethod, x, y)
	}
	if cfg.ReturnData {
		res.X, res.Y = x, y
	}
	res.Warnings = c.warnings
	return res, nil
}

// groupState is one group with the rows it is complete on and its cached
// summary.
type groupState struct {
	group   summary.Group
	cols    []int
	rows    sample.RowSet
	skipped bool
	sum     *summary.Summary
}

type pairIndex struct{ i, j int }

type pairResult struct {
	dcov, dcor, p float64
	n             int
}

type computation struct {
	cfg     Config
	use     sample.Use
	single  bool
	n       int
	workers int
	log     *slog.Logger

	gx, gy []*groupState
	pairs  []pairIndex

	alg    summary.Algorithm
	est    estimate.Estimator
	tester signif.Tester

	warnings []string
}

func (c *computation) warn(msg string) {
	c.warnings = append(c.warnings, msg)
	c.log.Warn(msg)
}

func (c *computation) states() []*groupState {
	if c.single {
		return c.gx
	}
	return append(append([]*groupState(nil), c.gx...), c.gy...)
}

func isBB3(test string) bool {
	return strings.EqualFold(strings.TrimSpace(test), "bb3")
}

// buildGroups partitions m, resolves one metric per group and marks the
// groups that cannot be used under the missing-data mode.
func (c *computation) buildGroups(m *sample.Matrix, labels, metrics []string) ([]*groupState, error) {
	parts, err := sample.Partition(labels, m.Names())
	if err != nil {
		return nil, err
	}
	specs, err := distance.ResolveSpecs(metrics, len(parts))
	if err != nil {
		return nil, err
	}

	out := make([]*groupState, len(parts))
	for k, p := range parts {
		spec := specs[k]
		if c.cfg.FCDiscrete && len(p.Cols) == 1 && m.Column(p.Cols[0]).IsCategorical() {
			spec = distance.Spec{Name: "discrete"}
		}
		var data *mat.Dense
		if m.Rows() > 0 {
			data = m.Dense(p.Cols)
		}
		metric, err := distance.New(spec, data)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", p.Label, err)
		}

		st := &groupState{
			group: summary.Group{Label: p.Label, Data: data, Metric: metric, Spec: spec, Affine: c.cfg.Affine},
			cols:  p.Cols,
			rows:  m.CompleteRows(p.Cols),
		}
		switch {
		case m.Rows() == 0:
			st.skipped = true
		case c.use == sample.Everything && len(st.rows) < m.Rows():
			st.skipped = true
			c.log.Debug("group has missing values; skipped", "group", p.Label)
		}
		out[k] = st
	}
	return out, nil
}

func (c *computation) makePairs() []pairIndex {
	var pairs []pairIndex
	for i := range c.gx {
		if c.single {
			for j := i + 1; j < len(c.gx); j++ {
				pairs = append(pairs, pairIndex{i, j})
			}
			continue
		}
		for j := range c.gy {
			pairs = append(pairs, pairIndex{i, j})
		}
	}
	return pairs
}

// summarize builds the cached summary of every usable group on its own
// complete rows.
func (c *computation) summarize() {
	states := c.states()
	sums := parallel.ParallelMap(0, len(states), c.workers, func(k int) *summary.Summary {
		st := states[k]
		if st.skipped {
			return nil
		}
		return c.alg.Summarize(st.group, st.rows)
	})
	for k, s := range sums {
		states[k].sum = s
	}
}

// run computes every pair on a bounded worker pool. Each pair writes only
// its own slot.
func (c *computation) run(ctx context.Context) ([]pairResult, error) {
	results := make([]pairResult, len(c.pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for k, p := range c.pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[k] = c.pair(k, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *computation) pair(k int, p pairIndex) pairResult {
	a, b := c.gx[p.i], c.gy[p.j]
	r := pairResult{dcov: math.NaN(), dcor: math.NaN(), p: math.NaN()}
	if a.skipped || b.skipped {
		return r
	}

	sa, sb := a.sum, b.sum
	if !sa.Rows.Equal(sb.Rows) {
		rows := a.rows.Intersect(b.rows)
		if !rows.Equal(sa.Rows) {
			sa = c.alg.Summarize(a.group, rows)
		}
		if !rows.Equal(sb.Rows) {
			sb = c.alg.Summarize(b.group, rows)
		}
	}

	terms := summary.Combine(c.alg, sa, sb)
	dc2 := c.est.DCov2(terms.Terms)
	r.n = terms.N
	r.dcov = c.est.Root(dc2)
	r.dcor = estimate.DCor(r.dcov, c.est.DCov2(summary.Self(sa)), c.est.DCov2(summary.Self(sb)))
	r.p = c.tester.PValue(signif.Input{
		Terms:     terms,
		Algorithm: c.alg,
		Estimator: c.est,
		Observed:  dc2,
		Pair:      k,
	})
	return r
}
