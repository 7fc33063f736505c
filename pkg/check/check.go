package check

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/wildfunctions/exprequiv/pkg/cases"
	"github.com/wildfunctions/exprequiv/pkg/expr"
	"github.com/wildfunctions/exprequiv/pkg/numeric"
	"github.com/wildfunctions/exprequiv/pkg/pool"
)

// Checker audits equivalence cases and random expressions.
type Checker struct {
	cfg  Config
	cmp  numeric.Comparator
	pool pool.Pool
	log  *zap.Logger
}

// New creates a checker from the given config. A nil logger discards all
// output.
func New(cfg Config, logger *zap.Logger) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := pool.Get(cfg.Pool)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		cfg:  cfg,
		cmp:  numeric.Comparator{Epsilon: cfg.Epsilon},
		pool: p,
		log:  logger,
	}, nil
}

// Run checks every case and returns the report. Cases still queued when ctx
// is done are left out of the report, which is then marked Canceled.
func (c *Checker) Run(ctx context.Context, cs []cases.Case) Report {
	results := make([]CaseResult, len(cs))
	ran := make([]bool, len(cs))

	c.log.Info("checking cases", zap.Int("cases", len(cs)), zap.Int("workers", c.cfg.Workers))
	parallel(ctx, c.cfg.Workers, len(cs), func(i int) {
		results[i] = c.checkCase(cs[i])
		ran[i] = true
	})

	report := Report{Config: c.cfg}
	for i, r := range results {
		if !ran[i] {
			continue
		}
		report.Results = append(report.Results, r)
		if r.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	if len(report.Results) < len(cs) {
		report.Canceled = true
		c.log.Warn("check canceled", zap.Int("checked", len(report.Results)), zap.Int("cases", len(cs)))
	}
	return report
}

func (c *Checker) checkCase(tc cases.Case) CaseResult {
	r := CaseResult{
		Name:   tc.Name,
		Want:   tc.Want,
		A:      tc.A.String(),
		B:      tc.B.String(),
		LaTeXA: tc.A.LaTeX(),
		LaTeXB: tc.B.LaTeX(),
	}

	audit := func(side string, err error) {
		switch {
		case err == nil:
		case errors.Is(err, expr.ErrAlreadyNormalized):
			c.log.Debug("non-mutation audit skipped", zap.String("case", tc.Name), zap.String("side", side))
		default:
			r.Problems = append(r.Problems, side+": "+err.Error())
		}
	}
	audit("a", expr.AuditNonMutation(tc.A))
	if tc.B != tc.A {
		audit("b", expr.AuditNonMutation(tc.B))
	}
	audit("a", expr.AuditIdempotent(tc.A))
	audit("b", expr.AuditIdempotent(tc.B))
	audit("a", expr.AuditOriginals(tc.A, c.cmp))
	audit("b", expr.AuditOriginals(tc.B, c.cmp))

	nfA, nfB := expr.NormalForm(tc.A), expr.NormalForm(tc.B)
	r.NormalA, r.NormalB = nfA.String(), nfB.String()
	r.NormalLaTeXA, r.NormalLaTeXB = nfA.LaTeX(), nfB.LaTeX()

	r.Equivalent = expr.Equivalent(tc.A, tc.B)
	if !r.Equivalent && tc.Want == cases.Equivalent {
		r.Diff = expr.Explain(tc.A, tc.B)
	}

	va, okA := tc.A.EvalF64()
	vb, okB := tc.B.EvalF64()
	if okA {
		r.ValueA = &va
	}
	if okB {
		r.ValueB = &vb
	}
	r.NumericEqual = okA && okB && c.cmp.Equal(va, vb)
	if r.Equivalent && okA && okB && !r.NumericEqual {
		c.log.Warn("equivalent expressions evaluate differently",
			zap.String("case", tc.Name), zap.Float64("a", va), zap.Float64("b", vb))
	}

	r.Passed = tc.Holds(r.Equivalent) && len(r.Problems) == 0
	if r.Passed {
		c.log.Debug("case passed", zap.String("case", tc.Name), zap.String("normal", r.NormalA))
	} else {
		c.log.Warn("case failed",
			zap.String("case", tc.Name),
			zap.Stringer("want", tc.Want),
			zap.String("normal_a", r.NormalA),
			zap.String("normal_b", r.NormalB),
			zap.Strings("problems", r.Problems))
	}
	return r
}

// Fuzz generates Samples random expressions from the configured pool and
// audits each one. The trees are drawn up front from a single seeded source,
// so a seed reproduces the same run regardless of the worker count.
func (c *Checker) Fuzz(ctx context.Context) FuzzReport {
	seed := c.cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	trees := make([]expr.ExprNode, c.cfg.Samples)
	for i := range trees {
		trees[i] = c.pool.RandomTree(rng, c.cfg.MaxDepth)
	}

	failures := make([][]FuzzFailure, len(trees))
	ran := make([]bool, len(trees))
	c.log.Info("fuzzing",
		zap.String("pool", c.pool.Name()), zap.Int("samples", len(trees)), zap.Int64("seed", seed))
	parallel(ctx, c.cfg.Workers, len(trees), func(i int) {
		failures[i] = c.fuzzTree(trees[i])
		ran[i] = true
	})

	report := FuzzReport{Config: c.cfg, Seed: seed}
	for i, fs := range failures {
		if !ran[i] {
			continue
		}
		report.Checked++
		report.Failures = append(report.Failures, fs...)
	}
	report.Canceled = report.Checked < len(trees)
	return report
}

func (c *Checker) fuzzTree(tree expr.ExprNode) []FuzzFailure {
	var out []FuzzFailure
	fail := func(property, detail string) {
		out = append(out, FuzzFailure{
			Tree:     tree.String(),
			Normal:   expr.NormalForm(tree).String(),
			Property: property,
			Detail:   detail,
		})
		c.log.Warn("property violated",
			zap.String("property", property), zap.String("tree", tree.String()), zap.String("detail", detail))
	}

	if err := expr.AuditNonMutation(tree); err != nil {
		fail("non-mutation", err.Error())
	}
	if err := expr.AuditIdempotent(tree); err != nil {
		fail("idempotence", err.Error())
	}
	if err := expr.AuditOriginals(tree, c.cmp); err != nil {
		fail("originals", err.Error())
	}
	if _, err := expr.NormalizeFresh(expr.NormalForm(tree)); !errors.Is(err, expr.ErrNormalForm) {
		fail("normal-form marking", "renormalizing a normal form was not rejected")
	}
	if !expr.Equivalent(tree, tree) {
		fail("reflexivity", "expression is not equivalent to itself")
	}

	for _, v := range []struct {
		property string
		variant  expr.ExprNode
	}{
		{"mirror", pool.Mirror(tree)},
		{"regroup", pool.Regroup(tree)},
	} {
		ab, ba := expr.Equivalent(tree, v.variant), expr.Equivalent(v.variant, tree)
		if ab != ba {
			fail("symmetry", v.variant.String())
		}
		if !ab {
			fail(v.property, v.variant.String()+" normalizes to "+expr.NormalForm(v.variant).String())
		}
	}
	return out
}

// parallel calls fn for each index in [0, n) on up to workers goroutines.
// Once ctx is done no further indices are handed out.
func parallel(ctx context.Context, workers, n int, fn func(i int)) {
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

dispatch:
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
}
