package check

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wildfunctions/exprequiv/pkg/cases"
	"github.com/wildfunctions/exprequiv/pkg/expr"
	"github.com/wildfunctions/exprequiv/pkg/pool"
)

func init() {
	color.NoColor = true
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Workers = 4
	cfg.Seed = 42
	cfg.Samples = 200
	return cfg
}

func newChecker(t *testing.T, cfg Config, logger *zap.Logger) *Checker {
	t.Helper()
	c, err := New(cfg, logger)
	require.NoError(t, err)
	return c
}

func allCases(t *testing.T) []cases.Case {
	t.Helper()
	var out []cases.Case
	for _, name := range cases.Names() {
		cs, err := cases.Get(name)
		require.NoError(t, err)
		out = append(out, cs...)
	}
	return out
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"epsilon", func(c *Config) { c.Epsilon = -1 }, "epsilon"},
		{"depth", func(c *Config) { c.MaxDepth = 0 }, "max depth"},
		{"samples", func(c *Config) { c.Samples = -1 }, "samples"},
		{"format", func(c *Config) { c.Format = "xml" }, "unknown format"},
		{"pool", func(c *Config) { c.Pool = "nonexistent" }, "unknown pool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNew_InvalidPool(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pool = "nonexistent"

	_, err := New(cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pool.ErrUnknownPool))
}

func TestRun_BuiltinSuites(t *testing.T) {
	cs := allCases(t)
	report := newChecker(t, testConfig(), nil).Run(context.Background(), cs)

	assert.False(t, report.Canceled)
	assert.Len(t, report.Results, len(cs))
	assert.Equal(t, len(cs), report.Passed)
	assert.Zero(t, report.Failed)

	for i, r := range report.Results {
		assert.Equal(t, cs[i].Name, r.Name, "results keep case order")
		assert.Empty(t, r.Problems, r.Name)
		assert.True(t, r.Passed, r.Name)
	}
}

func TestRun_CaseDetails(t *testing.T) {
	c := expr.Const
	cs := []cases.Case{{
		Name: "division inversion",
		A:    expr.Div(c(7), expr.Div(expr.Sub(c(9), c(8)), c(2))),
		B:    expr.Div(c(2), expr.Div(expr.Sub(c(9), c(8)), c(7))),
	}}
	report := newChecker(t, testConfig(), nil).Run(context.Background(), cs)
	require.Len(t, report.Results, 1)

	r := report.Results[0]
	assert.True(t, r.Passed)
	assert.True(t, r.Equivalent)
	assert.Equal(t, "(7 / ((9 - 8) / 2))", r.A)
	assert.Equal(t, "(((-1 * 2) * 7) / (8 - 9))", r.NormalA)
	assert.Equal(t, r.NormalA, r.NormalB)
	require.NotNil(t, r.ValueA)
	require.NotNil(t, r.ValueB)
	assert.InDelta(t, 14, *r.ValueA, 1e-12)
	assert.InDelta(t, 14, *r.ValueB, 1e-12)
	assert.True(t, r.NumericEqual)
	assert.Empty(t, r.Diff)
}

func TestRun_FailingCaseIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := expr.Const
	cs := []cases.Case{
		{Name: "wrong", A: expr.Add(c(1), c(2)), B: expr.Mul(c(1), c(2))},
		{Name: "right", A: expr.Add(c(1), c(2)), B: expr.Add(c(2), c(1))},
	}

	report := newChecker(t, testConfig(), zap.New(core)).Run(context.Background(), cs)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)

	wrong := report.Results[0]
	assert.False(t, wrong.Passed)
	assert.False(t, wrong.Equivalent)
	assert.NotEmpty(t, wrong.Diff)

	failed := logs.FilterMessage("case failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "wrong", failed[0].ContextMap()["case"])
}

func TestRun_DivisionByZero(t *testing.T) {
	c := expr.Const
	cs := []cases.Case{{
		Name: "zero denominator",
		A:    expr.Div(c(1), expr.Sub(c(2), c(2))),
		B:    expr.Div(c(1), expr.Add(c(2), expr.Mul(c(-1), c(2)))),
	}}
	report := newChecker(t, testConfig(), nil).Run(context.Background(), cs)
	r := report.Results[0]

	assert.True(t, r.Passed)
	assert.Nil(t, r.ValueA)
	assert.Nil(t, r.ValueB)
	assert.False(t, r.NumericEqual)
}

func TestRun_SharedAndNormalizedNodes(t *testing.T) {
	c := expr.Const
	same := expr.Sub(c(3), c(4))
	seen := expr.Mul(c(5), c(6))
	expr.NormalForm(seen)

	cs := []cases.Case{
		{Name: "reflexive", A: same, B: same},
		{Name: "normalized before", A: seen, B: expr.Mul(c(6), c(5))},
	}
	report := newChecker(t, testConfig(), nil).Run(context.Background(), cs)
	for _, r := range report.Results {
		assert.True(t, r.Passed, r.Name)
		assert.Empty(t, r.Problems, r.Name)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := newChecker(t, testConfig(), nil).Run(ctx, allCases(t))
	assert.True(t, report.Canceled)
	assert.Empty(t, report.Results)
}

func TestFuzz(t *testing.T) {
	for _, name := range pool.Names() {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Pool = name
			cfg.MaxDepth = 5
			cfg.Samples = 1000

			report := newChecker(t, cfg, nil).Fuzz(context.Background())
			assert.Equal(t, int64(42), report.Seed)
			assert.Equal(t, cfg.Samples, report.Checked)
			assert.False(t, report.Canceled)
			assert.Empty(t, report.Failures)
		})
	}
}

func TestFuzz_RandomSeedIsReported(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 0
	cfg.Samples = 10

	report := newChecker(t, cfg, nil).Fuzz(context.Background())
	assert.NotZero(t, report.Seed)
	assert.Equal(t, 10, report.Checked)
}

func TestFuzz_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := newChecker(t, testConfig(), nil).Fuzz(ctx)
	assert.True(t, report.Canceled)
	assert.Zero(t, report.Checked)
}

func TestParallel(t *testing.T) {
	var calls atomic.Int64
	seen := make([]int32, 100)
	parallel(context.Background(), 8, len(seen), func(i int) {
		calls.Add(1)
		atomic.AddInt32(&seen[i], 1)
	})

	assert.Equal(t, int64(100), calls.Load())
	for i, n := range seen {
		assert.Equal(t, int32(1), n, "index %d", i)
	}
}

func TestWriteText(t *testing.T) {
	cs, err := cases.Get("division")
	require.NoError(t, err)
	report := newChecker(t, testConfig(), nil).Run(context.Background(), cs)

	var buf bytes.Buffer
	WriteText(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "PASS double reciprocal (want equivalent)")
	assert.Contains(t, out, "a: (1 / (1 / 7)) => 7 = 7")
	assert.Contains(t, out, "Passed:    6")
	assert.NotContains(t, out, "FAIL")
}

func TestWriteFuzzText(t *testing.T) {
	cfg := testConfig()
	cfg.Samples = 20
	report := newChecker(t, cfg, nil).Fuzz(context.Background())

	var buf bytes.Buffer
	WriteFuzzText(&buf, report)
	assert.Contains(t, buf.String(), "Checked:   20/20")
	assert.Contains(t, buf.String(), "Seed:      42")
}

func TestWriteFuzzLaTeX(t *testing.T) {
	cfg := testConfig()
	cfg.Pool = "signs"
	report := FuzzReport{
		Config:  cfg,
		Seed:    42,
		Checked: 200,
		Failures: []FuzzFailure{{
			Tree:     "((1 - 1) * (1 - 2))",
			Normal:   "((-1 + 1) * (-1 + 2))",
			Property: "mirror",
			Detail:   "((1 - 2) * (1 - 1)) normalizes to (-1 * 0)",
		}},
	}

	var buf bytes.Buffer
	WriteFuzzLaTeX(&buf, report)
	out := buf.String()

	assert.Contains(t, out, `\begin{document}`)
	assert.Contains(t, out, "Pool: signs, seed: 42, depth: 4, checked: 200/200, failures: 1")
	assert.Contains(t, out, `\subsection*{mirror}`)
	assert.Contains(t, out, `\verb|((1 - 1) * (1 - 2))|`)
	assert.Contains(t, out, `\end{document}`)
}

func TestWriteJSON(t *testing.T) {
	cs, err := cases.Get("distinct")
	require.NoError(t, err)
	report := newChecker(t, testConfig(), nil).Run(context.Background(), cs)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, report))

	var decoded struct {
		Passed  int `json:"passed"`
		Results []struct {
			Name string `json:"name"`
			Want string `json:"want"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, len(cs), decoded.Passed)
	require.NotEmpty(t, decoded.Results)
	assert.Equal(t, "distinct", decoded.Results[0].Want)
}

func TestWriteLaTeX(t *testing.T) {
	c := expr.Const
	cs := []cases.Case{{Name: "reciprocal_factor", A: expr.Div(c(5), c(3)), B: expr.Mul(c(5), expr.Div(c(1), c(3)))}}
	report := newChecker(t, testConfig(), nil).Run(context.Background(), cs)

	var buf bytes.Buffer
	WriteLaTeX(&buf, report)
	out := buf.String()

	assert.Contains(t, out, `\begin{document}`)
	assert.Contains(t, out, `reciprocal\_factor`)
	assert.Contains(t, out, `\frac{5}{3} \equiv`)
	assert.Contains(t, out, `\end{document}`)
}
