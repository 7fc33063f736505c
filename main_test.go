package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/exprequiv/pkg/cases"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCollectCases(t *testing.T) {
	total := 0
	for _, name := range cases.Names() {
		cs, err := cases.Get(name)
		require.NoError(t, err)
		total += len(cs)
	}

	all, err := collectCases(nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, total)

	division, err := collectCases([]string{"division"}, []string{"pkg/cases/testdata/basic.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "division/division inversion", division[0].Name)
	assert.Equal(t, "double reciprocal", division[len(division)-4].Name)

	_, err = collectCases([]string{"nonexistent"}, nil)
	assert.True(t, errors.Is(err, cases.ErrUnknownSuite))
}

func TestSuitesCommand(t *testing.T) {
	out, err := execute(t, "suites")
	require.NoError(t, err)
	assert.Contains(t, out, "grouping")
	assert.Contains(t, out, "division")
	assert.Contains(t, out, "fractions")
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check", "distinct", "--format", "json", "--workers", "2")
	require.NoError(t, err)

	var report struct {
		Passed int `json:"passed"`
		Failed int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Positive(t, report.Passed)
	assert.Zero(t, report.Failed)
}

func TestNormalizeCommand(t *testing.T) {
	out, err := execute(t, "normalize", "-f", "pkg/cases/testdata/basic.yaml", "--latex")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 / (1 / 7)) => 7")
	assert.Contains(t, out, `\frac{1}{\frac{1}{7}} => 7`)
	assert.Contains(t, out, "terms: ")
}

func TestFuzzCommand(t *testing.T) {
	out, err := execute(t, "fuzz", "--pool", "units", "--samples", "50", "--seed", "7", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Checked:   50/50")
	assert.Contains(t, out, "Pool:      units")
}

func TestFuzzCommand_LaTeX(t *testing.T) {
	out, err := execute(t, "fuzz", "--pool", "signs", "--samples", "40", "--seed", "3", "--format", "latex")
	require.NoError(t, err)
	assert.Contains(t, out, `\begin{document}`)
	assert.Contains(t, out, "Pool: signs, seed: 3")
	assert.Contains(t, out, "checked: 40/40, failures: 0")
	assert.NotContains(t, out, "==========")
}

func TestUnknownSuiteFails(t *testing.T) {
	_, err := execute(t, "check", "nonexistent")
	require.Error(t, err)
	assert.False(t, errors.Is(err, errFailed))
}
