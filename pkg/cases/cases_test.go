package cases

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/exprequiv/pkg/expr"
)

func TestSuiteRegistry(t *testing.T) {
	assert.Equal(t, []string{"distinct", "division", "grouping"}, Names())

	_, err := Get("nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSuite))
	assert.Contains(t, err.Error(), "grouping")
}

func TestBuiltinSuitesHold(t *testing.T) {
	for _, name := range Names() {
		cs, err := Get(name)
		require.NoError(t, err)
		require.NotEmpty(t, cs)

		for _, tc := range cs {
			t.Run(name+"/"+tc.Name, func(t *testing.T) {
				got := expr.Equivalent(tc.A, tc.B)
				assert.True(t, tc.Holds(got), "%s\n%s vs %s", tc, expr.NormalForm(tc.A), expr.NormalForm(tc.B))
			})
		}
	}
}

func TestSuitesBuildFreshTrees(t *testing.T) {
	first, err := Get("grouping")
	require.NoError(t, err)
	expr.NormalForm(first[0].A)

	second, err := Get("grouping")
	require.NoError(t, err)
	assert.False(t, expr.HasNormalForm(second[0].A))
}

func TestWant(t *testing.T) {
	w, err := ParseWant(" Distinct ")
	require.NoError(t, err)
	assert.Equal(t, Distinct, w)

	_, err = ParseWant("maybe")
	assert.Error(t, err)

	text, err := Equivalent.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "equivalent", string(text))
	assert.Equal(t, "Want(7)", Want(7).String())
}

func TestCaseString(t *testing.T) {
	tc := Case{Name: "swap", A: expr.Div(num(7), num(2)), B: expr.Div(num(2), num(7)), Want: Distinct}
	assert.Equal(t, "swap: (7 / 2) != (2 / 7)", tc.String())
	assert.True(t, tc.Holds(false))
	assert.False(t, tc.Holds(true))
}

func TestLoad(t *testing.T) {
	cs, err := Load("testdata/basic.yaml")
	require.NoError(t, err)
	require.Len(t, cs, 4)

	assert.Equal(t, "double reciprocal", cs[0].Name)
	assert.Equal(t, "(1 / (1 / 7))", cs[0].A.String())
	assert.Equal(t, "7", cs[0].B.String())
	assert.Equal(t, Equivalent, cs[0].Want)

	assert.Equal(t, "((9 - 8) / 2)", cs[1].A.(*expr.BinaryNode).Right().String())
	assert.Equal(t, Distinct, cs[2].Want)
	assert.Equal(t, "case 4", cs[3].Name)
	assert.Equal(t, "(0.5 * -4)", cs[3].A.String())

	for _, tc := range cs {
		assert.True(t, tc.Holds(expr.Equivalent(tc.A, tc.B)), "%s", tc)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad leaf", "cases:\n  - {a: seven, b: 7}\n", `leaf "seven" is not a number`},
		{"bad op", "cases:\n  - {a: {op: pow, left: 2, right: 3}, b: 8}\n", `unknown operator: "pow"`},
		{"missing child", "cases:\n  - {a: {op: add, left: 2}, b: 2}\n", "needs both left and right"},
		{"missing side", "cases:\n  - {name: lonely, a: 2}\n", "lonely: both a and b are required"},
		{"bad verdict", "cases:\n  - {a: 1, b: 1, want: maybe}\n", `unknown verdict "maybe"`},
		{"sequence leaf", "cases:\n  - {a: [1, 2], b: 1}\n", "expected a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
