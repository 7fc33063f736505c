package cases

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wildfunctions/exprequiv/pkg/expr"
)

type file struct {
	Cases []fileCase `yaml:"cases"`
}

type fileCase struct {
	Name string    `yaml:"name"`
	Want Want      `yaml:"want"`
	A    *yamlExpr `yaml:"a"`
	B    *yamlExpr `yaml:"b"`
}

type yamlExpr struct {
	node expr.ExprNode
}

func (e *yamlExpr) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("line %d: leaf %q is not a number", value.Line, value.Value)
		}
		e.node = expr.Const(v)
		return nil
	case yaml.MappingNode:
		var raw struct {
			Op    string    `yaml:"op"`
			Left  *yamlExpr `yaml:"left"`
			Right *yamlExpr `yaml:"right"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		op, err := expr.ParseOp(raw.Op)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		if raw.Left == nil || raw.Right == nil {
			return fmt.Errorf("line %d: %q node needs both left and right", value.Line, op)
		}
		e.node = expr.Combine(raw.Left.node, op, raw.Right.node)
		return nil
	default:
		return fmt.Errorf("line %d: expected a number or an {op, left, right} mapping", value.Line)
	}
}

// Parse decodes a case file. Expressions are written as trees: a number is
// a leaf and {op, left, right} combines two subtrees. want defaults to
// equivalent and name to the case's position.
//
//	cases:
//	  - name: double reciprocal
//	    a: {op: "/", left: 1, right: {op: "/", left: 1, right: 7}}
//	    b: 7
//	  - name: swapped quotient
//	    want: distinct
//	    a: {op: div, left: 7, right: 2}
//	    b: {op: div, left: 2, right: 7}
func Parse(data []byte) ([]Case, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	out := make([]Case, 0, len(f.Cases))
	for i, fc := range f.Cases {
		name := fc.Name
		if name == "" {
			name = fmt.Sprintf("case %d", i+1)
		}
		if fc.A == nil || fc.B == nil {
			return nil, fmt.Errorf("%s: both a and b are required", name)
		}
		out = append(out, Case{Name: name, A: fc.A.node, B: fc.B.node, Want: fc.Want})
	}
	return out, nil
}

// Load reads and decodes the case file at path.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cs, nil
}
