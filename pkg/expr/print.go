package expr

import (
	"fmt"
	"strconv"
)

// formatValue renders a leaf value in its shortest exact form ("7", "0.5").
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String methods. Every internal node is parenthesized so the rendering
// records the grouping actually present in the tree.

func (c *ConstNode) String() string {
	return formatValue(c.val)
}

func (b *BinaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", b.left.String(), b.op.Symbol(), b.right.String())
}

// LaTeX methods

func (c *ConstNode) LaTeX() string {
	if c.val < 0 {
		return fmt.Sprintf("{%s}", formatValue(c.val))
	}
	return formatValue(c.val)
}

func (b *BinaryNode) LaTeX() string {
	left := b.left.LaTeX()
	right := b.right.LaTeX()
	switch b.op {
	case OpAdd:
		return fmt.Sprintf("{%s} + {%s}", left, right)
	case OpSub:
		return fmt.Sprintf("{%s} - {%s}", left, latexGroup(b.right, right))
	case OpMul:
		return fmt.Sprintf("{%s} \\cdot {%s}", latexGroup(b.left, left), latexGroup(b.right, right))
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	default:
		return ""
	}
}

// latexGroup wraps additive children, the only ones whose grouping LaTeX
// would otherwise lose.
func latexGroup(n ExprNode, s string) string {
	if b, ok := n.(*BinaryNode); ok && b.op.Additive() {
		return fmt.Sprintf("\\left(%s\\right)", s)
	}
	return s
}
