package pool

import (
	"fmt"

	"github.com/wildfunctions/exprequiv/pkg/expr"
)

// Mirror returns a copy of n with the operands of every ADD and MUL node
// swapped. The result is always equivalent to n.
func Mirror(n expr.ExprNode) expr.ExprNode {
	switch n := n.(type) {
	case *expr.ConstNode:
		return expr.Const(n.Value())
	case *expr.BinaryNode:
		left, right := Mirror(n.Left()), Mirror(n.Right())
		if commutes(n.Op()) {
			left, right = right, left
		}
		return expr.Combine(left, n.Op(), right)
	default:
		panic(fmt.Sprintf("pool: unknown node type %T", n))
	}
}

// Regroup returns a copy of n in which every (a op b) op c, for op ADD or
// MUL, is rotated to a op (b op c). The result is always equivalent to n.
func Regroup(n expr.ExprNode) expr.ExprNode {
	switch n := n.(type) {
	case *expr.ConstNode:
		return expr.Const(n.Value())
	case *expr.BinaryNode:
		op := n.Op()
		left, right := Regroup(n.Left()), Regroup(n.Right())
		if l, ok := left.(*expr.BinaryNode); ok && commutes(op) && l.Op() == op {
			return expr.Combine(l.Left(), op, expr.Combine(l.Right(), op, right))
		}
		return expr.Combine(left, op, right)
	default:
		panic(fmt.Sprintf("pool: unknown node type %T", n))
	}
}

func commutes(op expr.BinaryOp) bool {
	return op == expr.OpAdd || op == expr.OpMul
}
