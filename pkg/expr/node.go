package expr

import (
	"fmt"
	"sync/atomic"
)

// ExprNode is the interface for all expression tree nodes.
//
// Nodes are immutable once constructed. The only state a node gains after
// construction is its cached normal form, which is never visible through
// String, LaTeX or the accessors.
type ExprNode interface {
	EvalF64() (float64, bool)
	String() string
	LaTeX() string
	NodeCount() int
	Depth() int

	slot() *normalSlot
}

// ConstNode is a leaf holding one original number.
type ConstNode struct {
	val  float64
	norm normalSlot
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	op          BinaryOp
	left, right ExprNode
	norm        normalSlot
}

// normalSlot is the memoization slot for a node's normal form. The pointer
// is written at most once per successful compare-and-swap; every computation
// of the same node's normal form is identical, so losing the race is harmless.
type normalSlot struct {
	p atomic.Pointer[normal]
	// produced marks nodes returned by the engine as a normal form.
	produced bool
}

// normal is a computed normal form. form is the factored canon parents
// build on; top is form with a final product distributed; node renders top.
type normal struct {
	form *canon
	top  *canon
	node ExprNode
}

// Const lifts a number into a leaf.
func Const(v float64) *ConstNode {
	return &ConstNode{val: v}
}

// Combine builds left op right. Neither operand is modified, so the same
// node can be extended in several directions. A nil operand is a programming
// error and panics.
func Combine(left ExprNode, op BinaryOp, right ExprNode) *BinaryNode {
	if left == nil || right == nil {
		panic(fmt.Sprintf("expr: nil operand in %s", op))
	}
	if !op.valid() {
		panic(fmt.Sprintf("expr: invalid operator %d", int(op)))
	}
	return &BinaryNode{op: op, left: left, right: right}
}

func Add(left, right ExprNode) *BinaryNode { return Combine(left, OpAdd, right) }
func Sub(left, right ExprNode) *BinaryNode { return Combine(left, OpSub, right) }
func Mul(left, right ExprNode) *BinaryNode { return Combine(left, OpMul, right) }
func Div(left, right ExprNode) *BinaryNode { return Combine(left, OpDiv, right) }

// Value returns the leaf's original number.
func (c *ConstNode) Value() float64 { return c.val }

func (b *BinaryNode) Op() BinaryOp      { return b.op }
func (b *BinaryNode) Left() ExprNode    { return b.left }
func (b *BinaryNode) Right() ExprNode   { return b.right }
func (c *ConstNode) slot() *normalSlot  { return &c.norm }
func (b *BinaryNode) slot() *normalSlot { return &b.norm }
