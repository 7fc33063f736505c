package expr

import "math"

// EvalF64 for ConstNode returns the constant value.
func (c *ConstNode) EvalF64() (float64, bool) {
	if math.IsInf(c.val, 0) || math.IsNaN(c.val) {
		return 0, false
	}
	return c.val, true
}

// EvalF64 for BinaryNode dispatches on op. Division by zero, overflow and
// NaN report false. Evaluation is diagnostic only; equivalence never
// depends on it.
func (b *BinaryNode) EvalF64() (float64, bool) {
	left, ok := b.left.EvalF64()
	if !ok {
		return 0, false
	}
	right, ok := b.right.EvalF64()
	if !ok {
		return 0, false
	}

	var r float64
	switch b.op {
	case OpAdd:
		r = left + right
	case OpSub:
		r = left - right
	case OpMul:
		r = left * right
	case OpDiv:
		if right == 0 {
			return 0, false
		}
		r = left / right
	default:
		return 0, false
	}
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return r, true
}
