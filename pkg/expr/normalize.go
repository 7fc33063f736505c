package expr

import (
	"fmt"
	"sort"
)

// NormalForm returns the canonical rewriting of n, computing and caching it
// on first use. n itself is never changed: String() renders the same before
// and after. Two expressions are equivalent iff their normal forms render
// identically.
//
// The rewrite rules, applied bottom-up:
//   - a - b becomes a + (-1 * b) and a / b becomes a * (1 / b);
//   - nested sums and products are flattened into sorted multisets;
//   - a product is kept as one numerator and one denominator multiset, so
//     the reciprocal of a reciprocal cancels and grouping inside a division
//     chain is irrelevant;
//   - factors equal to 1 vanish and -1 factors reduce to one sign;
//   - a product with exactly one sum in its numerator is distributed when it
//     becomes a term of a sum or the final result;
//   - of a sum and its negation, the one with fewer negated terms (then the
//     one rendering first) is kept and the other is written as -1 times it;
//   - a sum that is its own negation, such as x - x, drops the sign of any
//     product it is a factor of.
func NormalForm(n ExprNode) ExprNode {
	return normalOf(n).node
}

// HasNormalForm reports whether n's normal form has already been computed.
func HasNormalForm(n ExprNode) bool {
	return n.slot().p.Load() != nil
}

// IsNormalForm reports whether n was returned by NormalForm.
func IsNormalForm(n ExprNode) bool {
	return n.slot().produced
}

// NormalizeFresh is NormalForm for callers that expect an expression built
// by hand. It fails with ErrNormalForm when n is itself a normal form, since
// normalizing twice is almost always a mix-up between the two trees.
func NormalizeFresh(n ExprNode) (ExprNode, error) {
	if IsNormalForm(n) {
		return nil, fmt.Errorf("%w: %s", ErrNormalForm, n)
	}
	return NormalForm(n), nil
}

// Terms returns the renderings of the additive terms of n's normal form in
// sorted order. A normal form that is not a sum is a single term.
func Terms(n ExprNode) []string {
	terms := additiveTerms(normalOf(n).top)
	keys := make([]string, len(terms))
	for i, t := range terms {
		keys[i] = t.key
	}
	sort.Strings(keys)
	return keys
}

func normalOf(n ExprNode) *normal {
	s := n.slot()
	if nf := s.p.Load(); nf != nil {
		return nf
	}

	form := canonOf(n)
	top := distribute(form)
	root := top.rebuild()
	root.slot().produced = true

	nf := &normal{form: form, top: top, node: root}
	if !s.p.CompareAndSwap(nil, nf) {
		return s.p.Load()
	}
	return nf
}

func canonOf(n ExprNode) *canon {
	switch n := n.(type) {
	case *ConstNode:
		return leafCanon(n.val)
	case *BinaryNode:
		left := normalOf(n.left).form
		right := normalOf(n.right).form
		switch n.op {
		case OpAdd:
			return sumOf(left, right)
		case OpSub:
			return sumOf(left, negate(right))
		case OpMul:
			return productOf([]*canon{left, right}, nil)
		default:
			return productOf([]*canon{left}, []*canon{right})
		}
	default:
		panic(fmt.Sprintf("expr: unknown node type %T", n))
	}
}

func sumOf(a, b *canon) *canon {
	left, right := additiveTerms(a), additiveTerms(b)
	terms := make([]*canon, 0, len(left)+len(right))
	terms = append(terms, left...)
	terms = append(terms, right...)
	return finalizeSum(terms)
}

func negate(c *canon) *canon {
	return productOf([]*canon{leafCanon(-1), c}, nil)
}

// additiveTerms returns the terms c contributes to an enclosing sum. A
// product with exactly one sum among its numerator factors is distributed;
// this also unpacks -1 * (a + b). The result must not be modified.
func additiveTerms(c *canon) []*canon {
	if c.isSum() {
		return c.terms
	}
	sum, others, ok := c.splitSum()
	if !ok {
		return []*canon{c}
	}
	out := make([]*canon, 0, len(sum.terms))
	for _, t := range sum.terms {
		num := make([]*canon, 0, len(others)+1)
		num = append(num, t)
		num = append(num, others...)
		out = append(out, productOf(num, c.den))
	}
	return out
}

// distribute spreads a final product over its single numerator sum, e.g.
// (a + b) / d becomes a/d + b/d. A signed sum is already final.
func distribute(c *canon) *canon {
	if c.signedSum() {
		return c
	}
	if _, _, ok := c.splitSum(); !ok {
		return c
	}
	terms := additiveTerms(c)
	return finalizeSum(append([]*canon(nil), terms...))
}

// finalizeSum sorts terms, which it owns, and picks a sign: of the sum and
// its negation the one with fewer negated terms is kept, then the one with
// the smaller rendering. a - b and b - a thus normalize to x and -1 * x for
// the same x. A sum equal to its own negation is returned as is.
func finalizeSum(terms []*canon) *canon {
	sortCanon(terms)
	negated := make([]*canon, len(terms))
	for i, t := range terms {
		negated[i] = negate(t)
	}
	sortCanon(negated)

	pos, alt := newSum(terms), newSum(negated)
	if alt.key == pos.key {
		pos.selfNegating = true
		return pos
	}
	if preferSum(alt, pos) {
		return newProduct([]*canon{leafCanon(-1), alt}, nil)
	}
	return pos
}

func preferSum(a, b *canon) bool {
	na, nb := negativeTerms(a), negativeTerms(b)
	if na != nb {
		return na < nb
	}
	return a.key < b.key
}

// negativeTerms counts terms carrying the sign factor or a negative value.
func negativeTerms(sum *canon) int {
	count := 0
	for _, t := range sum.terms {
		if t.negative() || (t.isLeaf() && t.val < 0) {
			count++
		}
	}
	return count
}

// productOf multiplies the factors of num and divides by the factors of den.
// Nested products are flattened, with a denominator's own denominator moving
// up to the numerator.
func productOf(num, den []*canon) *canon {
	var n, d []*canon
	for _, f := range num {
		if f.kind == canonProduct {
			n = append(n, f.num...)
			d = append(d, f.den...)
		} else {
			n = append(n, f)
		}
	}
	for _, f := range den {
		if f.kind == canonProduct {
			n = append(n, f.den...)
			d = append(d, f.num...)
		} else {
			d = append(d, f)
		}
	}

	negative := false
	n, negative = dropUnits(n, negative)
	d, negative = dropUnits(d, negative)
	if negative && (anySelfNegating(n) || anySelfNegating(d)) {
		negative = false
	}

	switch {
	case len(n) == 0 && len(d) == 0:
		if negative {
			return leafCanon(-1)
		}
		return leafCanon(1)
	case len(n) == 1 && len(d) == 0:
		if !negative {
			return n[0]
		}
		if n[0].isSum() {
			terms := make([]*canon, len(n[0].terms))
			for i, t := range n[0].terms {
				terms[i] = negate(t)
			}
			return finalizeSum(terms)
		}
	}

	if negative {
		n = append(n, leafCanon(-1))
	}
	sortCanon(n)
	sortCanon(d)
	return newProduct(n, d)
}

// dropUnits removes factors 1 and -1 in place, folding each -1 into negative.
func dropUnits(fs []*canon, negative bool) ([]*canon, bool) {
	out := fs[:0]
	for _, f := range fs {
		if f.isLeaf() {
			if exact.IsOne(f.val) {
				continue
			}
			if exact.IsMinusOne(f.val) {
				negative = !negative
				continue
			}
		}
		out = append(out, f)
	}
	return out, negative
}
