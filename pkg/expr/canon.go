package expr

import (
	"sort"

	"github.com/wildfunctions/exprequiv/pkg/numeric"
)

// exact detects the identity and sign constants and orders leaves. The
// engine must be a deterministic function of the tree, so it never snaps
// values that are merely close to 1 or -1.
var exact = numeric.Comparator{}

type canonKind uint8

const (
	canonLeaf canonKind = iota
	canonSum
	canonProduct
)

// canon is the flattened form the engine rewrites into. Only ADD and MUL
// survive: a sum holds n-ary terms, a product holds a numerator and a
// denominator multiset. Every slice is sorted and a canon is never modified
// after construction. key is exactly the String() of rebuild().
//
// Invariants:
//   - sum terms are never sums, and a term has zero or at least two sums
//     among its numerator factors;
//   - product factors are leaves or sums, never products or units, except a
//     single -1 numerator factor carrying the sign;
//   - a product is never a lone factor, and a sum factor is always the
//     preferred sign of its pair (see finalizeSum);
//   - a product with a self-negating sum among its factors carries no sign.
type canon struct {
	kind  canonKind
	val   float64
	terms []*canon
	num   []*canon
	den   []*canon
	key   string

	// selfNegating marks a sum whose negation sorts to the same terms, such
	// as -1 + 1. Its value is zero, so it absorbs any sign.
	selfNegating bool
}

func leafCanon(v float64) *canon {
	return &canon{kind: canonLeaf, val: v, key: formatValue(v)}
}

func (c *canon) isSum() bool  { return c.kind == canonSum }
func (c *canon) isLeaf() bool { return c.kind == canonLeaf }

// negative reports whether c is a product carrying the -1 sign factor.
func (c *canon) negative() bool {
	if c.kind != canonProduct {
		return false
	}
	for _, f := range c.num {
		if f.isLeaf() && exact.IsMinusOne(f.val) {
			return true
		}
	}
	return false
}

// signedSum reports whether c is -1 times a single sum, the form
// finalizeSum returns when the negated terms are preferred.
func (c *canon) signedSum() bool {
	return c.kind == canonProduct && len(c.den) == 0 && len(c.num) == 2 &&
		c.negative() && c.num[1].isSum()
}

// splitSum returns the only sum among c's numerator factors together with
// the remaining numerator factors.
func (c *canon) splitSum() (sum *canon, others []*canon, ok bool) {
	if c.kind != canonProduct {
		return nil, nil, false
	}
	for _, f := range c.num {
		if !f.isSum() {
			others = append(others, f)
			continue
		}
		if sum != nil {
			return nil, nil, false
		}
		sum = f
	}
	return sum, others, sum != nil
}

// canonLess orders constants by value first, then composites by rendering.
func canonLess(a, b *canon) bool {
	switch {
	case a.isLeaf() && b.isLeaf():
		if c := exact.Compare(a.val, b.val); c != 0 {
			return c < 0
		}
		return a.key < b.key
	case a.isLeaf():
		return true
	case b.isLeaf():
		return false
	default:
		return a.key < b.key
	}
}

func anySelfNegating(cs []*canon) bool {
	for _, c := range cs {
		if c.selfNegating {
			return true
		}
	}
	return false
}

func sortCanon(cs []*canon) {
	sort.SliceStable(cs, func(i, j int) bool { return canonLess(cs[i], cs[j]) })
}

// newSum wraps already sorted terms.
func newSum(terms []*canon) *canon {
	acc := terms[0].key
	for _, t := range terms[1:] {
		if t.negative() {
			acc = "(" + acc + " - " + negate(t).key + ")"
		} else {
			acc = "(" + acc + " + " + t.key + ")"
		}
	}
	return &canon{kind: canonSum, terms: terms, key: acc}
}

// newProduct wraps already sorted and unit-free factor lists.
func newProduct(num, den []*canon) *canon {
	key := foldKey(num)
	if len(den) > 0 {
		key = "(" + key + " / " + foldKey(den) + ")"
	}
	return &canon{kind: canonProduct, num: num, den: den, key: key}
}

func foldKey(cs []*canon) string {
	if len(cs) == 0 {
		return "1"
	}
	acc := cs[0].key
	for _, f := range cs[1:] {
		acc = "(" + acc + " * " + f.key + ")"
	}
	return acc
}

// rebuild folds c back into a strictly left-associated binary tree. Negative
// terms after the first are shown as subtraction and a denominator as one
// division.
func (c *canon) rebuild() ExprNode {
	switch c.kind {
	case canonLeaf:
		return Const(c.val)
	case canonSum:
		acc := c.terms[0].rebuild()
		for _, t := range c.terms[1:] {
			if t.negative() {
				acc = Sub(acc, negate(t).rebuild())
			} else {
				acc = Add(acc, t.rebuild())
			}
		}
		return acc
	default:
		top := foldNodes(c.num)
		if len(c.den) == 0 {
			return top
		}
		return Div(top, foldNodes(c.den))
	}
}

func foldNodes(cs []*canon) ExprNode {
	if len(cs) == 0 {
		return Const(1)
	}
	acc := cs[0].rebuild()
	for _, f := range cs[1:] {
		acc = Mul(acc, f.rebuild())
	}
	return acc
}
