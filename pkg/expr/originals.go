package expr

import (
	"fmt"
	"sort"

	"github.com/wildfunctions/exprequiv/pkg/numeric"
)

// Originals maps each leaf value of an expression to its occurrence count.
type Originals map[float64]int

// UsedOriginals returns the multiset of leaf values n was built from.
func UsedOriginals(n ExprNode) Originals {
	out := Originals{}
	collectOriginals(n, out)
	return out
}

func collectOriginals(n ExprNode, out Originals) {
	switch n := n.(type) {
	case *ConstNode:
		out[n.val]++
	case *BinaryNode:
		collectOriginals(n.left, out)
		collectOriginals(n.right, out)
	}
}

// Count returns the occurrences of every value cmp considers equal to v.
func (o Originals) Count(v float64, cmp numeric.Comparator) int {
	total := 0
	for k, c := range o {
		if cmp.Equal(k, v) {
			total += c
		}
	}
	return total
}

// Values returns the distinct values in ascending order.
func (o Originals) Values() []float64 {
	vals := make([]float64, 0, len(o))
	for v := range o {
		vals = append(vals, v)
	}
	sort.Float64s(vals)
	return vals
}

// AuditOriginals checks that n's normal form uses every original value at
// least as often as n does. 1 and -1 are exempt: identity and sign rewriting
// may absorb or shed them.
func AuditOriginals(n ExprNode, cmp numeric.Comparator) error {
	nf := NormalForm(n)
	before, after := UsedOriginals(n), UsedOriginals(nf)

	var short []Shortage
	seen := map[float64]bool{}
	for _, v := range before.Values() {
		if cmp.IsOne(v) || cmp.IsMinusOne(v) {
			continue
		}
		dup := false
		for s := range seen {
			if cmp.Equal(s, v) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[v] = true

		want, got := before.Count(v, cmp), after.Count(v, cmp)
		if got < want {
			short = append(short, Shortage{Value: v, Want: want, Got: got})
		}
	}
	if len(short) > 0 {
		return &OriginalsError{Original: n.String(), Normal: nf.String(), Shortages: short}
	}
	return nil
}

// AuditNonMutation normalizes n and checks its rendering did not change.
// n must not have been normalized yet, otherwise the check proves nothing
// and ErrAlreadyNormalized is returned.
func AuditNonMutation(n ExprNode) error {
	if HasNormalForm(n) {
		return fmt.Errorf("%w: %s", ErrAlreadyNormalized, n)
	}
	before := n.String()
	NormalForm(n)
	if after := n.String(); after != before {
		return fmt.Errorf("normalization changed %s into %s", before, after)
	}
	return nil
}

// AuditIdempotent checks that normalizing a normal form changes nothing.
func AuditIdempotent(n ExprNode) error {
	nf := NormalForm(n)
	again := NormalForm(nf)
	if nf.String() != again.String() {
		return fmt.Errorf("normal form %s of %s is not stable: renormalized to %s", nf, n, again)
	}
	return nil
}
