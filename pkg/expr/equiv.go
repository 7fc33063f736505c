package expr

import (
	"fmt"

	"github.com/kr/pretty"
)

// Equivalent reports whether a and b have identical normal forms. The
// relation is reflexive and symmetric, and transitive because it is string
// equality; it is not complete for arithmetic identities outside the rewrite
// rules of NormalForm.
func Equivalent(a, b ExprNode) bool {
	return NormalForm(a).String() == NormalForm(b).String()
}

// Explain lists the differences between the additive terms of the normal
// forms of a and b. It is empty when they are equivalent.
func Explain(a, b ExprNode) []string {
	if Equivalent(a, b) {
		return nil
	}
	if diff := pretty.Diff(Terms(a), Terms(b)); len(diff) > 0 {
		return diff
	}
	return []string{fmt.Sprintf("%s != %s", NormalForm(a), NormalForm(b))}
}
