package cases

import "github.com/wildfunctions/exprequiv/pkg/expr"

func init() {
	Register("grouping", grouping)
	Register("division", division)
	Register("distinct", distinct)
}

var (
	num = expr.Const
	add = expr.Add
	sub = expr.Sub
	mul = expr.Mul
	div = expr.Div
)

func grouping() []Case {
	return []Case{
		{
			Name: "associativity collapse",
			A:    add(add(add(num(1), num(2)), mul(num(3), num(4))), num(5)),
			B:    add(add(num(1), add(num(2), mul(num(3), num(4)))), num(5)),
		},
		{
			Name: "nested tail sum",
			A:    add(add(add(num(1), num(2)), mul(num(3), num(4))), num(5)),
			B:    add(num(1), add(add(num(2), mul(num(3), num(4))), num(5))),
		},
		{
			Name: "subtraction mixing",
			A:    add(num(9), sub(mul(num(3), num(4)), num(7))),
			B:    sub(add(num(9), mul(num(3), num(4))), num(7)),
		},
		{
			Name: "negated groups",
			A:    sub(sub(num(2), add(sub(mul(num(3), num(9)), num(8)), num(7))), num(2)),
			B:    add(sub(sub(num(8), mul(num(3), num(9))), add(num(7), num(2))), num(2)),
		},
		{
			Name: "commuted product",
			A:    mul(add(num(1), num(2)), num(3)),
			B:    mul(num(3), add(num(2), num(1))),
		},
		{
			Name: "subtracted difference",
			A:    sub(num(4), sub(num(2), num(6))),
			B:    sub(add(num(4), num(6)), num(2)),
		},
		{
			Name: "multiply by one",
			A:    mul(num(1), add(num(8), num(2))),
			B:    add(num(2), num(8)),
		},
		{
			Name: "signed zero factor",
			A:    mul(mul(mul(num(2), num(-1)), sub(num(1), num(1))), add(num(3), num(4))),
			B:    mul(mul(num(2), mul(num(-1), sub(num(1), num(1)))), add(num(3), num(4))),
		},
	}
}

func division() []Case {
	return []Case{
		{
			Name: "division inversion",
			A:    div(num(7), div(sub(num(9), num(8)), num(2))),
			B:    div(num(2), div(sub(num(9), num(8)), num(7))),
		},
		{
			Name: "double reciprocal",
			A:    div(num(1), div(num(1), num(7))),
			B:    num(7),
		},
		{
			Name: "negative quotients",
			A:    div(sub(num(2), num(3)), sub(num(5), num(7))),
			B:    div(sub(num(3), num(2)), sub(num(7), num(5))),
		},
		{
			Name: "distribution",
			A:    div(sub(add(num(2), num(3)), num(5)), num(7)),
			B:    sub(add(div(num(2), num(7)), div(num(3), num(7))), div(num(5), num(7))),
		},
		{
			Name: "reciprocal factor",
			A:    div(num(5), num(3)),
			B:    mul(num(5), div(num(1), num(3))),
		},
		{
			Name: "quotient order",
			A:    div(mul(num(2), num(3)), num(5)),
			B:    mul(div(num(2), num(5)), num(3)),
		},
	}
}

// distinct holds pairs the engine must keep apart: either not equal at all
// or equal only through identities it deliberately does not apply.
func distinct() []Case {
	return []Case{
		{Name: "add vs mul", A: add(num(1), num(2)), B: mul(num(1), num(2)), Want: Distinct},
		{Name: "swapped quotient", A: div(num(7), num(2)), B: div(num(2), num(7)), Want: Distinct},
		{Name: "swapped difference", A: sub(num(9), num(8)), B: sub(num(8), num(9)), Want: Distinct},
		{Name: "precedence", A: mul(add(num(1), num(2)), num(3)), B: add(num(1), mul(num(2), num(3))), Want: Distinct},
		{Name: "no constant folding", A: mul(num(2), num(2)), B: add(num(2), num(2)), Want: Distinct},
		{Name: "no cancellation", A: sub(add(num(5), num(3)), num(3)), B: num(5), Want: Distinct},
		{Name: "lone reciprocal", A: div(num(1), num(7)), B: mul(num(2), div(num(1), num(7))), Want: Distinct},
		{
			Name: "reciprocal of a sum",
			A:    div(num(1), add(num(2), num(3))),
			B:    add(div(num(1), num(2)), div(num(1), num(3))),
			Want: Distinct,
		},
	}
}
