package expr

import (
	"fmt"
	"strings"
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

var binaryOpNames = map[string]BinaryOp{
	"+": OpAdd, "add": OpAdd,
	"-": OpSub, "sub": OpSub,
	"*": OpMul, "mul": OpMul,
	"/": OpDiv, "div": OpDiv,
}

func (op BinaryOp) valid() bool {
	_, ok := binaryOpSymbols[op]
	return ok
}

// Additive reports whether op is ADD or SUB.
func (op BinaryOp) Additive() bool { return op == OpAdd || op == OpSub }

// Multiplicative reports whether op is MUL or DIV.
func (op BinaryOp) Multiplicative() bool { return op == OpMul || op == OpDiv }

// Inverse returns the inverse operator within op's class.
func (op BinaryOp) Inverse() BinaryOp {
	switch op {
	case OpAdd:
		return OpSub
	case OpSub:
		return OpAdd
	case OpMul:
		return OpDiv
	default:
		return OpMul
	}
}

// Symbol returns the display symbol, e.g. "+".
func (op BinaryOp) Symbol() string {
	if s, ok := binaryOpSymbols[op]; ok {
		return s
	}
	return "?"
}

func (op BinaryOp) String() string { return op.Symbol() }

// ParseOp maps a symbol ("+") or name ("add") to its operator.
func ParseOp(s string) (BinaryOp, error) {
	op, ok := binaryOpNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown operator: %q", s)
	}
	return op, nil
}
