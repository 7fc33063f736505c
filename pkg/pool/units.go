package pool

import (
	"math/rand"

	"github.com/wildfunctions/exprequiv/pkg/expr"
)

func init() {
	Register("units", func() Pool { return &UnitsPool{} })
}

// UnitsPool leans on 1 and -1 and on negative leaves, which is where the
// identity and sign rewrites do most of their work. Operators favour SUB
// and DIV for the same reason.
type UnitsPool struct{}

func (p *UnitsPool) Name() string { return "units" }

func (p *UnitsPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.25:
		return expr.Const(1)
	case r < 0.45:
		return expr.Const(-1)
	case r < 0.7:
		return expr.Const(-float64(rng.Intn(4) + 2))
	default:
		return expr.Const(float64(rng.Intn(4) + 2))
	}
}

var unitsBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpDiv,
}

func (p *UnitsPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return unitsBinary[rng.Intn(len(unitsBinary))]
}

func (p *UnitsPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
