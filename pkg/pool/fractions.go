package pool

import (
	"math/rand"

	"github.com/wildfunctions/exprequiv/pkg/expr"
)

func init() {
	Register("fractions", func() Pool { return &FractionsPool{} })
}

// FractionsPool mixes small integers with non-integral leaves.
type FractionsPool struct{}

func (p *FractionsPool) Name() string { return "fractions" }

var fractionLeaves = []float64{0.5, 0.25, 0.2, 1.5, 2.5, 0.125}

func (p *FractionsPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	if rng.Float64() < 0.5 {
		return expr.Const(fractionLeaves[rng.Intn(len(fractionLeaves))])
	}
	return expr.Const(float64(rng.Intn(5) + 1))
}

var fractionsBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpMul,
	expr.OpDiv,
	expr.OpDiv,
}

func (p *FractionsPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return fractionsBinary[rng.Intn(len(fractionsBinary))]
}

func (p *FractionsPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
