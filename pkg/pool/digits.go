package pool

import (
	"math/rand"

	"github.com/wildfunctions/exprequiv/pkg/expr"
)

func init() {
	Register("digits", func() Pool { return &DigitsPool{} })
}

// DigitsPool builds trees over the digits 1-9 with all four operators
// equally likely.
type DigitsPool struct{}

func (p *DigitsPool) Name() string { return "digits" }

func (p *DigitsPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	return expr.Const(float64(rng.Intn(9) + 1))
}

func (p *DigitsPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return allBinary[rng.Intn(len(allBinary))]
}

func (p *DigitsPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
