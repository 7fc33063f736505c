package pool

import (
	"math/rand"

	"github.com/wildfunctions/exprequiv/pkg/expr"
)

func init() {
	Register("signs", func() Pool { return &SignsPool{} })
}

// SignsPool draws only 1, -1 and 2, so x - x and 1 - 2 show up often and
// land next to other sums inside products. Those are the shapes where a
// sum equal to its own negation has to absorb a sign.
type SignsPool struct{}

var signsLeaves = []float64{1, -1, 2}

func (p *SignsPool) Name() string { return "signs" }

func (p *SignsPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	return expr.Const(signsLeaves[rng.Intn(len(signsLeaves))])
}

var signsBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpSub,
	expr.OpMul,
	expr.OpMul,
	expr.OpDiv,
}

func (p *SignsPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return signsBinary[rng.Intn(len(signsBinary))]
}

func (p *SignsPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
