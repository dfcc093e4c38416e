package pool

import (
	"math/rand"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

func init() {
	Register("trig", func() Pool { return &TrigPool{} })
}

// TrigPool draws on the trigonometric functions and their inverses, with
// exp and negation to compose them.
type TrigPool struct{}

func (p *TrigPool) Name() string { return "trig" }

func (p *TrigPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.5:
		return expr.Var(Var)
	case r < 0.85:
		return smallInt(rng, 1, 5)
	default:
		return expr.Pi
	}
}

var trigUnary = []expr.UnaryOp{
	expr.OpNeg,
	expr.OpExp,
	expr.OpSin,
	expr.OpCos,
	expr.OpTg,
	expr.OpCtg,
	expr.OpArcsin,
	expr.OpArccos,
	expr.OpArctg,
	expr.OpArcctg,
}

func (p *TrigPool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return trigUnary[rng.Intn(len(trigUnary))]
}

var trigBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpPow,
}

func (p *TrigPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return trigBinary[rng.Intn(len(trigBinary))]
}

func (p *TrigPool) RandomExponent(rng *rand.Rand, _ int) expr.ExprNode {
	return smallInt(rng, 2, 3)
}

func (p *TrigPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
