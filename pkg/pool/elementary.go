package pool

import (
	"math/rand"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

func init() {
	Register("elementary", func() Pool { return &ElementaryPool{} })
}

// ElementaryPool extends polynomial with e and pi, a few float leaves,
// the reciprocal, exp, logarithms, roots, abs, quotients and powers whose
// exponent may itself depend on x.
type ElementaryPool struct{}

func (p *ElementaryPool) Name() string { return "elementary" }

var elementaryFloats = []float64{0.5, 1.5, 2.5}

func (p *ElementaryPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.45:
		return expr.Var(Var)
	case r < 0.8:
		return smallInt(rng, 1, 9)
	case r < 0.9:
		if rng.Intn(2) == 0 {
			return expr.E
		}
		return expr.Pi
	default:
		return expr.Float(elementaryFloats[rng.Intn(len(elementaryFloats))])
	}
}

var elementaryUnary = []expr.UnaryOp{
	expr.OpNeg,
	expr.OpInv,
	expr.OpExp,
	expr.OpLn,
	expr.OpLg,
	expr.OpSqrt,
	expr.OpCbrt,
	expr.OpAbs,
}

func (p *ElementaryPool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return elementaryUnary[rng.Intn(len(elementaryUnary))]
}

var elementaryBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpPow,
}

func (p *ElementaryPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return elementaryBinary[rng.Intn(len(elementaryBinary))]
}

func (p *ElementaryPool) RandomExponent(rng *rand.Rand, maxDepth int) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.6:
		return smallInt(rng, -2, 3)
	case r < 0.75:
		return expr.Float(0.5)
	default:
		return randomTree(p, rng, maxDepth)
	}
}

func (p *ElementaryPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
