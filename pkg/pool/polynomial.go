package pool

import (
	"math/rand"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

func init() {
	Register("polynomial", func() Pool { return &PolynomialPool{} })
}

// PolynomialPool provides basic building blocks: x, ints 1-9, negation,
// sums, products and small integer powers.
type PolynomialPool struct{}

func (p *PolynomialPool) Name() string { return "polynomial" }

func (p *PolynomialPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	if rng.Float64() < 0.5 {
		return expr.Var(Var)
	}
	return smallInt(rng, 1, 9)
}

var polynomialUnary = []expr.UnaryOp{
	expr.OpNeg,
}

func (p *PolynomialPool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return polynomialUnary[rng.Intn(len(polynomialUnary))]
}

var polynomialBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpPow,
}

func (p *PolynomialPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return polynomialBinary[rng.Intn(len(polynomialBinary))]
}

func (p *PolynomialPool) RandomExponent(rng *rand.Rand, _ int) expr.ExprNode {
	return smallInt(rng, 2, 4)
}

func (p *PolynomialPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
