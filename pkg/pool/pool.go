package pool

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

// Var is the variable every generated tree is written over.
const Var = "x"

// Pool provides random building blocks for constructing expression trees.
type Pool interface {
	Name() string
	RandomLeaf(rng *rand.Rand) expr.ExprNode
	RandomUnary(rng *rand.Rand) expr.UnaryOp
	RandomBinary(rng *rand.Rand) expr.BinaryOp
	// RandomExponent returns the right operand of a generated power.
	RandomExponent(rng *rand.Rand, maxDepth int) expr.ExprNode
	RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode
}

var registry = map[string]func() Pool{}

// Register adds a pool constructor to the registry.
func Register(name string, constructor func() Pool) {
	registry[name] = constructor
}

// Get returns a pool by name.
func Get(name string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered pool names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// randomTree is a shared helper for building random trees.
func randomTree(p Pool, rng *rand.Rand, maxDepth int) expr.ExprNode {
	if maxDepth <= 1 {
		return p.RandomLeaf(rng)
	}
	// Bias toward leaves at shallow depths to keep trees small
	r := rng.Float64()
	switch {
	case r < 0.3:
		return p.RandomLeaf(rng)
	case r < 0.55:
		return expr.Apply(p.RandomUnary(rng), randomTree(p, rng, maxDepth-1))
	default:
		op := p.RandomBinary(rng)
		left := randomTree(p, rng, maxDepth-1)
		var right expr.ExprNode
		if op == expr.OpPow {
			right = p.RandomExponent(rng, maxDepth-1)
		} else {
			right = randomTree(p, rng, maxDepth-1)
		}
		return combine(rng, op, left, right)
	}
}

// combine joins two operands. Most results go through the flattening
// builders; a fifth stay explicit binary nodes so both shapes get covered.
func combine(rng *rand.Rand, op expr.BinaryOp, left, right expr.ExprNode) expr.ExprNode {
	if rng.Float64() < 0.2 {
		return expr.Binary(op, left, right)
	}
	switch op {
	case expr.OpAdd:
		return expr.Add(left, right)
	case expr.OpSub:
		return expr.Sub(left, right)
	case expr.OpMul:
		return expr.Mul(left, right)
	case expr.OpDiv:
		return expr.Div(left, right)
	default:
		return expr.Pow(left, right)
	}
}

// smallInt returns an integer constant in [lo, hi].
func smallInt(rng *rand.Rand, lo, hi int) expr.ExprNode {
	return expr.Int(int64(lo + rng.Intn(hi-lo+1)))
}
