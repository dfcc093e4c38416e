package expr

import "math"

func (v *VarNode) NodeCount() int        { return 1 }
func (c *IntNode) NodeCount() int        { return 1 }
func (c *FloatNode) NodeCount() int      { return 1 }
func (c *ComplexNode) NodeCount() int    { return 1 }
func (c *NamedConstNode) NodeCount() int { return 1 }
func (u *UnaryNode) NodeCount() int      { return 1 + u.Child.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}
func (n *NaryNode) NodeCount() int {
	count := 1
	for _, t := range n.Terms {
		count += t.NodeCount()
	}
	return count
}

func (v *VarNode) Depth() int        { return 1 }
func (c *IntNode) Depth() int        { return 1 }
func (c *FloatNode) Depth() int      { return 1 }
func (c *ComplexNode) Depth() int    { return 1 }
func (c *NamedConstNode) Depth() int { return 1 }
func (u *UnaryNode) Depth() int      { return 1 + u.Child.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}
func (n *NaryNode) Depth() int {
	deepest := 0
	for _, t := range n.Terms {
		if d := t.Depth(); d > deepest {
			deepest = d
		}
	}
	return 1 + deepest
}

// WeightedComplexity returns a complexity score with heavier weight for
// operations that are more "expensive" (powers, transcendental functions).
func WeightedComplexity(node ExprNode) float64 {
	switch n := node.(type) {
	case *VarNode, *NamedConstNode:
		return 1.0
	case *IntNode:
		v := n.Val
		if v < 0 {
			v = -v
		}
		if v <= 10 {
			return 1.0
		}
		return 1.0 + math.Log10(float64(v))
	case *FloatNode, *ComplexNode:
		return 2.0
	case *UnaryNode:
		return unaryWeight(n.Op) + WeightedComplexity(n.Child)
	case *BinaryNode:
		return binaryWeight(n.Op) + WeightedComplexity(n.Left) + WeightedComplexity(n.Right)
	case *NaryNode:
		// an n-ary node costs what its chain of binary ops would
		w := 0.0
		for i, t := range n.Terms {
			if i > 0 {
				w += naryWeight(n.Op)
			}
			w += WeightedComplexity(t)
		}
		return w
	default:
		return 1.0
	}
}

func unaryWeight(op UnaryOp) float64 {
	switch op {
	case OpNeg, OpAbs:
		return 1.0
	case OpInv:
		return 1.5
	case OpSqrt, OpCbrt:
		return 2.0
	case OpExp, OpLn, OpLg, OpSin, OpCos:
		return 3.0
	default:
		return 3.0
	}
}

func binaryWeight(op BinaryOp) float64 {
	switch op {
	case OpAdd, OpSub:
		return 1.0
	case OpMul, OpDiv:
		return 1.5
	case OpPow:
		return 2.0
	default:
		return 1.5
	}
}

func naryWeight(op NaryOp) float64 {
	if op == OpProduct {
		return binaryWeight(OpMul)
	}
	return binaryWeight(OpAdd)
}
