package expr

// maxPasses caps the fixed-point loop in Simplify.
const maxPasses = 64

// Simplify rewrites e into its canonical form. It applies bottom-up passes
// until a pass leaves the tree structurally unchanged, so the result is a
// fixed point: Simplify(Simplify(e)) equals Simplify(e). Simplification is
// total; a rule that does not apply leaves its subtree as it was.
func Simplify(e ExprNode) ExprNode {
	for i := 0; i < maxPasses; i++ {
		next := simplifyOnce(e)
		if Equal(next, e) {
			return e
		}
		e = next
	}
	return e
}

// simplifyOnce simplifies the children first, rebuilds the node and then
// applies the node's own rule, so every rule sees reduced operands.
func simplifyOnce(node ExprNode) ExprNode {
	switch n := node.(type) {
	case *VarNode, *IntNode, *FloatNode, *ComplexNode, *NamedConstNode:
		return node

	case *UnaryNode:
		child := simplifyOnce(n.Child)
		if d, ok := unaryDef(n.Op); ok && d.Rule != nil {
			if r := d.Rule(child); r != nil {
				return r
			}
		}
		return &UnaryNode{Op: n.Op, Child: child}

	case *BinaryNode:
		left := simplifyOnce(n.Left)
		right := simplifyOnce(n.Right)
		if d, ok := binaryDef(n.Op); ok {
			if r := d.Rule(left, right); r != nil {
				return r
			}
		}
		return &BinaryNode{Op: n.Op, Left: left, Right: right}

	case *NaryNode:
		terms := make([]ExprNode, len(n.Terms))
		for i, t := range n.Terms {
			terms[i] = simplifyOnce(t)
		}
		if n.Op == OpProduct {
			return simplifyProduct(terms)
		}
		return simplifySum(terms)

	default:
		return node
	}
}
