package expr

// Derivative differentiates e with respect to the variable wrt, order times.
// Each pass is simplified before the next one starts; without that,
// repeated differentiation grows the tree combinatorially. An order below
// one returns e unchanged.
func Derivative(e ExprNode, wrt string, order int) ExprNode {
	for i := 0; i < order; i++ {
		e = Simplify(diff(e, wrt))
	}
	return e
}

// Partial takes successive first derivatives, one per name in wrt, so
// Partial(e, "x", "y") is d²e/dydx.
func Partial(e ExprNode, wrt ...string) ExprNode {
	for _, name := range wrt {
		e = Derivative(e, name, 1)
	}
	return e
}

// diff is the raw chain-rule walk. It knows only the node shapes; the
// per-operation factors come from the catalog.
func diff(e ExprNode, wrt string) ExprNode {
	if !containsVar(e, wrt) {
		return intc(0)
	}
	switch n := e.(type) {
	case *VarNode:
		if n.Name == wrt {
			return intc(1)
		}
		return intc(0)

	case *IntNode, *FloatNode, *ComplexNode, *NamedConstNode:
		return intc(0)

	case *UnaryNode:
		d, ok := unaryDef(n.Op)
		if !ok {
			return NaN().Node()
		}
		return prod(d.Local(n.Child), diff(n.Child, wrt))

	case *BinaryNode:
		d, ok := binaryDef(n.Op)
		if !ok {
			return NaN().Node()
		}
		dl, dr := d.Local(n.Left, n.Right)
		return sum(
			prod(dl, diff(n.Left, wrt)),
			prod(dr, diff(n.Right, wrt)),
		)

	case *NaryNode:
		terms := make([]ExprNode, len(n.Terms))
		if n.Op == OpSum {
			for i, t := range n.Terms {
				terms[i] = diff(t, wrt)
			}
			return sum(terms...)
		}
		// generalized product rule
		for i := range n.Terms {
			factors := make([]ExprNode, 0, len(n.Terms))
			for j, t := range n.Terms {
				if j != i {
					factors = append(factors, t)
				}
			}
			factors = append(factors, diff(n.Terms[i], wrt))
			terms[i] = prod(factors...)
		}
		return sum(terms...)

	default:
		return intc(0)
	}
}
