package check

import "github.com/wildfunctions/symdiff/pkg/expr"

// maxShrinkSteps bounds the number of accepted reductions.
const maxShrinkSteps = 64

// Shrink reduces a failing case to a smaller expression that still fails,
// by repeatedly hoisting a subtree over its parent or dropping a term of a
// sum or product. It returns c unchanged when c does not fail.
func Shrink(c Case, s Settings) Case {
	if Evaluate(c, s).Outcome != Fail {
		return c
	}
	for step := 0; step < maxShrinkSteps; step++ {
		reduced := false
		for _, smaller := range shrinkTree(c.Expr) {
			next := Case{Expr: smaller, Var: c.Var, Order: c.Order}
			if Evaluate(next, s).Outcome == Fail {
				c = next
				reduced = true
				break
			}
		}
		if !reduced {
			break
		}
	}
	return c
}

// shrinkTree lists the trees one reduction away from root, smallest
// first: its own operands, then every rewrite of one nested subtree.
func shrinkTree(root expr.ExprNode) []expr.ExprNode {
	out := root.Operands()

	switch n := root.(type) {
	case *expr.UnaryNode:
		for _, c := range shrinkTree(n.Child) {
			out = append(out, &expr.UnaryNode{Op: n.Op, Child: c})
		}
	case *expr.BinaryNode:
		for _, c := range shrinkTree(n.Left) {
			out = append(out, &expr.BinaryNode{Op: n.Op, Left: c, Right: n.Right})
		}
		for _, c := range shrinkTree(n.Right) {
			out = append(out, &expr.BinaryNode{Op: n.Op, Left: n.Left, Right: c})
		}
	case *expr.NaryNode:
		if len(n.Terms) > 2 {
			for i := range n.Terms {
				out = append(out, replaceTerm(n, i, nil))
			}
		}
		for i, t := range n.Terms {
			for _, c := range shrinkTree(t) {
				out = append(out, replaceTerm(n, i, c))
			}
		}
	}
	return out
}

// replaceTerm rebuilds n with term i replaced, or dropped when with is nil.
func replaceTerm(n *expr.NaryNode, i int, with expr.ExprNode) expr.ExprNode {
	terms := make([]expr.ExprNode, 0, len(n.Terms))
	for j, t := range n.Terms {
		switch {
		case j != i:
			terms = append(terms, t)
		case with != nil:
			terms = append(terms, with)
		}
	}
	return expr.NewNary(n.Op, terms...)
}
