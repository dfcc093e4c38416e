package expr

import (
	"math"
	"sort"
)

// Equal reports whether a and b are structurally identical. The comparison
// is syntactic: operand order matters, and constants of different kinds
// never compare equal (2 and 2.0 differ). NaN float constants are equal to
// each other so that simplification converges on expressions holding them.
func Equal(a, b ExprNode) bool {
	switch x := a.(type) {
	case *VarNode:
		y, ok := b.(*VarNode)
		return ok && x.Name == y.Name
	case *IntNode:
		y, ok := b.(*IntNode)
		return ok && x.Val == y.Val
	case *FloatNode:
		y, ok := b.(*FloatNode)
		return ok && floatEqual(x.Val, y.Val)
	case *ComplexNode:
		y, ok := b.(*ComplexNode)
		return ok && floatEqual(real(x.Val), real(y.Val)) && floatEqual(imag(x.Val), imag(y.Val))
	case *NamedConstNode:
		y, ok := b.(*NamedConstNode)
		return ok && x.Name == y.Name && x.Val == y.Val
	case *UnaryNode:
		y, ok := b.(*UnaryNode)
		return ok && x.Op == y.Op && Equal(x.Child, y.Child)
	case *BinaryNode:
		y, ok := b.(*BinaryNode)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *NaryNode:
		y, ok := b.(*NaryNode)
		if !ok || x.Op != y.Op || len(x.Terms) != len(y.Terms) {
			return false
		}
		for i := range x.Terms {
			if !Equal(x.Terms[i], y.Terms[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func floatEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

// FreeVariables returns the sorted names of the variables in e.
func FreeVariables(e ExprNode) []string {
	seen := make(map[string]bool)
	collectVars(e, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectVars(e ExprNode, seen map[string]bool) {
	if v, ok := e.(*VarNode); ok {
		seen[v.Name] = true
		return
	}
	for _, op := range e.Operands() {
		collectVars(op, seen)
	}
}

// containsVar returns true if the expression contains the named variable.
func containsVar(e ExprNode, name string) bool {
	if v, ok := e.(*VarNode); ok {
		return v.Name == name
	}
	for _, op := range e.Operands() {
		if containsVar(op, name) {
			return true
		}
	}
	return false
}

// Predicates and accessors shared by the rules and the printer.

// isConst reports whether e is a numeric literal (not a named constant).
func isConst(e ExprNode) bool {
	switch e.(type) {
	case *IntNode, *FloatNode, *ComplexNode:
		return true
	}
	return false
}

// constValue returns the value of a numeric literal.
func constValue(e ExprNode) (Number, bool) {
	switch c := e.(type) {
	case *IntNode:
		return IntNumber(c.Val), true
	case *FloatNode:
		return FloatNumber(c.Val), true
	case *ComplexNode:
		return ComplexNumber(c.Val), true
	}
	return Number{}, false
}

// isInt reports whether e is a numeric literal equal to v. Floats count,
// so x*1.0 collapses like x*1.
func isInt(e ExprNode, v int64) bool {
	switch c := e.(type) {
	case *IntNode:
		return c.Val == v
	case *FloatNode:
		return c.Val == float64(v)
	case *ComplexNode:
		return c.Val == complex(float64(v), 0)
	}
	return false
}

// isNeg reports whether e is an explicit negation or a negative real
// constant.
func isNeg(e ExprNode) bool {
	switch n := e.(type) {
	case *UnaryNode:
		return n.Op == OpNeg
	case *IntNode:
		return n.Val < 0
	case *FloatNode:
		return !math.IsNaN(n.Val) && math.Signbit(n.Val) && n.Val != 0
	}
	return false
}

// absNeg strips what isNeg detects.
func absNeg(e ExprNode) ExprNode {
	switch n := e.(type) {
	case *UnaryNode:
		if n.Op == OpNeg {
			return n.Child
		}
	case *IntNode:
		if n.Val < 0 {
			return IntNumber(n.Val).Neg().Node()
		}
	case *FloatNode:
		if isNeg(n) {
			return &FloatNode{Val: -n.Val}
		}
	}
	return e
}

func isInv(e ExprNode) bool {
	u, ok := e.(*UnaryNode)
	return ok && u.Op == OpInv
}

func absInv(e ExprNode) ExprNode {
	if u, ok := e.(*UnaryNode); ok && u.Op == OpInv {
		return u.Child
	}
	return e
}

// powerOf splits e into base and exponent; a non-power has exponent 1.
func powerOf(e ExprNode) (base, exp ExprNode) {
	if b, ok := e.(*BinaryNode); ok && b.Op == OpPow {
		return b.Left, b.Right
	}
	return e, intc(1)
}

func isNamed(e ExprNode, name string) bool {
	c, ok := e.(*NamedConstNode)
	return ok && c.Name == name
}
