package expr

import (
	"math"
	"math/cmplx"
)

// Rewrite rules. Each receives already simplified operands and returns the
// rewritten node, or nil when it does not apply. A rule may return a tree
// that is not yet canonical; the next pass of Simplify reduces it.

// foldConst combines two numeric literals with op. Results that are NaN or
// infinite are not folded, so an undefined subexpression keeps its shape.
func foldConst(a, b ExprNode, op func(Number, Number) Number) ExprNode {
	x, ok := constValue(a)
	if !ok {
		return nil
	}
	y, ok := constValue(b)
	if !ok {
		return nil
	}
	r := op(x, y)
	if r.IsNaN() || r.IsInf() {
		return nil
	}
	return r.Node()
}

func negRule(x ExprNode) ExprNode {
	if c, ok := constValue(x); ok {
		return c.Neg().Node()
	}
	if u, ok := x.(*UnaryNode); ok && u.Op == OpNeg {
		return u.Child
	}
	return nil
}

func invRule(x ExprNode) ExprNode {
	switch c := x.(type) {
	case *UnaryNode:
		if c.Op == OpInv {
			return c.Child
		}
	case *IntNode:
		// 1/k stays exact for other integers
		if c.Val == 1 || c.Val == -1 {
			return x
		}
	case *FloatNode, *ComplexNode:
		return foldConst(intc(1), x, Number.Div)
	}
	return nil
}

// lnRule: ln e = 1, ln 1 = 0, ln(e**k) = k and ln(a * e**k) = ln(a) + k.
func lnRule(x ExprNode) ExprNode {
	if isNamed(x, "e") {
		return intc(1)
	}
	if isInt(x, 1) {
		return intc(0)
	}
	if b, ok := x.(*BinaryNode); ok && b.Op == OpPow && isNamed(b.Left, "e") {
		return b.Right
	}
	p, ok := x.(*NaryNode)
	if !ok || p.Op != OpProduct {
		return nil
	}
	for i, t := range p.Terms {
		base, k := powerOf(t)
		if !isNamed(base, "e") {
			continue
		}
		rest := make([]ExprNode, 0, len(p.Terms)-1)
		rest = append(rest, p.Terms[:i]...)
		rest = append(rest, p.Terms[i+1:]...)
		return sum(apply(OpLn, collapse(OpProduct, rest)), k)
	}
	return nil
}

func absRule(x ExprNode) ExprNode {
	switch c := x.(type) {
	case *IntNode:
		if c.Val < 0 {
			return IntNumber(c.Val).Neg().Node()
		}
		return x
	case *FloatNode:
		return &FloatNode{Val: math.Abs(c.Val)}
	case *ComplexNode:
		return &FloatNode{Val: cmplx.Abs(c.Val)}
	case *UnaryNode:
		switch c.Op {
		case OpNeg:
			return apply(OpAbs, c.Child)
		case OpAbs:
			return x
		}
	}
	return nil
}

func addRule(a, b ExprNode) ExprNode {
	if r := foldConst(a, b, Number.Add); r != nil {
		return r
	}
	if isInt(a, 0) {
		return b
	}
	if isInt(b, 0) {
		return a
	}
	if Equal(a, b) {
		return prod(intc(2), a)
	}
	return mergeCoefficients(a, b, Number.Add)
}

func subRule(a, b ExprNode) ExprNode {
	if r := foldConst(a, b, Number.Sub); r != nil {
		return r
	}
	if Equal(a, b) {
		return intc(0)
	}
	if isInt(a, 0) {
		return neg(b)
	}
	if isInt(b, 0) {
		return a
	}
	return mergeCoefficients(a, b, Number.Sub)
}

// mergeCoefficients combines like terms that differ only in a leading
// numeric coefficient: 2*x + 3*x = 5*x.
func mergeCoefficients(a, b ExprNode, op func(Number, Number) Number) ExprNode {
	ca, ra := splitCoefficient(a)
	cb, rb := splitCoefficient(b)
	if !Equal(ra, rb) {
		return nil
	}
	c := op(ca, cb)
	if c.IsNaN() || c.IsInf() {
		return nil
	}
	return prod(c.Node(), ra)
}

// splitCoefficient returns the leading numeric factor of a product and the
// remaining factors. Anything else has coefficient 1.
func splitCoefficient(e ExprNode) (Number, ExprNode) {
	p, ok := e.(*NaryNode)
	if !ok || p.Op != OpProduct || len(p.Terms) < 2 {
		return IntNumber(1), e
	}
	c, ok := constValue(p.Terms[0])
	if !ok {
		return IntNumber(1), e
	}
	return c, collapse(OpProduct, p.Terms[1:])
}

func mulRule(a, b ExprNode) ExprNode {
	if r := foldConst(a, b, Number.Mul); r != nil {
		return r
	}
	if isNeg(a) {
		return neg(prod(absNeg(a), b))
	}
	if isNeg(b) {
		return neg(prod(a, absNeg(b)))
	}
	if isInt(a, 0) || isInt(b, 0) {
		return intc(0)
	}
	if isInt(a, 1) {
		return b
	}
	if isInt(b, 1) {
		return a
	}

	ba, ea := powerOf(a)
	bb, eb := powerOf(b)
	if Equal(ba, bb) {
		return pow(ba, sum(ea, eb))
	}
	if Equal(ea, eb) && !isInt(ea, 1) {
		return pow(prod(ba, bb), ea)
	}
	return nil
}

func divRule(a, b ExprNode) ExprNode {
	if isInt(b, 0) {
		return nil
	}
	x, xok := a.(*IntNode)
	y, yok := b.(*IntNode)
	if xok && yok {
		if g := gcd(x.Val, y.Val); g > 1 {
			return prod(intc(x.Val/g), inv(intc(y.Val/g)))
		}
	} else if r := foldConst(a, b, Number.Div); r != nil {
		return r
	}
	if isNeg(a) {
		return neg(prod(absNeg(a), inv(b)))
	}
	if isNeg(b) {
		return neg(prod(a, inv(absNeg(b))))
	}
	if isInt(b, 1) {
		return a
	}
	if isInt(a, 0) {
		return intc(0)
	}
	if Equal(a, b) {
		return intc(1)
	}

	ba, ea := powerOf(a)
	bb, eb := powerOf(b)
	if Equal(ba, bb) {
		return pow(ba, sum(ea, neg(eb)))
	}
	if Equal(ea, eb) && !isInt(ea, 1) {
		return pow(prod(ba, inv(bb)), ea)
	}
	return nil
}

func powRule(a, b ExprNode) ExprNode {
	if isInt(b, 0) {
		return intc(1)
	}
	if isInt(b, 1) || isInt(a, 1) {
		return a
	}
	if isInt(a, 0) {
		if c, ok := constValue(b); ok && real(c.Complex128()) > 0 {
			return a
		}
	}
	if _, ok := constValue(a); ok {
		// integer powers stay exact: 2**-3 becomes 1/8 below, not 0.125
		if y, ok := b.(*IntNode); !ok || y.Val >= 0 {
			if r := foldConst(a, b, Number.Pow); r != nil {
				return r
			}
		}
	}
	if isNeg(b) {
		return inv(pow(a, absNeg(b)))
	}
	// (a**p)**k = a**(p*k) only for integer k: (x**2)**0.5 is |x|, not x
	if p, ok := a.(*BinaryNode); ok && p.Op == OpPow {
		if _, ok := b.(*IntNode); ok {
			return pow(p.Left, prod(p.Right, b))
		}
	}
	return nil
}
