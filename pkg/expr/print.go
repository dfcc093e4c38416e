package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Precedence methods

func (v *VarNode) Precedence() Precedence        { return PrecAtomic }
func (c *ComplexNode) Precedence() Precedence    { return PrecAtomic }
func (c *NamedConstNode) Precedence() Precedence { return PrecAtomic }

// A negative constant renders with a leading minus and binds like negation.
func (c *IntNode) Precedence() Precedence {
	if c.Val < 0 {
		return PrecNeg
	}
	return PrecAtomic
}

func (c *FloatNode) Precedence() Precedence {
	if !math.IsNaN(c.Val) && math.Signbit(c.Val) {
		return PrecNeg
	}
	return PrecAtomic
}

func (u *UnaryNode) Precedence() Precedence {
	switch u.Op {
	case OpNeg:
		return PrecNeg
	case OpInv:
		return PrecProduct
	default:
		return PrecAtomic
	}
}

func (b *BinaryNode) Precedence() Precedence {
	switch b.Op {
	case OpAdd, OpSub:
		return PrecSum
	case OpMul, OpDiv:
		return PrecProduct
	default:
		return PrecPow
	}
}

func (n *NaryNode) Precedence() Precedence {
	if n.Op == OpProduct {
		return PrecProduct
	}
	return PrecSum
}

// String methods

func (v *VarNode) String() string {
	return v.Name
}

func (c *IntNode) String() string {
	return strconv.FormatInt(c.Val, 10)
}

func (c *FloatNode) String() string {
	return formatFloat(c.Val)
}

func (c *ComplexNode) String() string {
	return strconv.FormatComplex(c.Val, 'g', -1, 128)
}

func (c *NamedConstNode) String() string {
	return c.Name
}

func (u *UnaryNode) String() string {
	switch u.Op {
	case OpNeg:
		return "-" + wrapBelow(u.Child, PrecAtomic)
	case OpInv:
		return "1 / " + wrapBelow(u.Child, PrecPow)
	default:
		return fmt.Sprintf("%s(%s)", u.Op, u.Child)
	}
}

func (b *BinaryNode) String() string {
	switch b.Op {
	case OpPow:
		return wrapBelow(b.Left, PrecAtomic) + " ** " + wrapBelow(b.Right, PrecPow)
	default:
		p := b.Precedence()
		return fmt.Sprintf("%s %s %s", wrapBelow(b.Left, p), b.Op, wrapBelow(b.Right, p+1))
	}
}

func (n *NaryNode) String() string {
	if len(n.Terms) == 0 {
		if n.Op == OpProduct {
			return "1"
		}
		return "0"
	}
	if n.Op == OpProduct {
		return n.productString()
	}
	return n.sumString()
}

// sumString renders a + b - c. A leading negated term keeps its own sign.
func (n *NaryNode) sumString() string {
	var sb strings.Builder
	for i, t := range n.Terms {
		if i == 0 {
			if isNeg(t) {
				sb.WriteString(t.String())
			} else {
				sb.WriteString(wrapBelow(t, PrecProduct))
			}
			continue
		}
		if isNeg(t) {
			sb.WriteString(" - ")
			sb.WriteString(wrapBelow(absNeg(t), PrecProduct))
		} else {
			sb.WriteString(" + ")
			sb.WriteString(wrapBelow(t, PrecProduct))
		}
	}
	return sb.String()
}

// productString renders a * b / c. A leading reciprocal renders as 1 / c.
func (n *NaryNode) productString() string {
	var sb strings.Builder
	for i, t := range n.Terms {
		if i == 0 {
			switch {
			case isInv(t):
				sb.WriteString("1 / ")
				sb.WriteString(wrapBelow(absInv(t), PrecPow))
			case t.Precedence() == PrecSum || t.Precedence() == PrecProduct:
				sb.WriteString("(" + t.String() + ")")
			default:
				sb.WriteString(t.String())
			}
			continue
		}
		if isInv(t) {
			sb.WriteString(" / ")
			sb.WriteString(wrapBelow(absInv(t), PrecPow))
		} else {
			sb.WriteString(" * ")
			sb.WriteString(wrapBelow(t, PrecPow))
		}
	}
	return sb.String()
}

// wrapBelow parenthesizes e unless its precedence is at least min.
func wrapBelow(e ExprNode, min Precedence) string {
	if e.Precedence() < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// LaTeX methods

func (v *VarNode) LaTeX() string {
	return v.Name
}

func (c *IntNode) LaTeX() string {
	return strconv.FormatInt(c.Val, 10)
}

func (c *FloatNode) LaTeX() string {
	return formatFloat(c.Val)
}

func (c *ComplexNode) LaTeX() string {
	re, im := real(c.Val), imag(c.Val)
	if re == 0 {
		return strconv.FormatFloat(im, 'g', -1, 64) + "i"
	}
	sign := "+"
	if math.Signbit(im) {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("\\left(%s %s %si\\right)",
		strconv.FormatFloat(re, 'g', -1, 64), sign, strconv.FormatFloat(im, 'g', -1, 64))
}

func (c *NamedConstNode) LaTeX() string {
	if c.Name == "pi" {
		return "\\pi"
	}
	return c.Name
}

var latexFunctions = map[UnaryOp]string{
	OpLn:     "\\ln",
	OpLg:     "\\lg",
	OpSin:    "\\sin",
	OpCos:    "\\cos",
	OpTg:     "\\tan",
	OpCtg:    "\\cot",
	OpArcsin: "\\arcsin",
	OpArccos: "\\arccos",
	OpArctg:  "\\arctan",
	OpArcctg: "\\operatorname{arccot}",
}

func (u *UnaryNode) LaTeX() string {
	child := u.Child.LaTeX()
	switch u.Op {
	case OpNeg:
		if u.Child.Precedence() < PrecAtomic {
			return fmt.Sprintf("-\\left(%s\\right)", child)
		}
		return "-" + child
	case OpInv:
		return fmt.Sprintf("\\frac{1}{%s}", child)
	case OpExp:
		return fmt.Sprintf("e^{%s}", child)
	case OpSqrt:
		return fmt.Sprintf("\\sqrt{%s}", child)
	case OpCbrt:
		return fmt.Sprintf("\\sqrt[3]{%s}", child)
	case OpAbs:
		return fmt.Sprintf("\\left|%s\\right|", child)
	}
	name, ok := latexFunctions[u.Op]
	if !ok {
		name = fmt.Sprintf("\\operatorname{%s}", u.Op)
	}
	return fmt.Sprintf("%s{\\left(%s\\right)}", name, child)
}

func (b *BinaryNode) LaTeX() string {
	left := b.Left.LaTeX()
	right := b.Right.LaTeX()
	switch b.Op {
	case OpAdd:
		return fmt.Sprintf("{%s} + {%s}", left, right)
	case OpSub:
		return fmt.Sprintf("{%s} - {%s}", left, right)
	case OpMul:
		return fmt.Sprintf("{%s} \\cdot {%s}", left, right)
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	case OpPow:
		return fmt.Sprintf("{%s}^{%s}", latexParen(b.Left, PrecAtomic), right)
	default:
		return ""
	}
}

func (n *NaryNode) LaTeX() string {
	if n.Op == OpProduct {
		var num, den []string
		for _, t := range n.Terms {
			if isInv(t) {
				den = append(den, latexParen(absInv(t), PrecPow))
			} else {
				num = append(num, latexParen(t, PrecPow))
			}
		}
		numStr := "1"
		if len(num) > 0 {
			numStr = strings.Join(num, " \\cdot ")
		}
		if len(den) == 0 {
			return numStr
		}
		return fmt.Sprintf("\\frac{%s}{%s}", numStr, strings.Join(den, " \\cdot "))
	}

	if len(n.Terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range n.Terms {
		switch {
		case i == 0:
			sb.WriteString(t.LaTeX())
		case isNeg(t):
			sb.WriteString(" - ")
			sb.WriteString(latexParen(absNeg(t), PrecProduct))
		default:
			sb.WriteString(" + ")
			sb.WriteString(latexParen(t, PrecProduct))
		}
	}
	return sb.String()
}

func latexParen(e ExprNode, min Precedence) string {
	if e.Precedence() < min {
		return "\\left(" + e.LaTeX() + "\\right)"
	}
	return e.LaTeX()
}
