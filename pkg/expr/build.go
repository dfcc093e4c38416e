package expr

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedLiteral is matched by LiftError.
var ErrUnsupportedLiteral = errors.New("expr: unsupported literal type")

// LiftError reports a value that cannot be turned into an expression.
type LiftError struct {
	Value any
}

func (e *LiftError) Error() string {
	return fmt.Sprintf("expr: cannot lift %T (%v) into an expression", e.Value, e.Value)
}

func (e *LiftError) Unwrap() error { return ErrUnsupportedLiteral }

var namedConstants = map[string]float64{
	"e":  math.E,
	"pi": math.Pi,
}

// E and Pi are the predeclared named constants.
var (
	E  = &NamedConstNode{Name: "e", Val: math.E}
	Pi = &NamedConstNode{Name: "pi", Val: math.Pi}
)

// NamedConst returns the predeclared constant with the given name.
func NamedConst(name string) (*NamedConstNode, bool) {
	v, ok := namedConstants[name]
	if !ok {
		return nil, false
	}
	return &NamedConstNode{Name: name, Val: v}, true
}

// Var returns a variable node.
func Var(name string) *VarNode { return &VarNode{Name: name} }

// Int returns an integer constant node.
func Int(v int64) *IntNode { return &IntNode{Val: v} }

// Float returns a float constant node.
func Float(v float64) *FloatNode { return &FloatNode{Val: v} }

// Complex returns a complex constant node.
func Complex(v complex128) *ComplexNode { return &ComplexNode{Val: v} }

// Lift converts a Go value into an expression: integers, floats and
// complex numbers become constants, a non-empty string becomes a variable,
// a Number becomes the constant of its kind and an ExprNode is returned as
// is. Any other value yields a *LiftError.
func Lift(v any) (ExprNode, error) {
	switch x := v.(type) {
	case ExprNode:
		if x == nil {
			return nil, &LiftError{Value: v}
		}
		return x, nil
	case Number:
		return x.Node(), nil
	case string:
		if x == "" {
			return nil, &LiftError{Value: v}
		}
		return &VarNode{Name: x}, nil
	case int:
		return &IntNode{Val: int64(x)}, nil
	case int8:
		return &IntNode{Val: int64(x)}, nil
	case int16:
		return &IntNode{Val: int64(x)}, nil
	case int32:
		return &IntNode{Val: int64(x)}, nil
	case int64:
		return &IntNode{Val: x}, nil
	case uint8:
		return &IntNode{Val: int64(x)}, nil
	case uint16:
		return &IntNode{Val: int64(x)}, nil
	case uint32:
		return &IntNode{Val: int64(x)}, nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return &FloatNode{Val: float64(x)}, nil
		}
		return &IntNode{Val: int64(x)}, nil
	case uint64:
		if x > math.MaxInt64 {
			return &FloatNode{Val: float64(x)}, nil
		}
		return &IntNode{Val: int64(x)}, nil
	case float32:
		return &FloatNode{Val: float64(x)}, nil
	case float64:
		return &FloatNode{Val: x}, nil
	case complex64:
		return &ComplexNode{Val: complex128(x)}, nil
	case complex128:
		return &ComplexNode{Val: x}, nil
	default:
		return nil, &LiftError{Value: v}
	}
}

// MustLift is like Lift but panics with the *LiftError.
func MustLift(v any) ExprNode {
	e, err := Lift(v)
	if err != nil {
		panic(err)
	}
	return e
}

func mustLiftAll(vs []any) []ExprNode {
	out := make([]ExprNode, len(vs))
	for i, v := range vs {
		out[i] = MustLift(v)
	}
	return out
}

// The builders below accept anything Lift accepts and panic on anything
// else, the way arithmetic on an unsupported operand fails immediately.

// Neg returns -x.
func Neg(x any) ExprNode { return neg(MustLift(x)) }

// Inv returns 1/x.
func Inv(x any) ExprNode { return inv(MustLift(x)) }

// Add returns the flattened sum of the terms.
func Add(terms ...any) ExprNode { return sum(mustLiftAll(terms)...) }

// Sub returns a - b, built as a + (-b).
func Sub(a, b any) ExprNode { return sum(MustLift(a), neg(MustLift(b))) }

// Mul returns the flattened product of the factors.
func Mul(factors ...any) ExprNode { return prod(mustLiftAll(factors)...) }

// Div returns a / b, built as a * (1/b).
func Div(a, b any) ExprNode { return prod(MustLift(a), inv(MustLift(b))) }

// Pow returns base ** exp.
func Pow(base, exp any) ExprNode { return pow(MustLift(base), MustLift(exp)) }

// Binary returns an explicit binary node.
func Binary(op BinaryOp, l, r any) ExprNode {
	return &BinaryNode{Op: op, Left: MustLift(l), Right: MustLift(r)}
}

// Apply applies a unary op or registered function to x.
func Apply(op UnaryOp, x any) ExprNode { return apply(op, MustLift(x)) }

func Exp(x any) ExprNode    { return Apply(OpExp, x) }
func Ln(x any) ExprNode     { return Apply(OpLn, x) }
func Lg(x any) ExprNode     { return Apply(OpLg, x) }
func Sqrt(x any) ExprNode   { return Apply(OpSqrt, x) }
func Cbrt(x any) ExprNode   { return Apply(OpCbrt, x) }
func Abs(x any) ExprNode    { return Apply(OpAbs, x) }
func Sin(x any) ExprNode    { return Apply(OpSin, x) }
func Cos(x any) ExprNode    { return Apply(OpCos, x) }
func Tg(x any) ExprNode     { return Apply(OpTg, x) }
func Ctg(x any) ExprNode    { return Apply(OpCtg, x) }
func Arcsin(x any) ExprNode { return Apply(OpArcsin, x) }
func Arccos(x any) ExprNode { return Apply(OpArccos, x) }
func Arctg(x any) ExprNode  { return Apply(OpArctg, x) }
func Arcctg(x any) ExprNode { return Apply(OpArcctg, x) }

// NewNary builds a flattened sum or product. Nested nodes of the same op
// are spliced in; inside a sum a negated sum contributes its terms negated,
// and inside a product a reciprocal product contributes its factors
// inverted.
func NewNary(op NaryOp, terms ...ExprNode) *NaryNode {
	return &NaryNode{Op: op, Terms: flatten(op, terms, nil)}
}

func flatten(op NaryOp, terms []ExprNode, out []ExprNode) []ExprNode {
	wrap := OpNeg
	if op == OpProduct {
		wrap = OpInv
	}
	for _, t := range terms {
		switch n := t.(type) {
		case *NaryNode:
			if n.Op == op {
				out = flatten(op, n.Terms, out)
				continue
			}
		case *UnaryNode:
			if inner, ok := n.Child.(*NaryNode); ok && n.Op == wrap && inner.Op == op {
				for _, it := range flatten(op, inner.Terms, nil) {
					out = append(out, &UnaryNode{Op: wrap, Child: it})
				}
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Internal constructors over already-lifted nodes.

func intc(v int64) ExprNode                 { return &IntNode{Val: v} }
func neg(x ExprNode) ExprNode               { return &UnaryNode{Op: OpNeg, Child: x} }
func inv(x ExprNode) ExprNode               { return &UnaryNode{Op: OpInv, Child: x} }
func apply(op UnaryOp, x ExprNode) ExprNode { return &UnaryNode{Op: op, Child: x} }
func pow(b, e ExprNode) ExprNode            { return &BinaryNode{Op: OpPow, Left: b, Right: e} }
func sum(terms ...ExprNode) ExprNode        { return NewNary(OpSum, terms...) }
func prod(terms ...ExprNode) ExprNode       { return NewNary(OpProduct, terms...) }
