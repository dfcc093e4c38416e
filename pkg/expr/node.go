package expr

// ExprNode is the interface for all expression tree nodes.
//
// Nodes are immutable once built: no exported operation mutates a node in
// place, so trees and subtrees may be shared freely, including across
// goroutines.
type ExprNode interface {
	Eval(env Bindings) (Number, error)
	Operands() []ExprNode
	Precedence() Precedence
	String() string
	LaTeX() string
	Clone() ExprNode
	NodeCount() int
	Depth() int
}

// Precedence orders node kinds for parenthesization. Higher binds tighter.
type Precedence int

const (
	PrecNeg Precedence = iota
	PrecSum
	PrecProduct
	PrecPow
	PrecAtomic
)

// UnaryOp identifies a unary operation: negation, reciprocal, or a
// catalog function.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpInv
	OpExp
	OpLn
	OpLg
	OpSqrt
	OpCbrt
	OpAbs
	OpSin
	OpCos
	OpTg
	OpCtg
	OpArcsin
	OpArccos
	OpArctg
	OpArcctg

	numBuiltinUnary
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow

	numBinary
)

// NaryOp identifies a flattened n-ary operation.
type NaryOp int

const (
	OpSum NaryOp = iota
	OpProduct
)

// VarNode represents a free variable.
type VarNode struct {
	Name string
}

// IntNode represents an integer constant.
type IntNode struct {
	Val int64
}

// FloatNode represents a floating point constant.
type FloatNode struct {
	Val float64
}

// ComplexNode represents a complex constant.
type ComplexNode struct {
	Val complex128
}

// NamedConstNode represents a named mathematical constant such as e.
type NamedConstNode struct {
	Name string
	Val  float64
}

// UnaryNode applies a unary operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child ExprNode
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right ExprNode
}

// NaryNode is a flattened sum or product. Build it with NewNary (or the
// Add/Mul builders) so the flattening invariant holds: no direct child of a
// sum is a sum, and no direct child of a product is a product.
type NaryNode struct {
	Op    NaryOp
	Terms []ExprNode
}

// Operands

func (v *VarNode) Operands() []ExprNode        { return nil }
func (c *IntNode) Operands() []ExprNode        { return nil }
func (c *FloatNode) Operands() []ExprNode      { return nil }
func (c *ComplexNode) Operands() []ExprNode    { return nil }
func (c *NamedConstNode) Operands() []ExprNode { return nil }
func (u *UnaryNode) Operands() []ExprNode      { return []ExprNode{u.Child} }
func (b *BinaryNode) Operands() []ExprNode     { return []ExprNode{b.Left, b.Right} }

// Operands returns a copy of the terms; callers may modify the slice.
func (n *NaryNode) Operands() []ExprNode {
	out := make([]ExprNode, len(n.Terms))
	copy(out, n.Terms)
	return out
}
