package expr

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// UnaryDef describes a unary operation: how it evaluates, its local
// derivative, and an optional rewrite rule.
type UnaryDef struct {
	// Name is the display name. Functions render as Name(arg).
	Name string
	// Eval is the forward formula.
	Eval func(x Number) Number
	// Local returns d op(x) / dx, before chain-rule composition.
	Local func(x ExprNode) ExprNode
	// Rule rewrites op(x) given an already simplified x. It returns nil
	// when it does not apply.
	Rule func(x ExprNode) ExprNode
}

// BinaryDef describes a binary operation.
type BinaryDef struct {
	Symbol string
	Eval   func(a, b Number) Number
	// Local returns the partial derivatives with respect to the left and
	// right operand.
	Local func(l, r ExprNode) (ExprNode, ExprNode)
	Rule  func(l, r ExprNode) ExprNode
}

var (
	// ErrDuplicateFunction is returned when registering a taken name.
	ErrDuplicateFunction = errors.New("expr: function already registered")
	// ErrInvalidFunction is returned for incomplete function definitions.
	ErrInvalidFunction = errors.New("expr: invalid function definition")
)

var (
	catalogMu   sync.RWMutex
	unaryDefs   []UnaryDef
	functionIdx map[string]UnaryOp
	binaryDefs  [numBinary]BinaryDef
)

func init() {
	unaryDefs = make([]UnaryDef, numBuiltinUnary)
	functionIdx = make(map[string]UnaryOp)
	registerOperators()
	registerFunctions()

	for op := UnaryOp(0); op < numBuiltinUnary; op++ {
		d := unaryDefs[op]
		if d.Name == "" || d.Eval == nil || d.Local == nil {
			panic(fmt.Sprintf("expr: unary op %d has no complete definition", op))
		}
	}
	for op := BinaryOp(0); op < numBinary; op++ {
		d := binaryDefs[op]
		if d.Symbol == "" || d.Eval == nil || d.Local == nil || d.Rule == nil {
			panic(fmt.Sprintf("expr: binary op %d has no complete definition", op))
		}
	}
}

func registerOperators() {
	unaryDefs[OpNeg] = UnaryDef{
		Name:  "-",
		Eval:  func(x Number) Number { return x.Neg() },
		Local: func(ExprNode) ExprNode { return intc(-1) },
		Rule:  negRule,
	}
	unaryDefs[OpInv] = UnaryDef{
		Name:  "1/",
		Eval:  func(x Number) Number { return IntNumber(1).Div(x) },
		Local: func(x ExprNode) ExprNode { return neg(inv(pow(x, intc(2)))) },
		Rule:  invRule,
	}

	binaryDefs[OpAdd] = BinaryDef{
		Symbol: "+",
		Eval:   Number.Add,
		Local:  func(l, r ExprNode) (ExprNode, ExprNode) { return intc(1), intc(1) },
		Rule:   func(l, r ExprNode) ExprNode { return sum(l, r) },
	}
	binaryDefs[OpSub] = BinaryDef{
		Symbol: "-",
		Eval:   Number.Sub,
		Local:  func(l, r ExprNode) (ExprNode, ExprNode) { return intc(1), intc(-1) },
		Rule:   func(l, r ExprNode) ExprNode { return sum(l, neg(r)) },
	}
	binaryDefs[OpMul] = BinaryDef{
		Symbol: "*",
		Eval:   Number.Mul,
		Local:  func(l, r ExprNode) (ExprNode, ExprNode) { return r, l },
		Rule:   func(l, r ExprNode) ExprNode { return prod(l, r) },
	}
	binaryDefs[OpDiv] = BinaryDef{
		Symbol: "/",
		Eval:   Number.Div,
		Local: func(l, r ExprNode) (ExprNode, ExprNode) {
			return inv(r), neg(prod(l, inv(pow(r, intc(2)))))
		},
		Rule: func(l, r ExprNode) ExprNode { return prod(l, inv(r)) },
	}
	binaryDefs[OpPow] = BinaryDef{
		Symbol: "**",
		Eval:   Number.Pow,
		// d/dl = r * l**(r-1), d/dr = l**r * ln(l)
		Local: func(l, r ExprNode) (ExprNode, ExprNode) {
			return prod(r, pow(l, sum(r, neg(intc(1))))), prod(pow(l, r), apply(OpLn, l))
		},
		Rule: powRule,
	}
}

// RegisterFunction adds a unary function to the catalog and returns its op.
// The definition needs a name, a forward formula and a local derivative;
// the rewrite rule is optional. Registered functions take part in parsing,
// evaluation, differentiation and simplification like the built-in ones.
func RegisterFunction(def UnaryDef) (UnaryOp, error) {
	if !isIdent(def.Name) || def.Eval == nil || def.Local == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFunction, def.Name)
	}
	if _, ok := namedConstants[def.Name]; ok {
		return 0, fmt.Errorf("%w: %q names a constant", ErrDuplicateFunction, def.Name)
	}

	catalogMu.Lock()
	defer catalogMu.Unlock()
	if _, ok := functionIdx[def.Name]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateFunction, def.Name)
	}
	op := UnaryOp(len(unaryDefs))
	unaryDefs = append(unaryDefs, def)
	functionIdx[def.Name] = op
	return op, nil
}

// LookupFunction resolves a function name such as "sin" to its op.
func LookupFunction(name string) (UnaryOp, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	op, ok := functionIdx[name]
	return op, ok
}

// Functions returns the registered function names, sorted.
func Functions() []string {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	names := make([]string, 0, len(functionIdx))
	for name := range functionIdx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unaryDef(op UnaryOp) (UnaryDef, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	if op < 0 || int(op) >= len(unaryDefs) {
		return UnaryDef{}, false
	}
	return unaryDefs[op], true
}

func binaryDef(op BinaryOp) (BinaryDef, bool) {
	if op < 0 || op >= numBinary {
		return BinaryDef{}, false
	}
	return binaryDefs[op], true
}

// IsFunction reports whether op renders as a function call.
func (op UnaryOp) IsFunction() bool { return op != OpNeg && op != OpInv }

func (op UnaryOp) String() string {
	if d, ok := unaryDef(op); ok {
		return d.Name
	}
	return fmt.Sprintf("unary(%d)", int(op))
}

func (op BinaryOp) String() string {
	if d, ok := binaryDef(op); ok {
		return d.Symbol
	}
	return fmt.Sprintf("binary(%d)", int(op))
}

func (op NaryOp) String() string {
	if op == OpProduct {
		return "product"
	}
	return "sum"
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentRune(r, i == 0) {
			return false
		}
	}
	return true
}

func isIdentRune(r rune, first bool) bool {
	switch {
	case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return true
	case !first && r >= '0' && r <= '9':
		return true
	}
	return false
}
