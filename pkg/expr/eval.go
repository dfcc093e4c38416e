package expr

import (
	"errors"
	"fmt"
)

// ErrUnboundVariable is matched by UnboundVariableError.
var ErrUnboundVariable = errors.New("expr: unbound variable")

// UnboundVariableError reports a variable with no value during evaluation.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("expr: unbound variable %q", e.Name)
}

func (e *UnboundVariableError) Unwrap() error { return ErrUnboundVariable }

// Bindings maps variable names to values.
type Bindings map[string]Number

// FloatBindings converts plain float values into Bindings.
func FloatBindings(vals map[string]float64) Bindings {
	env := make(Bindings, len(vals))
	for k, v := range vals {
		env[k] = FloatNumber(v)
	}
	return env
}

// Evaluate evaluates e with float bindings and returns a real result.
// Complex results with a negligible imaginary part collapse to their real
// part; other complex results are NaN.
func Evaluate(e ExprNode, vals map[string]float64) (float64, error) {
	v, err := e.Eval(FloatBindings(vals))
	if err != nil {
		return 0, err
	}
	return v.Float64(), nil
}

// Eval for VarNode looks the variable up in env.
func (v *VarNode) Eval(env Bindings) (Number, error) {
	val, ok := env[v.Name]
	if !ok {
		return Number{}, &UnboundVariableError{Name: v.Name}
	}
	return val, nil
}

func (c *IntNode) Eval(Bindings) (Number, error)        { return IntNumber(c.Val), nil }
func (c *FloatNode) Eval(Bindings) (Number, error)      { return FloatNumber(c.Val), nil }
func (c *ComplexNode) Eval(Bindings) (Number, error)    { return ComplexNumber(c.Val), nil }
func (c *NamedConstNode) Eval(Bindings) (Number, error) { return FloatNumber(c.Val), nil }

// Eval for UnaryNode dispatches on op through the catalog.
func (u *UnaryNode) Eval(env Bindings) (Number, error) {
	child, err := u.Child.Eval(env)
	if err != nil {
		return Number{}, err
	}
	d, ok := unaryDef(u.Op)
	if !ok {
		return NaN(), nil
	}
	return d.Eval(child), nil
}

// Eval for BinaryNode dispatches on op through the catalog.
func (b *BinaryNode) Eval(env Bindings) (Number, error) {
	left, err := b.Left.Eval(env)
	if err != nil {
		return Number{}, err
	}
	right, err := b.Right.Eval(env)
	if err != nil {
		return Number{}, err
	}
	d, ok := binaryDef(b.Op)
	if !ok {
		return NaN(), nil
	}
	return d.Eval(left, right), nil
}

// Eval for NaryNode folds its terms; the empty sum is 0 and the empty
// product is 1.
func (n *NaryNode) Eval(env Bindings) (Number, error) {
	acc, op := IntNumber(0), Number.Add
	if n.Op == OpProduct {
		acc, op = IntNumber(1), Number.Mul
	}
	for _, t := range n.Terms {
		v, err := t.Eval(env)
		if err != nil {
			return Number{}, err
		}
		acc = op(acc, v)
	}
	return acc, nil
}
