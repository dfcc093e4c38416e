package engine

import (
	"fmt"
	"math"

	"github.com/wildfunctions/symdiff/pkg/check"
	"github.com/wildfunctions/symdiff/pkg/expr"
)

// DescribeOptions selects what Describe computes.
type DescribeOptions struct {
	// Var is the variable to differentiate by. Empty picks the first free
	// variable, or x for a constant expression.
	Var   string
	Order int
	// At, when set, evaluates the expression and its derivative there.
	At *float64
	// Check runs the numeric checks on the expression as well.
	Check    bool
	Settings check.Settings
}

// ExprReport describes one expression.
type ExprReport struct {
	Input           string      `json:"input" yaml:"input"`
	Simplified      string      `json:"simplified" yaml:"simplified"`
	LaTeX           string      `json:"latex" yaml:"latex"`
	Var             string      `json:"var" yaml:"var"`
	Order           int         `json:"order" yaml:"order"`
	Derivative      string      `json:"derivative" yaml:"derivative"`
	DerivativeLaTeX string      `json:"derivative_latex" yaml:"derivative_latex"`
	At              *float64    `json:"at,omitempty" yaml:"at,omitempty"`
	Value           *float64    `json:"value,omitempty" yaml:"value,omitempty"`
	DerivativeValue *float64    `json:"derivative_value,omitempty" yaml:"derivative_value,omitempty"`
	Check           *CaseReport `json:"check,omitempty" yaml:"check,omitempty"`
}

// Describe parses input, simplifies it and differentiates it.
func Describe(input string, opts DescribeOptions) (ExprReport, error) {
	e, err := expr.Parse(input)
	if err != nil {
		return ExprReport{}, fmt.Errorf("parse %q: %w", input, err)
	}

	wrt := opts.Var
	if wrt == "" {
		wrt = "x"
		if vars := expr.FreeVariables(e); len(vars) > 0 {
			wrt = vars[0]
		}
	}
	order := opts.Order
	if order < 1 {
		order = 1
	}

	s := expr.Simplify(e)
	d := expr.Derivative(e, wrt, order)
	r := ExprReport{
		Input:           input,
		Simplified:      s.String(),
		LaTeX:           s.LaTeX(),
		Var:             wrt,
		Order:           order,
		Derivative:      d.String(),
		DerivativeLaTeX: d.LaTeX(),
	}

	if opts.At != nil {
		at := *opts.At
		vars := map[string]float64{wrt: at}
		v, err := expr.Evaluate(s, vars)
		if err != nil {
			return r, fmt.Errorf("evaluate %s at %s=%g: %w", s, wrt, at, err)
		}
		dv, err := expr.Evaluate(d, vars)
		if err != nil {
			return r, fmt.Errorf("evaluate %s at %s=%g: %w", d, wrt, at, err)
		}
		r.At = &at
		r.Value = finiteOrNil(v)
		r.DerivativeValue = finiteOrNil(dv)
	}

	if opts.Check {
		c := check.Case{Expr: e, Var: wrt, Order: order}
		cr := newCaseReport(0, c, check.Evaluate(c, opts.Settings))
		r.Check = &cr
	}
	return r, nil
}

// finiteOrNil drops values that JSON cannot carry.
func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
