package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

// registerWrongSquare adds a function whose local derivative is wrong on
// purpose: wsq(x) = x**2 with d/dx claimed to be 3x.
func registerWrongSquare(t *testing.T) expr.UnaryOp {
	t.Helper()
	op, err := expr.RegisterFunction(expr.UnaryDef{
		Name:  "wsq",
		Eval:  func(x expr.Number) expr.Number { return x.Mul(x) },
		Local: func(x expr.ExprNode) expr.ExprNode { return expr.Mul(3, x) },
	})
	if errors.Is(err, expr.ErrDuplicateFunction) {
		op, _ = expr.LookupFunction("wsq")
		return op
	}
	require.NoError(t, err)
	return op
}

func TestCorrectDigits(t *testing.T) {
	tests := []struct {
		computed, target float64
		want             float64
	}{
		{1, 1, MaxDigits},
		{0, 0, MaxDigits},
		{1.001, 1, 3},
		{1e-8, 0, 8},
		{2, 1, 0},
		{100, 1, 0},
	}
	for _, tt := range tests {
		got := CorrectDigits(tt.computed, tt.target)
		assert.InDelta(t, tt.want, got, 1e-6, "CorrectDigits(%v, %v)", tt.computed, tt.target)
	}
}

func TestEvaluatePasses(t *testing.T) {
	tests := []struct {
		name string
		c    Case
	}{
		{"polynomial", Case{Expr: expr.Add(expr.Mul(3, expr.Pow("x", 4)), expr.Neg("x"), 7), Var: "x"}},
		{"product", Case{Expr: expr.Mul(expr.Pow("x", 3), expr.Sin("x")), Var: "x"}},
		{"quotient", Case{Expr: expr.Div(expr.Exp("x"), expr.Add(expr.Pow("x", 2), 1)), Var: "x"}},
		{"chain", Case{Expr: expr.Cos(expr.Mul(2, expr.Arctg("x"))), Var: "x"}},
		{"third order", Case{Expr: expr.Pow("x", 5), Var: "x", Order: 3}},
		{"tangent", Case{Expr: expr.Tg("x"), Var: "x", Order: 2}},
		{"other variable", Case{Expr: expr.Mul("x", expr.Sin("y")), Var: "x"}},
		{"constant", Case{Expr: expr.Int(3), Var: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(tt.c, DefaultSettings())
			assert.Equal(t, Pass, r.Outcome, "failures: %v", r.Failures)
			assert.True(t, r.Idempotent)
			assert.Positive(t, r.Compared)
			assert.Greater(t, r.MeanDigits(), 5.0)
			assert.LessOrEqual(t, r.MinDigits(), r.MeanDigits())
		})
	}
}

func TestEvaluateOrder(t *testing.T) {
	r := Evaluate(Case{Expr: expr.Pow("x", 5), Var: "x", Order: 3}, DefaultSettings())
	assert.Equal(t, "60 * x ** 2", r.Derivative.String())

	// order below one checks the first derivative
	r = Evaluate(Case{Expr: expr.Pow("x", 2), Var: "x"}, DefaultSettings())
	assert.Equal(t, "2 * x", r.Derivative.String())
}

func TestEvaluateSkipped(t *testing.T) {
	// ln(-x**2) has no real value at any sample point
	r := Evaluate(Case{Expr: expr.Ln(expr.Neg(expr.Pow("x", 2))), Var: "x"}, DefaultSettings())
	assert.Equal(t, Skipped, r.Outcome)
	assert.Zero(t, r.Compared)
	assert.Zero(t, r.MeanDigits())
	assert.Zero(t, r.MinDigits())
}

func TestEvaluateFailsOnWrongDerivative(t *testing.T) {
	wsq := registerWrongSquare(t)
	r := Evaluate(Case{Expr: expr.Apply(wsq, "x"), Var: "x"}, DefaultSettings())
	assert.Equal(t, Fail, r.Outcome)
	require.NotEmpty(t, r.Failures)
	assert.Contains(t, r.Failures[0], "derivative order 1")
}

func TestShrink(t *testing.T) {
	wsq := registerWrongSquare(t)
	c := Case{
		Expr: expr.Add(expr.Sin("x"), expr.Mul(2, expr.Apply(wsq, expr.Cos("x")))),
		Var:  "x",
	}
	got := Shrink(c, DefaultSettings())
	assert.True(t, expr.Equal(got.Expr, expr.Apply(wsq, "x")), "shrunk to %s", got.Expr)
	assert.Equal(t, Fail, Evaluate(got, DefaultSettings()).Outcome)

	passing := Case{Expr: expr.Sin("x"), Var: "x"}
	assert.True(t, expr.Equal(Shrink(passing, DefaultSettings()).Expr, passing.Expr))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "pass", Pass.String())
	assert.Equal(t, "fail", Fail.String())
	assert.Equal(t, "skipped", Skipped.String())
}
