package expr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  ExprNode
	}{
		{"x", Var("x")},
		{"42", Int(42)},
		{"2.5", Float(2.5)},
		{"1e3", Float(1000)},
		{".5", Float(0.5)},
		{"3i", Complex(3i)},
		{"pi", Pi},
		{"-3", Int(-3)},
		{"-x", Neg("x")},
		{"-(3)", Neg(3)},
		{"-2 ** 2", Neg(Pow(2, 2))},
		{"x + 2 * y", Add("x", Mul(2, "y"))},
		{"x - y", Sub("x", "y")},
		{"x / y", Div("x", "y")},
		{"1 / x", Inv("x")},
		{"1 / x / y", Mul(Inv("x"), Inv("y"))},
		{"2 / x", Div(2, "x")},
		{"2 ^ 3", Pow(2, 3)},
		{"x ** y ** z", Pow("x", Pow("y", "z"))},
		{"x ** -1", Pow("x", -1)},
		{"sin(x) * e", Mul(Sin("x"), E)},
		{"ln(x ** 2 + 1)", Ln(Add(Pow("x", 2), 1))},
		{"(a + b) + c", Add("a", "b", "c")},
		{"  x\t+\n1 ", Add("x", 1)},
		{"99999999999999999999", Float(1e20)},
		{"(1+2i)", Complex(1 + 2i)},
		{"(-1.5-2i)", Complex(-1.5 - 2i)},
		{"(2 - 3i) * x", Mul(Complex(2-3i), "x")},
		{"(1 + x)", Add(1, "x")},
		{"(-3) ** 2", Pow(Int(-3), 2)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, Equal(got, tt.want), "Parse(%q) = %s, want %s", tt.input, got, tt.want)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{"", 0},
		{"x +", 3},
		{"(x", 2},
		{"foo(x)", 0},
		{"sin", 0},
		{"x $ y", 2},
		{"x y", 2},
		{"2 * )", 4},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %T", err)
			assert.Equal(t, tt.pos, pe.Pos, pe.Msg)
			assert.True(t, errors.Is(err, ErrSyntax))
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("(") })
	assert.NotPanics(t, func() { MustParse("x") })
}

func TestRoundTrip(t *testing.T) {
	exprs := []ExprNode{
		Add("x", Neg("y"), Mul(2, "z")),
		Add(Neg("x"), "y"),
		Div("x", Add("y", 1)),
		Mul(Inv("x"), "y"),
		Pow(Add("x", 1), 2),
		Pow("x", Neg("y")),
		Neg(Add("x", "y")),
		Neg(Mul(2, "x")),
		Mul(3, Pow(Cos("x"), 2)),
		Pow("x", Pow("y", 2)),
		Pow(Pow("x", 2), 3),
		Mul(Neg("x"), "y"),
		Sin(Add(Mul(2, "x"), 1)),
		Sub(Mul(E, "x"), Pow(Pi, "x")),
		Mul(2.5, "x"),
		Add("x", 1.0),
		Sub("x", 2),
		Sqrt(Div(Abs("x"), Add(Arctg("x"), 1))),
		Derivative(Pow("x", 3), "x", 1),
		Derivative(Ln("x"), "x", 1),
		Derivative(Tg("x"), "x", 2),
		Complex(1 + 2i),
		Complex(3i),
		Mul(Complex(-1-2.5i), "x"),
		Add("x", Complex(3i)),
	}
	for _, e := range exprs {
		s := e.String()
		got, err := Parse(s)
		require.NoError(t, err, s)
		assert.True(t, Equal(got, e), "Parse(%q) = %s", s, got)
		assert.Equal(t, s, got.String())
	}
}

func TestRoundTripSimplified(t *testing.T) {
	exprs := []ExprNode{
		Add(Neg(1), Neg("x")),
		Sub(Neg(2.5), "x"),
		Sub(3, Add("x", 5)),
		Sub(Neg(Pow("x", 2)), 1),
		Inv(Int(-2)),
		Add(Complex(1i), 2),
		Derivative(Sub(1, Mul("x", Add("x", 1))), "x", 1),
	}
	for _, e := range exprs {
		s := Simplify(e)
		got, err := Parse(s.String())
		require.NoError(t, err, s.String())
		assert.True(t, Equal(got, s), "Parse(%q) = %s", s.String(), got)
	}

	// a negated leading constant reads back as the negative literal
	s := Simplify(Add(Neg(1), Neg("x")))
	assert.Equal(t, "-1 - x", s.String())
}
