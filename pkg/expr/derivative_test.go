package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestDerivativeRules(t *testing.T) {
	tests := []struct {
		name string
		expr ExprNode
		want ExprNode
	}{
		{"constant", Int(5), Int(0)},
		{"named constant", Pi, Int(0)},
		{"same variable", Var("x"), Int(1)},
		{"other variable", Var("y"), Int(0)},
		{"power rule", Pow("x", 3), Mul(3, Pow("x", 2))},
		{"product rule", Mul("x", "y"), Var("y")},
		{"ln", Ln("x"), Inv("x")},
		{"sin", Sin("x"), Cos("x")},
		{"cos", Cos("x"), Neg(Sin("x"))},
		{"exp", Exp("x"), Exp("x")},
		{"reciprocal", Div(1, "x"), Neg(Inv(Pow("x", 2)))},
		{"linear", Add(Mul(3, "x"), 7), Int(3)},
		{"chain", Sin(Mul(2, "x")), Mul(2, Cos(Mul(2, "x")))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derivative(tt.expr, "x", 1)
			assert.True(t, Equal(got, tt.want), "d/dx %s = %s, want %s", tt.expr, got, tt.want)
		})
	}
}

func TestDerivativeDisplay(t *testing.T) {
	assert.Equal(t, "3 * x ** 2", Derivative(Pow("x", 3), "x", 1).String())
	assert.Equal(t, "1 / x", Derivative(Ln("x"), "x", 1).String())
	assert.Equal(t, "cos(x)", Derivative(Sin("x"), "x", 1).String())
}

func TestDerivativeHigherOrder(t *testing.T) {
	e := Pow("x", 3)
	assert.True(t, Equal(Derivative(e, "x", 0), e), "order 0 returns the input")
	assert.True(t, Equal(Derivative(e, "x", -1), e), "negative order returns the input")
	assert.True(t, Equal(Derivative(e, "x", 2), Mul(6, "x")))
	assert.True(t, Equal(Derivative(e, "x", 3), Int(6)))
	assert.True(t, Equal(Derivative(e, "x", 4), Int(0)))
}

func TestPartial(t *testing.T) {
	e := Mul("x", Pow("y", 2))
	got := Partial(e, "x", "y")
	assert.True(t, Equal(got, Mul(2, "y")), "got %s", got)

	// mixed partials agree numerically
	f := Add(Mul(Sin("x"), Exp("y")), Mul(Pow("x", 2), "y"))
	xy := Partial(f, "x", "y")
	yx := Partial(f, "y", "x")
	for _, p := range [][2]float64{{0.3, 0.1}, {1.2, -0.4}, {-0.7, 2}} {
		vars := map[string]float64{"x": p[0], "y": p[1]}
		a, err := Evaluate(xy, vars)
		require.NoError(t, err)
		b, err := Evaluate(yx, vars)
		require.NoError(t, err)
		assert.InDelta(t, a, b, 1e-12)
		assert.InDelta(t, math.Cos(p[0])*math.Exp(p[1])+2*p[0], a, 1e-12)
	}
}

// symbolic derivatives agree with central finite differences
func TestDerivativeNumeric(t *testing.T) {
	exprs := []ExprNode{
		Mul(Pow("x", 3), Sin("x")),
		Div(Exp("x"), Add("x", 1)),
		Ln(Add(Pow("x", 2), 1)),
		Sqrt(Add("x", 2)),
		Cbrt(Add("x", 3)),
		Tg(Mul(2, "x")),
		Ctg("x"),
		Arcsin(Div("x", 2)),
		Arccos(Div("x", 2)),
		Arctg(Pow("x", 2)),
		Arcctg("x"),
		Pow("x", "x"),
		Lg(Mul(3, "x")),
		Abs(Sub("x", 2)),
		Pow(Sin("x"), Cos("x")),
		Div(1, Add(1, Exp(Neg("x")))),
		Sub(Mul(E, "x"), Pow(Pi, "x")),
	}
	points := []float64{0.2, 0.45, 0.7, 0.95, 1.2}
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-5}

	for _, e := range exprs {
		d := Derivative(e, "x", 1)
		f := func(x float64) float64 {
			v, err := Evaluate(e, map[string]float64{"x": x})
			if err != nil {
				return math.NaN()
			}
			return v
		}
		for _, x0 := range points {
			want := fd.Derivative(f, x0, settings)
			got, err := Evaluate(d, map[string]float64{"x": x0})
			require.NoError(t, err)
			if math.IsNaN(want) || math.IsNaN(got) {
				continue
			}
			if !scalar.EqualWithinAbsOrRel(got, want, 1e-6, 1e-6) {
				t.Errorf("d/dx %s at %v: symbolic %s = %v, finite difference %v", e, x0, d, got, want)
			}
		}
	}
}

func TestTangentThirdDerivative(t *testing.T) {
	second := Derivative(Tg("x"), "x", 2)
	third := Derivative(Tg("x"), "x", 3)

	assert.Less(t, third.NodeCount(), 40, "third derivative grew to %s", third)
	assert.True(t, Equal(third, Simplify(third)))

	settings := &fd.Settings{Formula: fd.Central, Step: 1e-5}
	f := func(x float64) float64 {
		v, _ := Evaluate(second, map[string]float64{"x": x})
		return v
	}
	for _, x0 := range []float64{-0.5, 0.3, 0.7, 1.0} {
		got, err := Evaluate(third, map[string]float64{"x": x0})
		require.NoError(t, err)

		sec2 := 1 / (math.Cos(x0) * math.Cos(x0))
		tan2 := math.Tan(x0) * math.Tan(x0)
		assert.InEpsilon(t, 2*sec2*(1+3*tan2), got, 1e-9, "x=%v: %s", x0, third)
		assert.InEpsilon(t, fd.Derivative(f, x0, settings), got, 1e-5)
	}
}
