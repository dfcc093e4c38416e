// Package check verifies the symbolic engine on one expression at a time:
// simplification must reach a fixed point and preserve values, and
// symbolic derivatives must agree with central finite differences.
package check

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

// Case is one expression to verify.
type Case struct {
	Expr expr.ExprNode
	// Var is the variable to differentiate by and to sample.
	Var string
	// Order is the derivative order checked; values below 1 mean 1.
	Order int
}

// Settings controls sampling and tolerances.
type Settings struct {
	Points []float64
	// Step is the finite-difference step.
	Step   float64
	AbsTol float64
	RelTol float64
	// Others is bound to every free variable other than Case.Var.
	Others float64
}

// DefaultSettings returns the settings used by the engine.
func DefaultSettings() Settings {
	return Settings{
		Points: []float64{-1.3, -0.4, 0.35, 0.9, 1.7, 2.6},
		Step:   1e-5,
		AbsTol: 1e-6,
		RelTol: 1e-5,
		Others: 0.7,
	}
}

// Outcome classifies a checked case.
type Outcome int

const (
	Pass Outcome = iota
	Fail
	// Skipped means no sample point had finite values on both sides.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	default:
		return "skipped"
	}
}

// Result holds the result of checking one case.
type Result struct {
	Simplified expr.ExprNode
	Derivative expr.ExprNode
	Idempotent bool
	// Compared counts the sample comparisons made, over both checks.
	Compared int
	// Digits are the correct digits of each comparison.
	Digits   []float64
	Failures []string
	Outcome  Outcome
	Elapsed  time.Duration
}

// MeanDigits returns the mean digit agreement, or 0 with no comparisons.
func (r Result) MeanDigits() float64 {
	if len(r.Digits) == 0 {
		return 0
	}
	return stat.Mean(r.Digits, nil)
}

// MinDigits returns the worst digit agreement, or 0 with no comparisons.
func (r Result) MinDigits() float64 {
	if len(r.Digits) == 0 {
		return 0
	}
	return floats.Min(r.Digits)
}

// Evaluate runs every check on c.
func Evaluate(c Case, s Settings) Result {
	start := time.Now()
	order := c.Order
	if order < 1 {
		order = 1
	}

	var r Result
	r.Simplified = expr.Simplify(c.Expr)
	r.Idempotent = expr.Equal(r.Simplified, expr.Simplify(r.Simplified))
	if !r.Idempotent {
		r.Failures = append(r.Failures, fmt.Sprintf("simplify is not idempotent on %s", r.Simplified))
	}

	env := bindings(c, s)
	at := func(e expr.ExprNode) func(float64) float64 {
		return func(x float64) float64 {
			env[c.Var] = x
			v, err := expr.Evaluate(e, env)
			if err != nil {
				return math.NaN()
			}
			return v
		}
	}

	orig, simp := at(c.Expr), at(r.Simplified)
	for _, x := range s.Points {
		r.compare(s, s.AbsTol, "simplified", x, simp(x), orig(x))
	}

	prev := expr.Derivative(c.Expr, c.Var, order-1)
	r.Derivative = expr.Derivative(prev, c.Var, 1)
	sym, num := at(r.Derivative), at(prev)
	settings := &fd.Settings{Formula: fd.Central, Step: s.Step}
	what := fmt.Sprintf("derivative order %d", order)
	for _, x := range s.Points {
		// the difference quotient carries rounding noise proportional to |f|/h
		noise := 100 * epsilon * (math.Abs(num(x)) + 1) / s.Step
		if !finite(noise) {
			noise = 0
		}
		r.compare(s, s.AbsTol+noise, what, x, sym(x), fd.Derivative(num, x, settings))
	}

	switch {
	case len(r.Failures) > 0:
		r.Outcome = Fail
	case r.Compared == 0:
		r.Outcome = Skipped
	default:
		r.Outcome = Pass
	}
	r.Elapsed = time.Since(start)
	return r
}

// compare records one comparison. Points where either side is not finite
// are outside the domain and do not count.
func (r *Result) compare(s Settings, absTol float64, what string, x, got, want float64) {
	if !finite(got) || !finite(want) {
		return
	}
	r.Compared++
	r.Digits = append(r.Digits, CorrectDigits(got, want))
	if !scalar.EqualWithinAbsOrRel(got, want, absTol, s.RelTol) {
		r.Failures = append(r.Failures, fmt.Sprintf("%s at %g: got %g, want %g", what, x, got, want))
	}
}

func bindings(c Case, s Settings) map[string]float64 {
	env := make(map[string]float64)
	for _, name := range expr.FreeVariables(c.Expr) {
		env[name] = s.Others
	}
	env[c.Var] = 0
	return env
}

const epsilon = 0x1p-52

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
