package expr

import (
	"math"
	"math/cmplx"
)

func registerFunctions() {
	fn := func(op UnaryOp, d UnaryDef) {
		unaryDefs[op] = d
		functionIdx[d.Name] = op
	}

	fn(OpExp, UnaryDef{
		Name:  "exp",
		Eval:  func(x Number) Number { return mapReal(x, math.Exp, cmplx.Exp) },
		Local: func(x ExprNode) ExprNode { return apply(OpExp, x) },
		Rule: func(x ExprNode) ExprNode {
			if isInt(x, 0) {
				return intc(1)
			}
			return nil
		},
	})
	fn(OpLn, UnaryDef{
		Name: "ln",
		Eval: func(x Number) Number {
			return mapReal(x, func(v float64) float64 {
				if v <= 0 {
					return math.NaN()
				}
				return math.Log(v)
			}, cmplx.Log)
		},
		Local: func(x ExprNode) ExprNode { return inv(x) },
		Rule:  lnRule,
	})
	fn(OpLg, UnaryDef{
		Name: "lg",
		Eval: func(x Number) Number {
			return mapReal(x, func(v float64) float64 {
				if v <= 0 {
					return math.NaN()
				}
				return math.Log10(v)
			}, cmplx.Log10)
		},
		Local: func(x ExprNode) ExprNode { return inv(prod(x, apply(OpLn, intc(10)))) },
		Rule: func(x ExprNode) ExprNode {
			if isInt(x, 1) {
				return intc(0)
			}
			if isInt(x, 10) {
				return intc(1)
			}
			return nil
		},
	})
	fn(OpSqrt, UnaryDef{
		Name: "sqrt",
		Eval: func(x Number) Number {
			return mapReal(x, func(v float64) float64 {
				if v < 0 {
					return math.NaN()
				}
				return math.Sqrt(v)
			}, cmplx.Sqrt)
		},
		Local: func(x ExprNode) ExprNode { return inv(prod(intc(2), apply(OpSqrt, x))) },
		Rule: func(x ExprNode) ExprNode {
			// sqrt of a perfect square constant: sqrt(k²) = k
			if c, ok := x.(*IntNode); ok && c.Val >= 0 {
				root := int64(math.Sqrt(float64(c.Val)))
				if root*root == c.Val {
					return intc(root)
				}
			}
			return nil
		},
	})
	fn(OpCbrt, UnaryDef{
		Name: "cbrt",
		Eval: func(x Number) Number {
			return mapReal(x, math.Cbrt, func(z complex128) complex128 {
				if imag(z) != 0 {
					return cmplx.NaN()
				}
				return complex(math.Cbrt(real(z)), 0)
			})
		},
		Local: func(x ExprNode) ExprNode {
			return inv(prod(intc(3), pow(apply(OpCbrt, x), intc(2))))
		},
		Rule: func(x ExprNode) ExprNode {
			if c, ok := x.(*IntNode); ok {
				root := int64(math.Round(math.Cbrt(float64(c.Val))))
				if root*root*root == c.Val {
					return intc(root)
				}
			}
			return nil
		},
	})
	fn(OpAbs, UnaryDef{
		Name: "abs",
		Eval: func(x Number) Number {
			switch x.Kind() {
			case IntKind:
				if x.i < 0 {
					return x.Neg()
				}
				return x
			case FloatKind:
				return FloatNumber(math.Abs(x.f))
			default:
				if x.IsNaN() {
					return NaN()
				}
				return FloatNumber(cmplx.Abs(x.c))
			}
		},
		Local: func(x ExprNode) ExprNode { return prod(apply(OpAbs, x), inv(x)) },
		Rule:  absRule,
	})

	fn(OpSin, UnaryDef{
		Name:  "sin",
		Eval:  func(x Number) Number { return mapReal(x, math.Sin, cmplx.Sin) },
		Local: func(x ExprNode) ExprNode { return apply(OpCos, x) },
		Rule:  oddRule(OpSin),
	})
	fn(OpCos, UnaryDef{
		Name:  "cos",
		Eval:  func(x Number) Number { return mapReal(x, math.Cos, cmplx.Cos) },
		Local: func(x ExprNode) ExprNode { return neg(apply(OpSin, x)) },
		Rule: func(x ExprNode) ExprNode {
			if isInt(x, 0) {
				return intc(1)
			}
			// cos(-x) = cos(x)
			if u, ok := x.(*UnaryNode); ok && u.Op == OpNeg {
				return apply(OpCos, u.Child)
			}
			return nil
		},
	})
	fn(OpTg, UnaryDef{
		Name:  "tg",
		Eval:  func(x Number) Number { return mapReal(x, math.Tan, cmplx.Tan) },
		Local: func(x ExprNode) ExprNode { return inv(pow(apply(OpCos, x), intc(2))) },
		Rule:  oddRule(OpTg),
	})
	fn(OpCtg, UnaryDef{
		Name: "ctg",
		Eval: func(x Number) Number {
			return mapReal(x, func(v float64) float64 {
				t := math.Tan(v)
				if t == 0 {
					return math.NaN()
				}
				return 1 / t
			}, func(z complex128) complex128 {
				t := cmplx.Tan(z)
				if t == 0 {
					return cmplx.NaN()
				}
				return 1 / t
			})
		},
		Local: func(x ExprNode) ExprNode { return neg(inv(pow(apply(OpSin, x), intc(2)))) },
	})
	fn(OpArcsin, UnaryDef{
		Name: "arcsin",
		Eval: func(x Number) Number {
			return mapReal(x, func(v float64) float64 {
				if v < -1 || v > 1 {
					return math.NaN()
				}
				return math.Asin(v)
			}, cmplx.Asin)
		},
		Local: func(x ExprNode) ExprNode { return inv(apply(OpSqrt, sum(intc(1), neg(pow(x, intc(2)))))) },
		Rule:  oddRule(OpArcsin),
	})
	fn(OpArccos, UnaryDef{
		Name: "arccos",
		Eval: func(x Number) Number {
			return mapReal(x, func(v float64) float64 {
				if v < -1 || v > 1 {
					return math.NaN()
				}
				return math.Acos(v)
			}, cmplx.Acos)
		},
		Local: func(x ExprNode) ExprNode {
			return neg(inv(apply(OpSqrt, sum(intc(1), neg(pow(x, intc(2)))))))
		},
	})
	fn(OpArctg, UnaryDef{
		Name:  "arctg",
		Eval:  func(x Number) Number { return mapReal(x, math.Atan, cmplx.Atan) },
		Local: func(x ExprNode) ExprNode { return inv(sum(intc(1), pow(x, intc(2)))) },
		Rule:  oddRule(OpArctg),
	})
	fn(OpArcctg, UnaryDef{
		Name: "arcctg",
		// arcctg(x) = arctg(1/x), undefined at zero
		Eval: func(x Number) Number {
			return mapReal(x, func(v float64) float64 {
				if v == 0 {
					return math.NaN()
				}
				return math.Atan(1 / v)
			}, func(z complex128) complex128 {
				if z == 0 {
					return cmplx.NaN()
				}
				return cmplx.Atan(1 / z)
			})
		},
		Local: func(x ExprNode) ExprNode { return neg(inv(sum(intc(1), pow(x, intc(2))))) },
	})
}

// mapReal applies fr to a real argument and fc to a complex one.
func mapReal(x Number, fr func(float64) float64, fc func(complex128) complex128) Number {
	if x.IsNaN() {
		return NaN()
	}
	if x.Kind() == ComplexKind {
		return ComplexNumber(fc(x.c))
	}
	return FloatNumber(fr(x.asFloat()))
}

// oddRule rewrites f(0) = 0 and f(-x) = -f(x) for an odd function f.
func oddRule(op UnaryOp) func(ExprNode) ExprNode {
	return func(x ExprNode) ExprNode {
		if isInt(x, 0) {
			return intc(0)
		}
		if u, ok := x.(*UnaryNode); ok && u.Op == OpNeg {
			return neg(apply(op, u.Child))
		}
		return nil
	}
}
