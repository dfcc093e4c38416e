package expr

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// NumKind identifies the representation of a Number. Kinds are ordered:
// arithmetic on two numbers promotes to the wider kind.
type NumKind int

const (
	IntKind NumKind = iota
	FloatKind
	ComplexKind
)

func (k NumKind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case ComplexKind:
		return "complex"
	default:
		return "unknown"
	}
}

// imagTolerance is the relative size below which an imaginary part is
// treated as zero when a real result is requested.
const imagTolerance = 1e-12

// Number is the scalar value produced by evaluation. It holds an integer,
// a float or a complex value. Operations never fail: results outside the
// real domain are NaN, and NaN propagates through every operation.
type Number struct {
	kind NumKind
	i    int64
	f    float64
	c    complex128
}

// IntNumber returns an integer Number.
func IntNumber(v int64) Number { return Number{kind: IntKind, i: v} }

// FloatNumber returns a float Number.
func FloatNumber(v float64) Number { return Number{kind: FloatKind, f: v} }

// ComplexNumber returns a complex Number.
func ComplexNumber(v complex128) Number { return Number{kind: ComplexKind, c: v} }

// NaN returns the distinguished not-a-number value.
func NaN() Number { return FloatNumber(math.NaN()) }

// Kind reports the representation of n.
func (n Number) Kind() NumKind { return n.kind }

// Int64 returns the integer value; ok is false unless n is an integer.
func (n Number) Int64() (int64, bool) {
	if n.kind != IntKind {
		return 0, false
	}
	return n.i, true
}

// Float64 returns n as a real number. A complex value whose imaginary part
// is negligible collapses to its real part; any other complex value is NaN.
func (n Number) Float64() float64 {
	switch n.kind {
	case IntKind:
		return float64(n.i)
	case FloatKind:
		return n.f
	default:
		re, im := real(n.c), imag(n.c)
		if math.Abs(im) <= imagTolerance*math.Max(1, math.Abs(re)) {
			return re
		}
		return math.NaN()
	}
}

// Complex128 returns n as a complex number.
func (n Number) Complex128() complex128 {
	switch n.kind {
	case IntKind:
		return complex(float64(n.i), 0)
	case FloatKind:
		return complex(n.f, 0)
	default:
		return n.c
	}
}

// IsNaN reports whether n is NaN (either component for complex values).
func (n Number) IsNaN() bool {
	switch n.kind {
	case FloatKind:
		return math.IsNaN(n.f)
	case ComplexKind:
		return cmplx.IsNaN(n.c)
	default:
		return false
	}
}

// IsInf reports whether n is infinite.
func (n Number) IsInf() bool {
	switch n.kind {
	case FloatKind:
		return math.IsInf(n.f, 0)
	case ComplexKind:
		return cmplx.IsInf(n.c)
	default:
		return false
	}
}

// IsZero reports whether n equals zero.
func (n Number) IsZero() bool {
	switch n.kind {
	case IntKind:
		return n.i == 0
	case FloatKind:
		return n.f == 0
	default:
		return n.c == 0
	}
}

// Equal compares two numbers after promotion. NaN equals nothing.
func (n Number) Equal(o Number) bool {
	if n.IsNaN() || o.IsNaN() {
		return false
	}
	switch maxKind(n.kind, o.kind) {
	case IntKind:
		return n.i == o.i
	case FloatKind:
		return n.asFloat() == o.asFloat()
	default:
		return n.Complex128() == o.Complex128()
	}
}

// Node lifts n into the constant node of the matching kind.
func (n Number) Node() ExprNode {
	switch n.kind {
	case IntKind:
		return &IntNode{Val: n.i}
	case FloatKind:
		return &FloatNode{Val: n.f}
	default:
		return &ComplexNode{Val: n.c}
	}
}

func (n Number) String() string {
	switch n.kind {
	case IntKind:
		return strconv.FormatInt(n.i, 10)
	case FloatKind:
		return formatFloat(n.f)
	default:
		return strconv.FormatComplex(n.c, 'g', -1, 128)
	}
}

// formatFloat renders f so that it never reads back as an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

func maxKind(a, b NumKind) NumKind {
	if a > b {
		return a
	}
	return b
}

// asFloat is only meaningful for int and float kinds.
func (n Number) asFloat() float64 {
	if n.kind == IntKind {
		return float64(n.i)
	}
	return n.f
}

// Neg returns -n.
func (n Number) Neg() Number {
	switch n.kind {
	case IntKind:
		if n.i == math.MinInt64 {
			return FloatNumber(-float64(n.i))
		}
		return IntNumber(-n.i)
	case FloatKind:
		return FloatNumber(-n.f)
	default:
		return ComplexNumber(-n.c)
	}
}

// Add returns n + o.
func (n Number) Add(o Number) Number {
	if n.IsNaN() || o.IsNaN() {
		return NaN()
	}
	switch maxKind(n.kind, o.kind) {
	case IntKind:
		s := n.i + o.i
		if (n.i > 0 && o.i > 0 && s < 0) || (n.i < 0 && o.i < 0 && s >= 0) {
			return FloatNumber(float64(n.i) + float64(o.i))
		}
		return IntNumber(s)
	case FloatKind:
		return FloatNumber(n.asFloat() + o.asFloat())
	default:
		return ComplexNumber(n.Complex128() + o.Complex128())
	}
}

// Sub returns n - o.
func (n Number) Sub(o Number) Number {
	if n.IsNaN() || o.IsNaN() {
		return NaN()
	}
	switch maxKind(n.kind, o.kind) {
	case IntKind:
		s := n.i - o.i
		if (o.i < 0 && s < n.i) || (o.i > 0 && s > n.i) {
			return FloatNumber(float64(n.i) - float64(o.i))
		}
		return IntNumber(s)
	case FloatKind:
		return FloatNumber(n.asFloat() - o.asFloat())
	default:
		return ComplexNumber(n.Complex128() - o.Complex128())
	}
}

// Mul returns n * o.
func (n Number) Mul(o Number) Number {
	if n.IsNaN() || o.IsNaN() {
		return NaN()
	}
	switch maxKind(n.kind, o.kind) {
	case IntKind:
		a, b := n.i, o.i
		if a == 0 || b == 0 {
			return IntNumber(0)
		}
		p := a * b
		if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return FloatNumber(float64(a) * float64(b))
		}
		return IntNumber(p)
	case FloatKind:
		return FloatNumber(n.asFloat() * o.asFloat())
	default:
		return ComplexNumber(n.Complex128() * o.Complex128())
	}
}

// Div returns n / o. Division by zero is NaN. Integer division stays an
// integer only when it is exact.
func (n Number) Div(o Number) Number {
	if n.IsNaN() || o.IsNaN() || o.IsZero() {
		return NaN()
	}
	switch maxKind(n.kind, o.kind) {
	case IntKind:
		if n.i%o.i == 0 && !(n.i == math.MinInt64 && o.i == -1) {
			return IntNumber(n.i / o.i)
		}
		return FloatNumber(float64(n.i) / float64(o.i))
	case FloatKind:
		return FloatNumber(n.asFloat() / o.asFloat())
	default:
		return ComplexNumber(n.Complex128() / o.Complex128())
	}
}

// Pow returns n ** o. A negative real base with a non-integer exponent and
// zero raised to a negative power are NaN.
func (n Number) Pow(o Number) Number {
	if n.IsNaN() || o.IsNaN() {
		return NaN()
	}
	switch maxKind(n.kind, o.kind) {
	case IntKind:
		if o.i < 0 {
			if n.i == 0 {
				return NaN()
			}
			return FloatNumber(math.Pow(float64(n.i), float64(o.i)))
		}
		if r, ok := intPow(n.i, o.i); ok {
			return IntNumber(r)
		}
		return FloatNumber(math.Pow(float64(n.i), float64(o.i)))
	case FloatKind:
		b, e := n.asFloat(), o.asFloat()
		if b < 0 && e != math.Trunc(e) {
			return NaN()
		}
		if b == 0 && e < 0 {
			return NaN()
		}
		return FloatNumber(math.Pow(b, e))
	default:
		b, e := n.Complex128(), o.Complex128()
		if b == 0 {
			if real(e) > 0 {
				return ComplexNumber(0)
			}
			return NaN()
		}
		return ComplexNumber(cmplx.Pow(b, e))
	}
}

// intPow computes base**exp for exp >= 0 by binary exponentiation,
// reporting false on int64 overflow.
func intPow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r := result * base
			if base != 0 && r/base != result {
				return 0, false
			}
			result = r
		}
		exp >>= 1
		if exp > 0 {
			sq := base * base
			if base != 0 && sq/base != base {
				return 0, false
			}
			base = sq
		}
	}
	return result, true
}

// gcd returns the non-negative greatest common divisor of a and b.
func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
