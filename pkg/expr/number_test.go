package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberOverflowPromotes(t *testing.T) {
	tests := []struct {
		name string
		got  Number
		want float64
	}{
		{"add", IntNumber(math.MaxInt64).Add(IntNumber(1)), float64(math.MaxInt64) + 1},
		{"sub", IntNumber(math.MinInt64).Sub(IntNumber(1)), float64(math.MinInt64) - 1},
		{"mul", IntNumber(1 << 40).Mul(IntNumber(1 << 40)), math.Pow(2, 80)},
		{"pow", IntNumber(2).Pow(IntNumber(70)), math.Pow(2, 70)},
		{"neg", IntNumber(math.MinInt64).Neg(), -float64(math.MinInt64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, FloatKind, tt.got.Kind())
			assert.Equal(t, tt.want, tt.got.Float64())
		})
	}
}

func TestNumberExactness(t *testing.T) {
	q := IntNumber(12).Div(IntNumber(4))
	assert.Equal(t, IntKind, q.Kind())
	assert.Equal(t, 3.0, q.Float64())

	q = IntNumber(7).Div(IntNumber(2))
	assert.Equal(t, FloatKind, q.Kind())
	assert.Equal(t, 3.5, q.Float64())

	p := IntNumber(3).Pow(IntNumber(4))
	assert.Equal(t, IntKind, p.Kind())
	n, ok := p.Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(81), n)

	p = IntNumber(2).Pow(IntNumber(-2))
	assert.Equal(t, 0.25, p.Float64())
}

func TestNumberDomain(t *testing.T) {
	assert.True(t, IntNumber(1).Div(IntNumber(0)).IsNaN())
	assert.True(t, FloatNumber(1).Div(FloatNumber(0)).IsNaN())
	assert.True(t, IntNumber(0).Pow(IntNumber(-1)).IsNaN())
	assert.True(t, FloatNumber(-8).Pow(FloatNumber(1.0/3)).IsNaN())
	assert.False(t, FloatNumber(-8).Pow(FloatNumber(3)).IsNaN())
	assert.True(t, NaN().Add(IntNumber(1)).IsNaN())
}

func TestNumberEqual(t *testing.T) {
	assert.True(t, IntNumber(2).Equal(FloatNumber(2)))
	assert.True(t, FloatNumber(2).Equal(ComplexNumber(2)))
	assert.False(t, IntNumber(2).Equal(ComplexNumber(2+1i)))
	assert.False(t, NaN().Equal(NaN()))
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "-4", IntNumber(-4).String())
	assert.Equal(t, "3.0", FloatNumber(3).String())
	assert.Equal(t, "NaN", NaN().String())
	assert.Equal(t, "+Inf", FloatNumber(math.Inf(1)).String())
	assert.Equal(t, "(0+1i)", ComplexNumber(1i).String())
}

func TestGCD(t *testing.T) {
	assert.Equal(t, int64(6), gcd(12, 18))
	assert.Equal(t, int64(6), gcd(-12, 18))
	assert.Equal(t, int64(5), gcd(0, -5))
	assert.Equal(t, int64(0), gcd(0, 0))
}
