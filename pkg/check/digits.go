package check

import "math"

// MaxDigits is the cap on correct digits; float64 carries about 15
// significant decimal digits.
const MaxDigits = 15

// CorrectDigits returns the number of matching decimal digits between a
// computed value and a reference value: -log10 of the relative error,
// or of the absolute error when the reference is zero.
func CorrectDigits(computed, target float64) float64 {
	diff := math.Abs(computed - target)
	if diff == 0 {
		return MaxDigits
	}

	absTgt := math.Abs(target)
	if absTgt == 0 {
		return math.Max(0, math.Min(-math.Log10(diff), MaxDigits))
	}

	relErr := diff / absTgt
	if relErr == 0 {
		return MaxDigits
	}

	digits := -math.Log10(relErr)
	return math.Max(0, math.Min(digits, MaxDigits))
}
