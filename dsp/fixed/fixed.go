package fixed

import "math"

// Fractional bit counts of the supported formats.
const (
	Q16Bits = 16
	Q24Bits = 24
	Q31Bits = 31
)

// Scale factors (1.0 in each format).
const (
	Q16One = 1 << Q16Bits
	Q24One = 1 << Q24Bits
)

const q31Scale = 1 << Q31Bits

// Q16 is a signed s15.16 fixed-point value.
type Q16 int32

// Q24 is a signed s7.24 fixed-point value.
type Q24 int32

// Q31 is a signed s0.31 fixed-point value covering [-1, 1).
type Q31 int32

// Q16FromFloat converts x to s15.16, rounding to nearest and saturating.
func Q16FromFloat(x float64) Q16 {
	return Q16(saturate(math.Round(x * Q16One)))
}

// Q24FromFloat converts x to s7.24, rounding to nearest and saturating.
func Q24FromFloat(x float64) Q24 {
	return Q24(saturate(math.Round(x * Q24One)))
}

// Q24FromFloatTrunc converts x to s7.24, truncating toward zero and saturating.
func Q24FromFloatTrunc(x float64) Q24 {
	return Q24(saturate(math.Trunc(x * Q24One)))
}

// Q31FromFloat converts x to s0.31, rounding to nearest and saturating at ±1.
func Q31FromFloat(x float64) Q31 {
	return Q31(saturate(math.Round(x * q31Scale)))
}

// Float returns the real value of q.
func (q Q16) Float() float64 { return float64(q) / Q16One }

// Float returns the real value of q.
func (q Q24) Float() float64 { return float64(q) / Q24One }

// Float returns the real value of q.
func (q Q31) Float() float64 { return float64(q) / q31Scale }

// Clip01 limits x to [0, 1]. NaN maps to 0.
func Clip01(x float64) float64 {
	if !(x > 0) {
		return 0
	}

	if x > 1 {
		return 1
	}

	return x
}

// Pow2Q16 returns 2^x in s15.16, rounded to nearest and saturated.
func Pow2Q16(x Q16) Q16 {
	return Q16FromFloat(mathPower2(x.Float()))
}

// saturate clamps an already-scaled value into the int32 range. NaN maps to 0.
func saturate(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}
