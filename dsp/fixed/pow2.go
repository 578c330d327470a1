//go:build !fastmath

package fixed

import "math"

// mathPower2 computes 2^x using standard library math.
func mathPower2(x float64) float64 {
	return math.Exp2(x)
}
