// Package clip provides sign-preserving soft clipping for feedback paths.
package clip

import "math"

// SoftClip is a cubic soft-clip curve: the input is clamped to [-1, 1] and
// shaped as x - c*x^3. For 0 <= c <= 1/3 the curve is monotone and maps
// [0, +inf) onto [0, 1-c].
func SoftClip(c, x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return x - c*x*x*x
}

// SoftLimit passes x unchanged while |x| < ceiling-1+knee and compresses the
// remainder with [SoftClip], so the output magnitude never exceeds ceiling.
// ceiling must be >= 1.
func SoftLimit(knee, x, ceiling float64) float64 {
	th := ceiling - 1 + knee

	ax := math.Abs(x)
	if ax < th {
		return x
	}

	return math.Copysign(th+SoftClip(knee, ax-th), x)
}
