package core

import "math"

// Clamp returns value limited to [lo, hi]. The bounds may be given in
// either order.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Min(math.Max(value, lo), hi)
}

// LinearToDB converts an amplitude to dB (20*log10). Zero maps to -Inf and
// negative amplitudes to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// DBToLinear converts dB to an amplitude.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}
