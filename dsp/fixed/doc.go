// Package fixed provides the scaled-integer formats used by the flanger core.
//
// Three formats are in use:
//
//   - [Q16]: s15.16, LFO levels and exponent arguments
//   - [Q24]: s7.24, delay-line samples and modulation offsets
//   - [Q31]: s0.31, normalized host parameter values
//
// Conversions from float64 define their rounding (nearest, or truncation
// where noted) and always saturate at the int32 boundary instead of
// wrapping.
//
// [Pow2Q16] evaluates 2^x with the standard library by default. Building
// with the fastmath tag switches to the algo-approx kernels.
package fixed
