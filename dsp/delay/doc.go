// Package delay provides a fixed-point circular delay line with a
// modulated fractional read position.
//
// Samples are stored as s7.24 integers. The read delay is set through
// [Line.Update] with an s7.24 offset; an offset of 1.0 moves the read
// position by the configured excursion in samples.
package delay
