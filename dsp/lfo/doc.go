// Package lfo implements the flanger's low-frequency oscillator.
//
// The waveform is not a linear triangle. A 30-bit phase accumulator is
// split into table steps; every time a step boundary is crossed the
// internal level moves toward 1.0 by a factor read from a 256-entry 2^-x
// table:
//
//	out = 1 - (1 - out) * 2^(-i/256)
//
// When the level reaches the threshold the direction flips and the level is
// reflected, which starts the next leg. The published output folds falling
// legs (threshold - out), so a rising leg accelerates into the peak and a
// falling leg decelerates away from it. That asymmetric, soft-cornered shape
// is what gives the effect its analog character.
package lfo
