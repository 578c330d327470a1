// Package flanger implements a fixed-point flanger for block-based hosts.
//
// Each sample the wet signal is read from a modulated delay line, the
// oscillator in [lfo] moves the read position, a soft-limited copy of the
// wet signal is fed back, and the output is a fixed 50/50 blend of dry and
// limited wet signal. The input is faded in after every reset to avoid a
// click.
//
// Two host parameters drive the sound:
//
//   - time:  modulation speed, exponential in [0, 1]; larger is faster
//   - depth: modulation depth, exponential in [0, 1]
//
// The process path performs no allocation and takes no locks.
package flanger
