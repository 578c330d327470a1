// Package ramp provides a click-free gain fade-in.
package ramp

const (
	// Coefficient is the fraction of the remaining distance covered per step.
	Coefficient = 0.0625

	// SnapThreshold is the level at which the ramp jumps to exactly 1.
	SnapThreshold = 0.99998
)

// Gain is a one-pole ramp from 0 toward 1. It never decreases between resets.
type Gain struct {
	value float64
}

// Value returns the current gain.
func (g *Gain) Value() float64 { return g.value }

// Reset sets the gain back to 0.
func (g *Gain) Reset() { g.value = 0 }

// Advance moves the gain one step toward 1 and returns the new value.
func (g *Gain) Advance() float64 {
	if g.value < SnapThreshold {
		g.value += (1 - g.value) * Coefficient
	} else {
		g.value = 1
	}

	return g.value
}

// Done reports whether the ramp has settled at 1.
func (g *Gain) Done() bool { return g.value == 1 }
