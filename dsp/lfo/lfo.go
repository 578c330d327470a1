package lfo

import "github.com/cwbudde/algo-modfx/dsp/fixed"

// Timer geometry. The phase accumulator covers [0, TimerMax); its top
// TableBits bits index the decay table.
const (
	TimerBits = 30
	TimerMax  = 1 << TimerBits
	TimerMask = TimerMax - 1

	stepShift = TimerBits - TableBits
	phaseMask = TimerMask >> TableBits
)

const (
	// DefaultIncrement is the phase increment before the first block derives one.
	DefaultIncrement = 0x10000

	// DefaultThreshold is the turnaround level, 0.5 in s15.16.
	DefaultThreshold fixed.Q16 = fixed.Q16One / 2

	ceiling = fixed.Q16One
)

// Direction is the current leg of the oscillation.
type Direction uint8

const (
	Rising Direction = iota
	Falling
)

func (d Direction) String() string {
	if d == Falling {
		return "falling"
	}

	return "rising"
}

// Engine is an asymmetric pseudo-triangle oscillator. Its internal level
// approaches 1.0 exponentially and bounces off the threshold; the output
// folds the falling leg so the result stays in [0, threshold].
type Engine struct {
	dt     uint32
	t      uint32
	dir    Direction
	th     fixed.Q16
	out    fixed.Q16
	out2   fixed.Q16
	center fixed.Q16
}

// New returns an engine in its initial state.
func New() *Engine {
	e := &Engine{}
	e.Reset()

	return e
}

// Reset restores the default increment and threshold and clears the level.
func (e *Engine) Reset() {
	e.dt = DefaultIncrement
	e.t = 0
	e.dir = Rising
	e.SetThreshold(DefaultThreshold)
	e.out = 0
	e.out2 = 0
}

// SetIncrement sets the per-sample phase increment. Zero is raised to one so
// the phase always advances.
func (e *Engine) SetIncrement(dt uint32) {
	if dt == 0 {
		dt = 1
	}

	e.dt = dt
}

// SetThreshold sets the turnaround level, limited to (0, 1.0].
func (e *Engine) SetThreshold(th fixed.Q16) {
	if th <= 0 {
		th = 1
	} else if th > ceiling {
		th = ceiling
	}

	e.th = th
	e.center = th >> 1

	if e.out > th {
		e.out = th
	}

	e.out2 = e.fold()
}

// Step advances the oscillator by one sample and returns the folded output.
func (e *Engine) Step() fixed.Q16 {
	e.t = (e.t + e.dt) & TimerMask

	if i := e.t >> stepShift; i > 0 {
		rest := uint64(ceiling-e.out) * uint64(pow2InvTable[i])
		e.out = ceiling - fixed.Q16(rest>>16)

		if e.out >= e.th {
			if e.dir == Rising {
				e.dir = Falling
			} else {
				e.dir = Rising
			}

			e.out = e.th - e.out
			if e.out < 0 {
				e.out = 0
			}
		}

		e.t &= phaseMask
	}

	e.out2 = e.fold()

	return e.out2
}

func (e *Engine) fold() fixed.Q16 {
	if e.dir == Falling {
		return e.th - e.out
	}

	return e.out
}

// Out2 returns the folded output in [0, Threshold()].
func (e *Engine) Out2() fixed.Q16 { return e.out2 }

// Out returns the internal smoothed level.
func (e *Engine) Out() fixed.Q16 { return e.out }

// Dir returns the current leg.
func (e *Engine) Dir() Direction { return e.dir }

// Threshold returns the turnaround level.
func (e *Engine) Threshold() fixed.Q16 { return e.th }

// Center returns half the threshold, the rest position of the output.
func (e *Engine) Center() fixed.Q16 { return e.center }

// Increment returns the per-sample phase increment.
func (e *Engine) Increment() uint32 { return e.dt }

// Phase returns the phase accumulator.
func (e *Engine) Phase() uint32 { return e.t }
