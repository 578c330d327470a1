package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modfx/dsp/fixed"
	"github.com/cwbudde/algo-modfx/dsp/interp"
)

const (
	// DefaultSize is the backing length used by [New] callers that have no
	// better figure: enough for the default center plus full excursion.
	DefaultSize = 256

	defaultCenterSamples    = 96
	defaultExcursionSamples = 64
)

// Option configures a Line at construction.
type Option func(*config) error

type config struct {
	mode      interp.Mode
	center    float64
	excursion float64
}

func defaultConfig() config {
	return config{
		mode:      interp.Hermite,
		center:    defaultCenterSamples,
		excursion: defaultExcursionSamples,
	}
}

// WithMode selects the fractional-read kernel.
func WithMode(mode interp.Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("delay interpolation mode is not supported: %d", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithCenterSamples sets the read delay used when the modulation offset is zero.
func WithCenterSamples(center float64) Option {
	return func(cfg *config) error {
		if center < 1 || math.IsNaN(center) || math.IsInf(center, 0) {
			return fmt.Errorf("delay center must be >= 1 and finite: %f", center)
		}

		cfg.center = center

		return nil
	}
}

// WithExcursionSamples sets the delay change, in samples, for a unit offset.
func WithExcursionSamples(excursion float64) Option {
	return func(cfg *config) error {
		if excursion < 0 || math.IsNaN(excursion) || math.IsInf(excursion, 0) {
			return fmt.Errorf("delay excursion must be >= 0 and finite: %f", excursion)
		}

		cfg.excursion = excursion

		return nil
	}
}

// Line is a circular delay line holding s7.24 samples with a modulated,
// fractional read position.
type Line struct {
	buffer   []int32
	writePos int

	mode      interp.Mode
	center    float64
	excursion float64
	delay     float64
	maxDelay  float64
}

// New returns a delay line with its own backing memory of the given size.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	return NewWithBuffer(make([]int32, size), opts...)
}

// NewWithBuffer binds buf as backing memory. The line owns buf afterwards
// and clears it.
func NewWithBuffer(buf []int32, opts ...Option) (*Line, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("delay buffer must hold at least 4 samples: %d", len(buf))
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	maxDelay := float64(len(buf) - 3)
	if cfg.center > maxDelay {
		return nil, fmt.Errorf("delay center %f exceeds buffer capacity %f", cfg.center, maxDelay)
	}

	d := &Line{
		buffer:    buf,
		mode:      cfg.mode,
		center:    cfg.center,
		excursion: cfg.excursion,
		maxDelay:  maxDelay,
	}
	d.Reset()

	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation kernel.
func (d *Line) Mode() interp.Mode { return d.mode }

// Delay returns the current read delay in samples.
func (d *Line) Delay() float64 { return d.delay }

// Center returns the read delay for a zero offset.
func (d *Line) Center() float64 { return d.center }

// Excursion returns the delay change for a unit offset.
func (d *Line) Excursion() float64 { return d.excursion }

// Input writes the newest sample.
func (d *Line) Input(sample fixed.Q24) {
	d.buffer[d.writePos] = int32(sample)
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Output reads at the current modulated delay.
func (d *Line) Output() fixed.Q24 {
	return fixed.Q24FromFloat(d.ReadFractional(d.delay))
}

// Update places the read position at center + offset*excursion samples,
// clamped to the range the buffer can serve.
func (d *Line) Update(offset fixed.Q24) {
	delay := d.center + offset.Float()*d.excursion
	if delay < 1 {
		delay = 1
	} else if delay > d.maxDelay {
		delay = d.maxDelay
	}

	d.delay = delay
}

// Read reads an integer delay in samples. Read(1) is the most recent input.
func (d *Line) Read(delay int) fixed.Q24 {
	size := len(d.buffer)
	readPos := ((d.writePos-delay)%size + size) % size
	return fixed.Q24(d.buffer[readPos])
}

// ReadFractional reads a fractional delay and returns a unit-scaled sample.
func (d *Line) ReadFractional(delay float64) float64 {
	if delay < 1 {
		delay = 1
	}
	if delay > d.maxDelay {
		delay = d.maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	x0 := d.Read(p).Float()
	x1 := d.Read(p + 1).Float()

	if d.mode == interp.Linear {
		return interp.Linear2(t, x0, x1)
	}

	xm1 := d.Read(max(1, p-1)).Float()
	x2 := d.Read(p + 2).Float()
	return interp.Hermite4(t, xm1, x0, x1, x2)
}

// Reset zeroes all backing memory and recenters the read position.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
	d.delay = d.center
}
