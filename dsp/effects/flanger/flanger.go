package flanger

import (
	"fmt"

	"github.com/cwbudde/algo-modfx/dsp/clip"
	"github.com/cwbudde/algo-modfx/dsp/delay"
	"github.com/cwbudde/algo-modfx/dsp/fixed"
	"github.com/cwbudde/algo-modfx/dsp/lfo"
	"github.com/cwbudde/algo-modfx/dsp/ramp"
)

const (
	defaultSampleRate = 48000

	// FeedbackGain is the share of the limited wet signal fed back into the line.
	FeedbackGain = 0.890230
	// WetMix is the wet share of the output; the dry share is 1-WetMix.
	WetMix = 0.5

	feedbackKnee    = 0.1
	feedbackCeiling = 1.2
	wetKnee         = 0.05
	wetCeiling      = 1.0
)

// Host parameter indices accepted by Param.
const (
	ParamTime  uint8 = 0
	ParamDepth uint8 = 1
)

// DelayLine is the storage the process loop reads from and feeds.
// Samples and offsets are s7.24.
type DelayLine interface {
	// Reset zeroes all backing memory.
	Reset()
	// Output reads at the current modulated position.
	Output() fixed.Q24
	// Input appends the newest sample.
	Input(sample fixed.Q24)
	// Update moves the read position by offset.
	Update(offset fixed.Q24)
}

// Option mutates flanger construction parameters.
type Option func(*config) error

type config struct {
	sampleRate int
	line       DelayLine
	delaySize  int
	delayOpts  []delay.Option
}

func defaultConfig() config {
	return config{
		sampleRate: defaultSampleRate,
		delaySize:  delay.DefaultSize,
	}
}

// WithSampleRate sets the rate the modulation speed is derived for.
func WithSampleRate(sampleRate int) Option {
	return func(cfg *config) error {
		if sampleRate < 64 {
			return fmt.Errorf("flanger sample rate must be >= 64: %d", sampleRate)
		}

		cfg.sampleRate = sampleRate

		return nil
	}
}

// WithDelayLine supplies the delay line. It replaces the built-in one, and
// WithDelaySize/WithDelayOptions are ignored.
func WithDelayLine(line DelayLine) Option {
	return func(cfg *config) error {
		if line == nil {
			return fmt.Errorf("flanger delay line must not be nil")
		}

		cfg.line = line

		return nil
	}
}

// WithDelaySize sets the backing length of the built-in delay line.
func WithDelaySize(size int) Option {
	return func(cfg *config) error {
		if size < 4 {
			return fmt.Errorf("flanger delay size must be >= 4: %d", size)
		}

		cfg.delaySize = size

		return nil
	}
}

// WithDelayOptions forwards options to the built-in delay line.
func WithDelayOptions(opts ...delay.Option) Option {
	return func(cfg *config) error {
		cfg.delayOpts = append(cfg.delayOpts, opts...)
		return nil
	}
}

// Flanger is one effect instance. It owns every piece of state the process
// loop touches; nothing is shared between instances.
//
// Flanger does no locking. Process, Param, Resume and Init must not run
// concurrently with each other.
type Flanger struct {
	sampleRate int
	line       DelayLine

	lfo    lfo.Engine
	params Params
	gain   ramp.Gain

	platform uint32
	api      uint32
}

// New creates an initialized flanger with optional overrides.
func New(opts ...Option) (*Flanger, error) {
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

	line := cfg.line
	if line == nil {
		l, err := delay.New(cfg.delaySize, cfg.delayOpts...)
		if err != nil {
			return nil, fmt.Errorf("flanger delay line: %w", err)
		}

		line = l
	}

	f := &Flanger{
		sampleRate: cfg.sampleRate,
		line:       line,
	}
	f.Init(0, 0)

	return f, nil
}

// Init clears the delay line and restores default parameters, a silent
// input gain and the initial LFO state. platform and api identify the host
// and are only recorded.
func (f *Flanger) Init(platform, api uint32) {
	f.platform = platform
	f.api = api

	f.line.Reset()
	f.params.Reset()
	f.gain.Reset()
	f.lfo.Reset()
}

// Resume clears the delay line and restarts the input fade-in.
func (f *Flanger) Resume() {
	f.line.Reset()
	f.gain.Reset()
}

// Param sets a parameter from a normalized s0.31 host value. The value is
// clipped to [0, 1]; unknown indices are ignored.
func (f *Flanger) Param(index uint8, value int32) {
	v := fixed.Q31(value).Float()

	switch index {
	case ParamTime:
		f.params.SetTime(v)
	case ParamDepth:
		f.params.SetDepth(v)
	}
}

// SetTime sets the modulation-time parameter, clipped to [0, 1].
func (f *Flanger) SetTime(v float64) { f.params.SetTime(v) }

// SetDepth sets the modulation-depth parameter, clipped to [0, 1].
func (f *Flanger) SetDepth(v float64) { f.params.SetDepth(v) }

// Process renders frames interleaved stereo frames. Only the left input
// channel is read; the result is written to both channels of mainOut and
// subOut. All four slices must hold at least 2*frames samples.
func (f *Flanger) Process(mainIn, mainOut, subIn, subOut []float32, frames int) {
	f.beginBlock()

	for i := 0; i < frames; i++ {
		y := float32(f.tick(float64(mainIn[2*i])))

		mainOut[2*i] = y
		mainOut[2*i+1] = y
		subOut[2*i] = y
		subOut[2*i+1] = y
	}
}

// ProcessMono renders len(in) mono samples into out, which must be at least
// as long as in. It runs the same per-sample path as Process.
func (f *Flanger) ProcessMono(in, out []float32) {
	f.beginBlock()

	for i, x := range in {
		out[i] = float32(f.tick(float64(x)))
	}
}

func (f *Flanger) beginBlock() {
	f.params.Derive(f.sampleRate)
	f.lfo.SetIncrement(f.params.TimerIncrement())
}

// tick runs one sample through the delay, LFO, limiter and gain ramp.
func (f *Flanger) tick(x float64) float64 {
	wet := f.line.Output().Float()

	out2 := f.lfo.Step()
	f.line.Update(fixed.Q24((f.lfo.Center() - out2) * fixed.Q16(f.params.LfoDepthScale())))

	fb := clip.SoftLimit(feedbackKnee, wet, feedbackCeiling) * FeedbackGain
	f.line.Input(fixed.Q24FromFloatTrunc(x*f.gain.Value() + fb))

	y := (1-WetMix)*x + WetMix*clip.SoftLimit(wetKnee, wet, wetCeiling)

	f.gain.Advance()

	return y
}

// Time returns the modulation-time parameter.
func (f *Flanger) Time() float64 { return f.params.Time() }

// Depth returns the modulation-depth parameter.
func (f *Flanger) Depth() float64 { return f.params.Depth() }

// InputGain returns the current fade-in gain.
func (f *Flanger) InputGain() float64 { return f.gain.Value() }

// Params returns the parameter state, including the values derived for the
// most recent block.
func (f *Flanger) Params() Params { return f.params }

// LFO returns a snapshot of the oscillator.
func (f *Flanger) LFO() lfo.Engine { return f.lfo }

// SampleRate returns the rate the modulation speed is derived for.
func (f *Flanger) SampleRate() int { return f.sampleRate }

// Host returns the platform and api values passed to Init.
func (f *Flanger) Host() (platform, api uint32) { return f.platform, f.api }
