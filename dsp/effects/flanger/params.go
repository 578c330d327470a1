package flanger

import (
	"github.com/cwbudde/algo-modfx/dsp/fixed"
	"github.com/cwbudde/algo-modfx/dsp/lfo"
)

const (
	// DefaultTime is the initial modulation-time parameter.
	DefaultTime = 0.25
	// DefaultDepth is the initial modulation-depth parameter.
	DefaultDepth = 0.5
)

// Exponent ranges of the derived values.
const (
	timeExpMin   = -4.2
	timeExpSpan  = 8.2
	depthExpMin  = -3.0
	depthExpSpan = 5.0
)

// Params holds the user parameters and the values derived from them once
// per processing block.
type Params struct {
	time  float64
	depth float64

	timerIncrement uint32
	lfoDepthScale  int32
}

// Reset restores the default parameters.
func (p *Params) Reset() {
	p.time = DefaultTime
	p.depth = DefaultDepth
}

// SetTime stores v clipped to [0, 1]. Larger values speed up the modulation.
func (p *Params) SetTime(v float64) { p.time = fixed.Clip01(v) }

// SetDepth stores v clipped to [0, 1].
func (p *Params) SetDepth(v float64) { p.depth = fixed.Clip01(v) }

// Time returns the modulation-time parameter.
func (p *Params) Time() float64 { return p.time }

// Depth returns the modulation-depth parameter.
func (p *Params) Depth() float64 { return p.depth }

// TimerIncrement returns the LFO phase increment from the last Derive.
func (p *Params) TimerIncrement() uint32 { return p.timerIncrement }

// LfoDepthScale returns the depth factor from the last Derive, with 8
// fractional bits.
func (p *Params) LfoDepthScale() int32 { return p.lfoDepthScale }

// Derive recomputes the block values for the given sample rate.
//
// The modulation period follows 2^(-4.2 + (1-time)*8.2) and the depth
// factor 2^(-3 + 5*depth), both evaluated in s15.16.
func (p *Params) Derive(sampleRate int) {
	period := fixed.Pow2Q16(fixed.Q16FromFloat(timeExpMin + (1-p.time)*timeExpSpan))

	div := (uint64(period>>4) * uint64(sampleRate>>6)) >> 6
	if div == 0 {
		div = 1
	}

	inc := uint32(lfo.TimerMax / div)
	if inc == 0 {
		inc = 1
	}

	p.timerIncrement = inc
	p.lfoDepthScale = int32(fixed.Pow2Q16(fixed.Q16FromFloat(depthExpMin+p.depth*depthExpSpan)) >> 8)
}
