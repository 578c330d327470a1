package flanger

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-modfx/dsp/lfo"
)

func TestParamsClip(t *testing.T) {
	var p Params

	p.SetTime(-0.5)
	p.SetDepth(3)

	if p.Time() != 0 || p.Depth() != 1 {
		t.Fatalf("got time=%v depth=%v, want 0 and 1", p.Time(), p.Depth())
	}

	p.SetTime(math.NaN())
	if p.Time() != 0 {
		t.Fatalf("NaN time stored as %v", p.Time())
	}

	p.Reset()
	if p.Time() != DefaultTime || p.Depth() != DefaultDepth {
		t.Fatalf("Reset() left time=%v depth=%v", p.Time(), p.Depth())
	}
}

func TestDeriveReferenceValues(t *testing.T) {
	tests := []struct {
		time    float64
		wantInc uint32
	}{
		{time: 0, wantInc: 1398},
		{time: 0.25, wantInc: 5789},
		{time: 0.5, wantInc: 23979},
		{time: 1, wantInc: 412818},
	}

	for _, tt := range tests {
		var p Params

		p.SetTime(tt.time)
		p.Derive(48000)

		got := float64(p.TimerIncrement())
		if diff := math.Abs(got - float64(tt.wantInc)); diff > 0.01*float64(tt.wantInc) {
			t.Fatalf("time=%v: TimerIncrement() = %v, want ~%d", tt.time, got, tt.wantInc)
		}
	}

	for _, tc := range []struct {
		depth float64
		want  int32
	}{
		{0, 32},
		{0.5, 181},
		{1, 1024},
	} {
		var p Params

		p.SetDepth(tc.depth)
		p.Derive(48000)

		if got := p.LfoDepthScale(); got != tc.want {
			t.Fatalf("depth=%v: LfoDepthScale() = %d, want %d", tc.depth, got, tc.want)
		}
	}
}

func TestDeriveIncrementAlwaysAdvances(t *testing.T) {
	for _, sr := range []int{8000, 44100, 48000, 96000, 192000} {
		prev := uint32(0)

		for time := 0.0; time <= 1.0; time += 1.0 / 64 {
			var p Params

			p.SetTime(time)
			p.Derive(sr)

			inc := p.TimerIncrement()
			if inc == 0 {
				t.Fatalf("sr=%d time=%v: zero increment", sr, time)
			}

			// Below one table step, so every Step moves the phase.
			if inc >= lfo.TimerMax>>lfo.TableBits {
				t.Fatalf("sr=%d time=%v: increment %d skips table steps", sr, time, inc)
			}

			if inc < prev {
				t.Fatalf("sr=%d time=%v: increment %d below %d for a larger time", sr, time, inc, prev)
			}

			prev = inc
		}
	}
}

func TestDeriveDepthIsExponential(t *testing.T) {
	var lo, mid, hi Params

	lo.SetDepth(0.2)
	mid.SetDepth(0.4)
	hi.SetDepth(0.6)

	for _, p := range []*Params{&lo, &mid, &hi} {
		p.Derive(48000)
	}

	r1 := float64(mid.LfoDepthScale()) / float64(lo.LfoDepthScale())
	r2 := float64(hi.LfoDepthScale()) / float64(mid.LfoDepthScale())

	// Equal parameter steps give equal ratios: 2^(5*0.2) = 2.
	if math.Abs(r1-2) > 0.05 || math.Abs(r2-2) > 0.05 {
		t.Fatalf("ratios %v and %v, want ~2", r1, r2)
	}
}
