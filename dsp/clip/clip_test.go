package clip

import (
	"math"
	"testing"
)

func TestSoftClip(t *testing.T) {
	tests := []struct {
		name string
		c, x float64
		want float64
	}{
		{name: "zero", c: 0.1, x: 0, want: 0},
		{name: "unit", c: 0.1, x: 1, want: 0.9},
		{name: "clamped", c: 0.1, x: 5, want: 0.9},
		{name: "negative", c: 0.1, x: -5, want: -0.9},
		{name: "half", c: 0.2, x: 0.5, want: 0.475},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SoftClip(tt.c, tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("SoftClip(%v, %v) = %v, want %v", tt.c, tt.x, got, tt.want)
			}
		})
	}
}

func TestSoftLimitLinearRegion(t *testing.T) {
	for _, tc := range []struct {
		knee, ceiling float64
	}{
		{0.1, 1.2},
		{0.05, 1.0},
	} {
		th := tc.ceiling - 1 + tc.knee
		for x := -th + 1e-6; x < th; x += th / 37 {
			if got := SoftLimit(tc.knee, x, tc.ceiling); got != x {
				t.Fatalf("SoftLimit(%v, %v, %v) = %v, want passthrough", tc.knee, x, tc.ceiling, got)
			}
		}
	}
}

func TestSoftLimitBoundedAndSignPreserving(t *testing.T) {
	for _, tc := range []struct {
		knee, ceiling float64
	}{
		{0.1, 1.2},
		{0.05, 1.0},
		{0.3, 2.0},
	} {
		th := tc.ceiling - 1 + tc.knee
		for x := th; x < 100; x *= 1.07 {
			for _, v := range []float64{x, -x} {
				got := SoftLimit(tc.knee, v, tc.ceiling)
				if math.Abs(got) > tc.ceiling+1e-12 {
					t.Fatalf("SoftLimit(%v, %v, %v) = %v exceeds ceiling", tc.knee, v, tc.ceiling, got)
				}

				if math.Signbit(got) != math.Signbit(v) {
					t.Fatalf("SoftLimit(%v, %v, %v) = %v changed sign", tc.knee, v, tc.ceiling, got)
				}
			}
		}
	}
}

func TestSoftLimitContinuousAtBreakpoint(t *testing.T) {
	const knee, ceiling = 0.1, 1.2

	th := ceiling - 1 + knee
	below := SoftLimit(knee, math.Nextafter(th, 0), ceiling)
	at := SoftLimit(knee, th, ceiling)

	if diff := math.Abs(at - below); diff > 1e-9 {
		t.Fatalf("discontinuity at threshold: below=%v at=%v", below, at)
	}
}

func TestSoftLimitMonotone(t *testing.T) {
	prev := SoftLimit(0.05, 0, 1)
	for x := 0.001; x < 3; x += 0.001 {
		got := SoftLimit(0.05, x, 1)
		if got < prev {
			t.Fatalf("not monotone at %v: %v < %v", x, got, prev)
		}

		prev = got
	}
}

func BenchmarkSoftLimit(b *testing.B) {
	x := 0.0
	for i := 0; i < b.N; i++ {
		x = SoftLimit(0.1, float64(i%200)/100-1, 1.2)
	}

	_ = x
}
