package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-modfx/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestSineRejectsAboveNyquist(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	if _, err := g.Sine(500, 1, 8); err == nil {
		t.Fatal("expected error at Nyquist")
	}
	if _, err := g.Sine(100, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))

	if g1.Seed() != 42 {
		t.Fatalf("Seed() = %d, want 42", g1.Seed())
	}

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(n1[i]) > 1 {
			t.Fatalf("noise[%d] = %v outside amplitude", i, n1[i])
		}
	}
}

func TestImpulse(t *testing.T) {
	g := NewGenerator()
	x, err := g.Impulse(0.5, 3, 8)
	if err != nil {
		t.Fatalf("Impulse() error = %v", err)
	}
	for i, v := range x {
		want := 0.0
		if i == 3 {
			want = 0.5
		}
		if v != want {
			t.Fatalf("x[%d] = %v, want %v", i, v, want)
		}
	}

	if _, err := g.Impulse(1, 8, 8); err == nil {
		t.Fatal("expected error for position past end")
	}
}

func TestNormalize(t *testing.T) {
	x, err := Normalize([]float64{0, 0}, 1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if x[0] != 0 || x[1] != 0 {
		t.Fatalf("silent input normalized to %v", x)
	}

	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Normalize([]float64{1}, -1); err == nil {
		t.Fatal("expected error for negative peak")
	}
}
