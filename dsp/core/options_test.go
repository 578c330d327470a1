package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(128))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.BlockSize != 128 {
		t.Fatalf("block size = %d, want 128", cfg.BlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1))
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestBlocks(t *testing.T) {
	cfg := DefaultProcessorConfig()
	for _, tc := range []struct {
		frames, want int
	}{
		{0, 0},
		{1, 1},
		{64, 1},
		{65, 2},
		{48000, 750},
	} {
		if got := cfg.Blocks(tc.frames); got != tc.want {
			t.Fatalf("Blocks(%d) = %d, want %d", tc.frames, got, tc.want)
		}
	}
}
