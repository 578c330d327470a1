// Command modfxplay plays a looping source through the flanger in real time.
// Time and depth are changed from the keyboard while audio runs.
//
// Usage:
//
//	modfxplay [flags]
//
// Examples:
//
//	modfxplay --signal sine --freq 110
//	modfxplay -i loop.wav --time 0.1 --depth 0.8
//
// Keys:
//
//	t / T   slower / faster modulation
//	d / D   less / more depth
//	r       clear the delay line and fade the input back in
//	q       quit
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/effects/flanger"
	"github.com/cwbudde/algo-modfx/dsp/signal"
	"github.com/cwbudde/algo-modfx/internal/wav"
	"github.com/ebitengine/oto/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type options struct {
	source string
	freq   float64
	in     string
	rate   int
	block  int
	time   float64
	depth  float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "modfxplay",
		Short: "Play a looping source through the flanger",
		Long: `Play a generated source or a WAV file in a loop through the flanger.

Keys:
  t / T   slower / faster modulation
  d / D   less / more depth
  r       clear the delay line and fade the input back in
  q       quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := play(o); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.source, "signal", "s", "noise", "generated source: sine or noise")
	f.Float64Var(&o.freq, "freq", 220, "sine frequency in Hz")
	f.StringVarP(&o.in, "input", "i", "", "loop a WAV file (left channel) instead of a generated source")
	f.IntVar(&o.rate, "rate", 48000, "output sample rate")
	f.IntVar(&o.block, "block", 64, "processing block size in frames")
	f.Float64Var(&o.time, "time", flanger.DefaultTime, "initial modulation time in [0, 1]")
	f.Float64Var(&o.depth, "depth", flanger.DefaultDepth, "initial modulation depth in [0, 1]")

	return cmd
}

func play(o options) error {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(o.rate), core.WithBlockSize(o.block))

	src, err := loadLoop(o.in, o.source, o.freq, cfg)
	if err != nil {
		return err
	}

	fx, err := flanger.New(flanger.WithSampleRate(cfg.SampleRate))
	if err != nil {
		return err
	}
	fx.SetTime(o.time)
	fx.SetDepth(o.depth)

	pl := newPlayer(fx, src, cfg.BlockSize)

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio output: %w", err)
	}
	<-ready

	out := ctx.NewPlayer(pl)
	out.Play()
	defer out.Close()

	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	fmt.Print(statusLine(pl))

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return nil
		}
		if n == 0 {
			continue
		}

		switch handleKey(pl, buf[0]) {
		case actionQuit:
			fmt.Print("\r\n")
			return nil
		case actionChanged:
			fmt.Print(statusLine(pl))
		}
	}
}

func loadLoop(path, source string, freq float64, cfg core.ProcessorConfig) ([]float32, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		a, err := wav.Read(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if a.SampleRate != cfg.SampleRate {
			fmt.Fprintf(os.Stderr, "warning: %s is %d Hz, playing at %d Hz\n", path, a.SampleRate, cfg.SampleRate)
		}

		return a.Channel(0), nil
	}

	gen := signal.NewGenerator(core.WithSampleRate(cfg.SampleRate))

	var (
		x   []float64
		err error
	)

	switch strings.ToLower(source) {
	case "sine":
		// One second, rounded to whole cycles so the loop is seamless.
		cycles := max(1, int(freq+0.5))
		x, err = gen.Sine(float64(cycles), 0.5, cfg.SampleRate)
	case "noise":
		x, err = gen.WhiteNoise(0.5, cfg.SampleRate)
	default:
		return nil, fmt.Errorf("unknown signal %q", source)
	}

	if err != nil {
		return nil, err
	}

	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}

	return out, nil
}
