// Command modfxrender runs a test signal or a WAV file through the flanger
// and writes the result as a 32-bit float WAV file.
//
// Usage:
//
//	modfxrender [flags]
//
// Examples:
//
//	modfxrender --signal sine --freq 220 --seconds 4 -o sine.wav
//	modfxrender --time 0 --depth 1 --signal noise -o noise.wav
//	modfxrender --signal impulse --analyze
//	modfxrender -i guitar.wav --time 0.6 --normalize --peak -0.5 -o guitar-flanged.wav
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/effects/flanger"
	"github.com/cwbudde/algo-modfx/dsp/signal"
	"github.com/cwbudde/algo-modfx/internal/wav"
	"github.com/cwbudde/algo-modfx/measure/response"
	"github.com/cwbudde/algo-vecmath"
	"github.com/spf13/cobra"
)

type options struct {
	time    float64
	depth   float64
	source  string
	freq    float64
	seconds float64
	rate    int
	block   int
	seed    int64
	in      string
	out     string
	analyze bool
	notches int

	normalize bool
	peakDB    float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "modfxrender",
		Short: "Render a source through the flanger",
		Long: `Render a generated test signal or the left channel of a WAV file
through the flanger and write the result as a 32-bit float WAV file.

Examples:
  modfxrender --signal sine --freq 220 -o sine.wav
  modfxrender --signal impulse --analyze
  modfxrender -i guitar.wav --time 0.6 -o out.wav`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(o); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&o.time, "time", flanger.DefaultTime, "modulation time in [0, 1], larger is faster")
	f.Float64Var(&o.depth, "depth", flanger.DefaultDepth, "modulation depth in [0, 1]")
	f.StringVarP(&o.source, "signal", "s", "sine", "generated source: impulse, sine or noise")
	f.Float64Var(&o.freq, "freq", 220, "sine frequency in Hz")
	f.Float64Var(&o.seconds, "seconds", 2, "length of the generated source")
	f.IntVar(&o.rate, "rate", 48000, "sample rate of the generated source")
	f.IntVar(&o.block, "block", 64, "processing block size in frames")
	f.Int64Var(&o.seed, "seed", 1, "noise seed")
	f.StringVarP(&o.in, "input", "i", "", "read the source from a WAV file (left channel) instead of generating it")
	f.StringVarP(&o.out, "output", "o", "", "output WAV file; nothing is written when empty")
	f.BoolVar(&o.analyze, "analyze", false, "print the comb notches of the rendered output")
	f.IntVar(&o.notches, "notches", 8, "number of notches to print with --analyze")
	f.BoolVar(&o.normalize, "normalize", false, "scale the rendered output to --peak")
	f.Float64Var(&o.peakDB, "peak", -1, "target peak in dBFS for --normalize")

	return cmd
}

func run(o options) error {
	src, rate, err := loadSource(o)
	if err != nil {
		return err
	}

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(rate), core.WithBlockSize(o.block))

	out, err := render(src, cfg, o.time, o.depth)
	if err != nil {
		return err
	}

	if o.normalize {
		if out, err = normalize(out, o.peakDB); err != nil {
			return err
		}
	}

	peak := vecmath.MaxAbs(float64s(out))
	fmt.Printf("frames=%d rate=%d blocks=%d peak=%.4f (%.2f dBFS)\n",
		len(out), cfg.SampleRate, cfg.Blocks(len(out)), peak, core.LinearToDB(peak))

	if o.analyze {
		if err := printNotches(out, cfg.SampleRate, o.notches); err != nil {
			return err
		}
	}

	if o.out == "" {
		return nil
	}

	return writeFile(o.out, out, cfg.SampleRate)
}

func loadSource(o options) ([]float32, int, error) {
	if o.in != "" {
		f, err := os.Open(o.in)
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()

		a, err := wav.Read(f)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", o.in, err)
		}

		return a.Channel(0), a.SampleRate, nil
	}

	if o.seconds <= 0 {
		return nil, 0, fmt.Errorf("seconds must be > 0: %f", o.seconds)
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(o.rate)},
		signal.WithSeed(o.seed),
	)
	samples := int(o.seconds * float64(gen.Config().SampleRate))

	var (
		x   []float64
		err error
	)

	switch strings.ToLower(o.source) {
	case "impulse":
		x, err = gen.Impulse(1, 0, samples)
	case "sine":
		x, err = gen.Sine(o.freq, 0.5, samples)
	case "noise":
		x, err = gen.WhiteNoise(0.5, samples)
	default:
		return nil, 0, fmt.Errorf("unknown signal %q", o.source)
	}

	if err != nil {
		return nil, 0, err
	}

	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}

	return out, gen.Config().SampleRate, nil
}

// render processes src mono in cfg.BlockSize blocks through a fresh effect
// driven over the interleaved stereo interface.
func render(src []float32, cfg core.ProcessorConfig, time, depth float64) ([]float32, error) {
	fx, err := flanger.New(flanger.WithSampleRate(cfg.SampleRate))
	if err != nil {
		return nil, err
	}

	fx.SetTime(time)
	fx.SetDepth(depth)

	block := cfg.BlockSize
	mainIn := make([]float32, 2*block)
	mainOut := make([]float32, 2*block)
	subIn := make([]float32, 2*block)
	subOut := make([]float32, 2*block)

	out := make([]float32, len(src))

	for start := 0; start < len(src); start += block {
		frames := min(block, len(src)-start)

		for i := 0; i < frames; i++ {
			mainIn[2*i] = src[start+i]
			mainIn[2*i+1] = src[start+i]
		}

		fx.Process(mainIn, mainOut, subIn, subOut, frames)

		for i := 0; i < frames; i++ {
			out[start+i] = mainOut[2*i]
		}
	}

	return out, nil
}

// normalize scales x so its peak sits at peakDB dBFS.
func normalize(x []float32, peakDB float64) ([]float32, error) {
	if peakDB > 0 {
		return nil, fmt.Errorf("normalize peak must be <= 0 dBFS: %f", peakDB)
	}

	y, err := signal.Normalize(float64s(x), core.DBToLinear(peakDB))
	if err != nil {
		return nil, err
	}

	out := make([]float32, len(y))
	for i, v := range y {
		out[i] = float32(v)
	}

	return out, nil
}

func printNotches(out []float32, sampleRate, count int) error {
	resp, err := response.Analyze(float64s(out), float64(sampleRate))
	if err != nil {
		return err
	}

	notches := resp.Notches(count, 12)
	if len(notches) == 0 {
		fmt.Println("no notches deeper than 12 dB")
		return nil
	}

	for i, hz := range notches {
		fmt.Printf("notch %d: %8.1f Hz  %7.2f dB\n", i+1, hz, core.LinearToDB(resp.At(hz)))
	}

	return nil
}

func writeFile(path string, mono []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = wav.Write(f, &wav.Audio{SampleRate: sampleRate, Channels: 1, Samples: mono})
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return err
}

func float64s(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}

	return out
}
