package response

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Option configures Analyze.
type Option func(*config) error

type config struct {
	fftSize int
}

// WithFFTSize sets the transform length. It must be a power of two and at
// least as long as the impulse response.
func WithFFTSize(n int) Option {
	return func(cfg *config) error {
		if n < 2 || n&(n-1) != 0 {
			return fmt.Errorf("response FFT size must be a power of two >= 2: %d", n)
		}

		cfg.fftSize = n

		return nil
	}
}

// Response is the magnitude response of an impulse response.
type Response struct {
	SampleRate float64
	FFTSize    int

	// Magnitude holds |H(k)| for bins 0..FFTSize/2.
	Magnitude []float64

	// Peak is the largest absolute sample of the impulse response.
	Peak float64
}

// Analyze transforms ir and returns its magnitude response.
func Analyze(ir []float64, sampleRate float64, opts ...Option) (*Response, error) {
	if len(ir) == 0 {
		return nil, fmt.Errorf("response impulse response must not be empty")
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("response sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := config{fftSize: nextPow2(len(ir))}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	if cfg.fftSize < len(ir) {
		return nil, fmt.Errorf("response FFT size %d shorter than impulse response %d", cfg.fftSize, len(ir))
	}

	in := make([]complex128, cfg.fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(cfg.fftSize)
	if err != nil {
		return nil, fmt.Errorf("response FFT plan: %w", err)
	}

	out := make([]complex128, cfg.fftSize)

	err = plan.Forward(out, in)
	if err != nil {
		return nil, fmt.Errorf("response FFT: %w", err)
	}

	bins := cfg.fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return &Response{
		SampleRate: sampleRate,
		FFTSize:    cfg.fftSize,
		Magnitude:  mag,
		Peak:       vecmath.MaxAbs(ir),
	}, nil
}

// BinHz returns the bin spacing in Hz.
func (r *Response) BinHz() float64 {
	return r.SampleRate / float64(r.FFTSize)
}

// At returns the magnitude of the bin nearest to freqHz.
func (r *Response) At(freqHz float64) float64 {
	k := int(math.Round(freqHz / r.BinHz()))
	if k < 0 {
		k = 0
	} else if k >= len(r.Magnitude) {
		k = len(r.Magnitude) - 1
	}

	return r.Magnitude[k]
}

// Notches returns the frequencies of up to maxCount local minima that lie
// at least depthDB below the response maximum, lowest frequency first.
func (r *Response) Notches(maxCount int, depthDB float64) []float64 {
	if maxCount <= 0 || len(r.Magnitude) < 3 {
		return nil
	}

	ceiling := vecmath.MaxAbs(r.Magnitude)
	if ceiling == 0 {
		return nil
	}

	limit := ceiling * math.Pow(10, -depthDB/20)

	var notches []float64

	for k := 1; k < len(r.Magnitude)-1; k++ {
		m := r.Magnitude[k]
		if m > limit || m >= r.Magnitude[k-1] || m > r.Magnitude[k+1] {
			continue
		}

		notches = append(notches, float64(k)*r.BinHz())
		if len(notches) == maxCount {
			break
		}
	}

	return notches
}

func nextPow2(n int) int {
	if n <= 1 {
		return 2
	}

	return 1 << bits.Len(uint(n-1))
}
