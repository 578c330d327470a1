package main

import (
	"encoding/binary"
	"io"
	"math"
	"sync"

	"github.com/cwbudde/algo-modfx/dsp/effects/flanger"
)

const bytesPerFrame = 2 * 4 // stereo float32

// player feeds a looping mono source through the flanger. It implements
// io.Reader for the audio backend, which pulls from its own goroutine, so
// every access to the effect holds mu.
type player struct {
	mu sync.Mutex

	fx     *flanger.Flanger
	source []float32
	pos    int
	block  int

	mainIn, mainOut []float32
	subIn, subOut   []float32
}

func newPlayer(fx *flanger.Flanger, source []float32, block int) *player {
	return &player{
		fx:      fx,
		source:  source,
		block:   block,
		mainIn:  make([]float32, 2*block),
		mainOut: make([]float32, 2*block),
		subIn:   make([]float32, 2*block),
		subOut:  make([]float32, 2*block),
	}
}

// Read renders len(p)/8 stereo float32 frames into p. A buffer shorter than
// one frame yields io.ErrShortBuffer.
func (pl *player) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}

	pl.mu.Lock()
	defer pl.mu.Unlock()
	off := 0

	for frames > 0 {
		n := min(frames, pl.block)

		for i := 0; i < n; i++ {
			x := float32(0)
			if len(pl.source) > 0 {
				x = pl.source[pl.pos]
				pl.pos++
				if pl.pos == len(pl.source) {
					pl.pos = 0
				}
			}
			pl.mainIn[2*i] = x
			pl.mainIn[2*i+1] = x
		}

		pl.fx.Process(pl.mainIn, pl.mainOut, pl.subIn, pl.subOut, n)

		for _, v := range pl.mainOut[:2*n] {
			binary.LittleEndian.PutUint32(p[off:], math.Float32bits(v))
			off += 4
		}

		frames -= n
	}

	return off, nil
}

// adjust applies fn to the effect under the player lock.
func (pl *player) adjust(fn func(fx *flanger.Flanger)) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	fn(pl.fx)
}

// settings returns the current time and depth parameters.
func (pl *player) settings() (time, depth float64) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	return pl.fx.Time(), pl.fx.Depth()
}
