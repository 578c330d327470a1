package main

import (
	"fmt"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/effects/flanger"
)

const paramStep = 0.05

type action int

const (
	actionNone action = iota
	actionChanged
	actionQuit
)

// stepParam moves a normalized parameter by delta, staying in [0, 1].
func stepParam(v, delta float64) float64 {
	return core.Clamp(v+delta, 0, 1)
}

// handleKey maps one key press to a parameter change on pl.
func handleKey(pl *player, key byte) action {
	switch key {
	case 't':
		pl.adjust(func(fx *flanger.Flanger) { fx.SetTime(stepParam(fx.Time(), -paramStep)) })
	case 'T':
		pl.adjust(func(fx *flanger.Flanger) { fx.SetTime(stepParam(fx.Time(), paramStep)) })
	case 'd':
		pl.adjust(func(fx *flanger.Flanger) { fx.SetDepth(stepParam(fx.Depth(), -paramStep)) })
	case 'D':
		pl.adjust(func(fx *flanger.Flanger) { fx.SetDepth(stepParam(fx.Depth(), paramStep)) })
	case 'r':
		pl.adjust(func(fx *flanger.Flanger) { fx.Resume() })
	case 'q', 'Q', 0x03, 0x1b:
		return actionQuit
	default:
		return actionNone
	}

	return actionChanged
}

func statusLine(pl *player) string {
	time, depth := pl.settings()
	return fmt.Sprintf("\rtime=%.2f depth=%.2f  [t/T time, d/D depth, r resume, q quit] ", time, depth)
}
