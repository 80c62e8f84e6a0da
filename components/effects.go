package components

import (
	"github.com/automoto/matchboard/shared/match"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// FlashData highlights a score plate after its value changes.
type FlashData struct {
	Tween *gween.Tween // nil when idle
	Level float32      // 1 = full highlight, 0 = none
}

// PulseData drives the low-time clock pulse.
type PulseData struct {
	Tween  *gween.Tween
	Level  float32
	Rising bool
}

// EffectsData holds the board's transient animations.
type EffectsData struct {
	Flash [2]FlashData // Indexed by match.Side
	Pulse PulseData
}

func (e *EffectsData) FlashOf(side match.Side) *FlashData {
	return &e.Flash[side]
}

var Effects = donburi.NewComponentType[EffectsData]()
