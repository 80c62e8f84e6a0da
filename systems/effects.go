package systems

import (
	"github.com/automoto/matchboard/components"
	cfg "github.com/automoto/matchboard/config"
	"github.com/automoto/matchboard/shared/match"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEffects starts a flash whenever a score changed this tick, whether
// from a key or a protocol message, and pulses the clock near full time.
// Must run AFTER UpdateMatch.
func UpdateEffects(ecs *ecs.ECS) {
	board, ok := getBoard(ecs)
	if !ok {
		return
	}
	entry, ok := components.Effects.First(ecs.World)
	if !ok {
		return
	}
	fx := components.Effects.Get(entry)
	dt := float32(board.TickLength.Seconds())

	for _, side := range []match.Side{match.Red, match.Blue} {
		flash := fx.FlashOf(side)
		if board.Last.Score(side) != board.Prev.Score(side) {
			flash.Tween = gween.New(1, 0, cfg.Display.FlashDuration, ease.OutQuad)
		}
		updateFlash(flash, dt)
	}

	updatePulse(&fx.Pulse, board.Last, dt)
}

func updateFlash(flash *components.FlashData, dt float32) {
	if flash.Tween == nil {
		flash.Level = 0
		return
	}
	level, done := flash.Tween.Update(dt)
	flash.Level = level
	if done {
		flash.Tween = nil
		flash.Level = 0
	}
}

// lowTime reports whether the clock should pulse.
func lowTime(snap match.Snapshot) bool {
	return snap.Phase == match.PhaseRunning &&
		snap.Remaining > 0 &&
		snap.Remaining < cfg.Display.LowTimeThreshold
}

func updatePulse(pulse *components.PulseData, snap match.Snapshot, dt float32) {
	if !lowTime(snap) {
		*pulse = components.PulseData{}
		return
	}
	if pulse.Tween == nil {
		pulse.Rising = true
		pulse.Tween = gween.New(0, 1, cfg.Display.PulseDuration, ease.InOutSine)
	}
	level, done := pulse.Tween.Update(dt)
	pulse.Level = level
	if done {
		// Bounce back the other way.
		from, to := float32(1), float32(0)
		if !pulse.Rising {
			from, to = 0, 1
		}
		pulse.Rising = !pulse.Rising
		pulse.Tween = gween.New(from, to, cfg.Display.PulseDuration, ease.InOutSine)
	}
}
