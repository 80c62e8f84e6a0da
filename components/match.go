package components

import (
	"time"

	"github.com/automoto/matchboard/shared/match"
	"github.com/yohamta/donburi"
)

// Controller runs one control tick against the engine: apply queued
// protocol intents, advance the clock and transmit the status.
type Controller interface {
	Step(e *match.Engine, elapsed time.Duration) match.Snapshot
}

// Publisher receives every post-tick snapshot. Implementations must not block.
type Publisher interface {
	Publish(snap match.Snapshot)
}

// BoardData is the singleton holding the match engine and what the renderers
// read from it.
type BoardData struct {
	Engine     *match.Engine
	Controller Controller
	Feed       Publisher     // Optional spectator feed
	TickLength time.Duration // Clock time credited per update

	Prev match.Snapshot // Snapshot after the previous tick
	Last match.Snapshot // Snapshot after this tick

	Quit bool // Set by the quit action, read by the game loop
}

var Board = donburi.NewComponentType[BoardData]()
