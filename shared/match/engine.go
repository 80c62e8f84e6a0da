// Package match owns the authoritative scoreboard state: two scores, the
// countdown clock and the match phase. It has no dependencies on rendering or
// transport so the same engine runs windowed and headless.
package match

import "time"

// DefaultLength is the match length used when none is configured.
const DefaultLength = 120 * time.Second

// Snapshot is an immutable copy of the match state.
type Snapshot struct {
	Phase     Phase
	Red       Score
	Blue      Score
	Remaining time.Duration
}

// Score returns the score of the given side.
func (s Snapshot) Score(side Side) Score {
	if side == Blue {
		return s.Blue
	}
	return s.Red
}

// Clock splits the remaining time into whole minutes and the whole seconds
// left over.
func (s Snapshot) Clock() (minutes, seconds int) {
	total := s.Remaining.Seconds()
	minutes = int(total / 60)
	seconds = int(total) - minutes*60
	return minutes, seconds
}

// Engine holds the match state. It has a single owner, the tick driver, and
// is not safe for concurrent use.
type Engine struct {
	length    time.Duration
	phase     Phase
	red       Score
	blue      Score
	remaining time.Duration
}

// NewEngine returns an engine in the reset phase with a full clock. A
// negative length is treated as zero.
func NewEngine(length time.Duration) *Engine {
	if length < 0 {
		length = 0
	}
	return &Engine{
		length:    length,
		phase:     PhaseReset,
		remaining: length,
	}
}

// Length returns the configured match length.
func (e *Engine) Length() time.Duration { return e.length }

// Apply mutates the state according to a single intent.
func (e *Engine) Apply(in Intent) {
	switch in.Kind {
	case IntentAddScore:
		if sc := e.score(in.Side); sc != nil {
			sc.add(nibble(in.Amount))
		}
	case IntentSubScore:
		if sc := e.score(in.Side); sc != nil {
			sc.sub(nibble(in.Amount))
		}
	case IntentReset:
		e.reset()
	case IntentTogglePause:
		e.togglePause()
	}
}

// Adjust applies a keyboard score step with its own guard.
func (e *Engine) Adjust(side Side, st Step) {
	if sc := e.score(side); sc != nil {
		sc.step(st)
	}
}

// Advance moves the clock by elapsed. It runs once per tick after that tick's
// intents have been applied.
func (e *Engine) Advance(elapsed time.Duration) {
	switch e.phase {
	case PhaseReset:
		e.remaining = e.length
	case PhaseRunning:
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed >= e.remaining {
			e.remaining = 0
		} else {
			e.remaining -= elapsed
		}
	case PhasePause:
	case PhaseEnded:
		e.remaining = 0
	}
	if e.remaining <= 0 {
		e.remaining = 0
		e.phase = PhaseEnded
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Phase:     e.phase,
		Red:       e.red,
		Blue:      e.blue,
		Remaining: e.remaining,
	}
}

func (e *Engine) reset() {
	e.phase = PhaseReset
	e.red = 0
	e.blue = 0
}

func (e *Engine) togglePause() {
	next, wipe := e.phase.Toggled()
	if wipe {
		e.red = 0
		e.blue = 0
	}
	e.phase = next
}

func (e *Engine) score(side Side) *Score {
	switch side {
	case Red:
		return &e.red
	case Blue:
		return &e.blue
	}
	return nil
}
