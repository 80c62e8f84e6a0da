package core

import (
	"context"
	"fmt"
	"time"

	"github.com/automoto/matchboard/shared/match"
	"go.uber.org/zap"
)

// Controller runs one control tick against the engine.
type Controller interface {
	Step(e *match.Engine, elapsed time.Duration) match.Snapshot
}

// Publisher receives every post-tick snapshot without blocking.
type Publisher interface {
	Publish(snap match.Snapshot)
}

// GameLoop drives the match tick from a ticker instead of a display.
// Elapsed time per tick is measured, so a late tick credits the clock with
// the time that actually passed.
type GameLoop struct {
	engine   *match.Engine
	ctrl     Controller
	feed     Publisher
	tickRate int
	log      *zap.Logger
	now      func() time.Time
}

func NewGameLoop(engine *match.Engine, ctrl Controller, feed Publisher, tickRate int, log *zap.Logger) *GameLoop {
	return &GameLoop{
		engine:   engine,
		ctrl:     ctrl,
		feed:     feed,
		tickRate: tickRate,
		log:      log,
		now:      time.Now,
	}
}

// Run ticks until ctx is cancelled.
func (g *GameLoop) Run(ctx context.Context) error {
	if g.tickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", g.tickRate)
	}
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.log.Info("control loop started", zap.Int("tickRate", g.tickRate))

	last := g.now()
	for {
		select {
		case <-ctx.Done():
			g.log.Info("control loop stopped")
			return nil
		case <-ticker.C:
			now := g.now()
			g.tick(now.Sub(last))
			last = now
		}
	}
}

func (g *GameLoop) tick(elapsed time.Duration) match.Snapshot {
	snap := g.ctrl.Step(g.engine, elapsed)
	if g.feed != nil {
		g.feed.Publish(snap)
	}
	return snap
}
