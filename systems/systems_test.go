package systems

import (
	"errors"
	"testing"
	"time"

	"github.com/automoto/matchboard/components"
	cfg "github.com/automoto/matchboard/config"
	"github.com/automoto/matchboard/shared/match"
	"github.com/automoto/matchboard/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const tick = time.Second / 60

// stepper advances the engine the way network.Link does, minus the sockets.
type stepper struct {
	queued []match.Intent
	steps  int
}

func (s *stepper) Step(e *match.Engine, elapsed time.Duration) match.Snapshot {
	for _, in := range s.queued {
		e.Apply(in)
	}
	s.queued = nil
	s.steps++
	e.Advance(elapsed)
	return e.Snapshot()
}

type feedRecorder struct{ got []match.Snapshot }

func (f *feedRecorder) Publish(snap match.Snapshot) { f.got = append(f.got, snap) }

type memStore struct {
	items map[string][]byte
	err   error
}

func (m *memStore) LoadItem(key string) ([]byte, error) { return m.items[key], m.err }

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.items[key] = data
	return nil
}

type testBoard struct {
	ecs  *ecs.ECS
	ctrl *stepper
	feed *feedRecorder
	keys map[ebiten.Key]bool
}

func newTestBoard(t *testing.T) *testBoard {
	t.Helper()
	tb := &testBoard{
		ecs:  ecs.NewECS(donburi.NewWorld()),
		ctrl: &stepper{},
		feed: &feedRecorder{},
		keys: map[ebiten.Key]bool{},
	}
	factory.CreateBoard(tb.ecs, components.BoardData{
		Engine:     match.NewEngine(match.DefaultLength),
		Controller: tb.ctrl,
		Feed:       tb.feed,
		TickLength: tick,
	}, components.DisplaySettingsData{ShowLegend: true})

	prevKey, prevFull, prevStore := keyPressed, setFullscreen, store
	keyPressed = func(k ebiten.Key) bool { return tb.keys[k] }
	setFullscreen = func(bool) {}
	store = nil
	t.Cleanup(func() { keyPressed, setFullscreen, store = prevKey, prevFull, prevStore })
	return tb
}

// frame runs one update in scene order.
func (tb *testBoard) frame() {
	UpdateInput(tb.ecs)
	UpdateControls(tb.ecs)
	UpdateMatch(tb.ecs)
	UpdateEffects(tb.ecs)
}

// press holds key for one frame and releases it on the next.
func (tb *testBoard) press(key ebiten.Key) {
	tb.keys[key] = true
	tb.frame()
	tb.keys[key] = false
	tb.frame()
}

func (tb *testBoard) board() *components.BoardData {
	b, _ := getBoard(tb.ecs)
	return b
}

func TestGetAction(t *testing.T) {
	var input components.InputData
	input.Current[cfg.ActionReset] = true
	assert.Equal(t, components.ActionState{Pressed: true, JustPressed: true}, GetAction(&input, cfg.ActionReset))

	input.Previous[cfg.ActionReset] = true
	assert.Equal(t, components.ActionState{Pressed: true}, GetAction(&input, cfg.ActionReset))

	input.Current[cfg.ActionReset] = false
	assert.Equal(t, components.ActionState{JustReleased: true}, GetAction(&input, cfg.ActionReset))
}

func TestKeyScoreSteps(t *testing.T) {
	tests := []struct {
		name     string
		keys     []ebiten.Key
		wantRed  match.Score
		wantBlue match.Score
	}{
		{"Q adds two to red", []ebiten.Key{ebiten.KeyQ}, 2, 0},
		{"W adds one to red", []ebiten.Key{ebiten.KeyW}, 1, 0},
		{"A needs more than one", []ebiten.Key{ebiten.KeyW, ebiten.KeyA}, 1, 0},
		{"S takes one from red", []ebiten.Key{ebiten.KeyQ, ebiten.KeyS}, 1, 0},
		{"T adds two to blue", []ebiten.Key{ebiten.KeyT}, 0, 2},
		{"R adds one to blue", []ebiten.Key{ebiten.KeyR}, 0, 1},
		{"G takes two from blue", []ebiten.Key{ebiten.KeyT, ebiten.KeyT, ebiten.KeyG}, 0, 2},
		{"F at zero does nothing", []ebiten.Key{ebiten.KeyF}, 0, 0},
		{"Q stops below eight", []ebiten.Key{ebiten.KeyQ, ebiten.KeyQ, ebiten.KeyQ, ebiten.KeyQ, ebiten.KeyQ}, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTestBoard(t)
			for _, k := range tt.keys {
				tb.press(k)
			}
			snap := tb.board().Last
			assert.Equal(t, tt.wantRed, snap.Red)
			assert.Equal(t, tt.wantBlue, snap.Blue)
		})
	}
}

func TestHeldKeyActsOnce(t *testing.T) {
	tb := newTestBoard(t)
	tb.keys[ebiten.KeyW] = true
	for range 10 {
		tb.frame()
	}
	assert.Equal(t, match.Score(1), tb.board().Last.Red)
}

func TestSpaceAndBackspace(t *testing.T) {
	tb := newTestBoard(t)

	tb.press(ebiten.KeySpace)
	assert.Equal(t, match.PhaseRunning, tb.board().Last.Phase)

	tb.press(ebiten.KeySpace)
	assert.Equal(t, match.PhasePause, tb.board().Last.Phase)
	paused := tb.board().Last.Remaining
	tb.frame()
	assert.Equal(t, paused, tb.board().Last.Remaining)

	tb.press(ebiten.KeyQ)
	tb.press(ebiten.KeyBackspace)
	snap := tb.board().Last
	assert.Equal(t, match.PhaseReset, snap.Phase)
	assert.Zero(t, snap.Red)
	assert.Equal(t, match.DefaultLength, snap.Remaining)
}

func TestEscapeRequestsQuit(t *testing.T) {
	tb := newTestBoard(t)
	assert.False(t, QuitRequested(tb.ecs))
	tb.press(ebiten.KeyEscape)
	assert.True(t, QuitRequested(tb.ecs))
}

func TestUpdateMatchFeedsEveryTick(t *testing.T) {
	tb := newTestBoard(t)
	tb.ctrl.queued = []match.Intent{match.TogglePause(), match.AddScore(match.Blue, 3)}

	for range 3 {
		tb.frame()
	}

	assert.Equal(t, 3, tb.ctrl.steps)
	require.Len(t, tb.feed.got, 3)
	last := tb.feed.got[2]
	assert.Equal(t, match.Score(3), last.Blue)
	assert.Equal(t, match.DefaultLength-3*tick, last.Remaining)
}

func TestScoreChangeFlashes(t *testing.T) {
	tb := newTestBoard(t)
	effects := func() *components.EffectsData {
		return components.Effects.Get(mustFirst(t, tb.ecs, components.Effects))
	}

	tb.ctrl.queued = []match.Intent{match.AddScore(match.Red, 1)}
	tb.frame()
	assert.Greater(t, effects().FlashOf(match.Red).Level, float32(0))
	assert.Zero(t, effects().FlashOf(match.Blue).Level)

	// The flash fades out completely.
	frames := int(float64(cfg.Display.FlashDuration)*60) + 2
	for range frames {
		tb.frame()
	}
	assert.Nil(t, effects().FlashOf(match.Red).Tween)
	assert.Zero(t, effects().FlashOf(match.Red).Level)
}

func TestLowTimePulse(t *testing.T) {
	snap := match.Snapshot{Phase: match.PhaseRunning, Remaining: 5 * time.Second}
	var pulse components.PulseData

	updatePulse(&pulse, snap, 0.1)
	require.NotNil(t, pulse.Tween)
	assert.Greater(t, pulse.Level, float32(0))

	// A full cycle bounces the direction.
	updatePulse(&pulse, snap, cfg.Display.PulseDuration)
	assert.False(t, pulse.Rising)

	snap.Phase = match.PhasePause
	updatePulse(&pulse, snap, 0.1)
	assert.Equal(t, components.PulseData{}, pulse)
}

func TestLowTime(t *testing.T) {
	tests := []struct {
		name string
		snap match.Snapshot
		want bool
	}{
		{"running near the end", match.Snapshot{Phase: match.PhaseRunning, Remaining: 9 * time.Second}, true},
		{"running with time to spare", match.Snapshot{Phase: match.PhaseRunning, Remaining: 30 * time.Second}, false},
		{"paused near the end", match.Snapshot{Phase: match.PhasePause, Remaining: 9 * time.Second}, false},
		{"ended", match.Snapshot{Phase: match.PhaseEnded}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lowTime(tt.snap))
		})
	}
}

func TestToggleKeysPersistSettings(t *testing.T) {
	tb := newTestBoard(t)
	mem := &memStore{items: map[string][]byte{}}
	store = mem
	var fullscreen []bool
	setFullscreen = func(on bool) { fullscreen = append(fullscreen, on) }

	tb.press(ebiten.KeyH)
	tb.press(ebiten.KeyF11)

	settings, _ := getDisplaySettings(tb.ecs)
	assert.False(t, settings.ShowLegend)
	assert.True(t, settings.Fullscreen)
	assert.Equal(t, []bool{true}, fullscreen)
	assert.JSONEq(t, `{"fullscreen":true,"showLegend":false}`, string(mem.items[settingsKey]))

	assert.Equal(t, components.DisplaySettingsData{Fullscreen: true, ShowLegend: false}, LoadSettings())
}

func TestLoadSettingsFallsBack(t *testing.T) {
	defaults := components.DisplaySettingsData{Fullscreen: cfg.Display.Fullscreen, ShowLegend: cfg.Display.ShowLegend}
	tests := []struct {
		name  string
		store itemStore
	}{
		{"no store", nil},
		{"nothing saved", &memStore{items: map[string][]byte{}}},
		{"load error", &memStore{err: errors.New("disk gone")}},
		{"bad json", &memStore{items: map[string][]byte{settingsKey: []byte("{")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := store
			store = tt.store
			defer func() { store = prev }()
			assert.Equal(t, defaults, LoadSettings())
		})
	}
}

func mustFirst[T any](t *testing.T, e *ecs.ECS, ct *donburi.ComponentType[T]) *donburi.Entry {
	t.Helper()
	entry, ok := ct.First(e.World)
	require.True(t, ok)
	return entry
}
