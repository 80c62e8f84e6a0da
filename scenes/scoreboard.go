package scenes

import (
	"image/color"
	"sync"

	"github.com/automoto/matchboard/components"
	cfg "github.com/automoto/matchboard/config"
	"github.com/automoto/matchboard/systems"
	"github.com/automoto/matchboard/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ScoreboardScene is the only scene: the live board.
type ScoreboardScene struct {
	ecs      *ecs.ECS
	board    components.BoardData
	settings components.DisplaySettingsData
	once     sync.Once
}

func NewScoreboardScene(board components.BoardData, settings components.DisplaySettingsData) *ScoreboardScene {
	return &ScoreboardScene{board: board, settings: settings}
}

func (s *ScoreboardScene) Update() {
	s.once.Do(s.configure)
	s.ecs.Update()
}

// Quit reports whether the quit key has been pressed.
func (s *ScoreboardScene) Quit() bool {
	return s.ecs != nil && systems.QuitRequested(s.ecs)
}

func (s *ScoreboardScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if s.ecs == nil {
		return
	}
	s.ecs.Draw(screen)
}

func (s *ScoreboardScene) configure() {
	s.ecs = ecs.NewECS(donburi.NewWorld())

	// Tick order: keys, then protocol intents, clock and status send, then
	// effects that react to the new snapshot.
	s.ecs.AddSystem(systems.UpdateInput)
	s.ecs.AddSystem(systems.UpdateControls)
	s.ecs.AddSystem(systems.UpdateMatch)
	s.ecs.AddSystem(systems.UpdateEffects)

	s.ecs.AddRenderer(cfg.Default, systems.DrawBoard)
	s.ecs.AddRenderer(cfg.Overlay, systems.DrawBanner)
	s.ecs.AddRenderer(cfg.Overlay, systems.DrawLegend)

	factory.CreateBoard(s.ecs, s.board, s.settings)
}
