package systems

import (
	"github.com/automoto/matchboard/components"
	cfg "github.com/automoto/matchboard/config"
	"github.com/automoto/matchboard/shared/match"
	"github.com/yohamta/donburi/ecs"
)

type scoreControl struct {
	action cfg.ActionID
	side   match.Side
	step   match.Step
}

// Applied in this order when several keys go down on the same frame.
var scoreControls = []scoreControl{
	{cfg.ActionRedCoarseUp, match.Red, match.StepCoarseUp},
	{cfg.ActionRedCoarseDown, match.Red, match.StepCoarseDown},
	{cfg.ActionRedFineUp, match.Red, match.StepFineUp},
	{cfg.ActionRedFineDown, match.Red, match.StepFineDown},
	{cfg.ActionBlueCoarseUp, match.Blue, match.StepCoarseUp},
	{cfg.ActionBlueCoarseDown, match.Blue, match.StepCoarseDown},
	{cfg.ActionBlueFineUp, match.Blue, match.StepFineUp},
	{cfg.ActionBlueFineDown, match.Blue, match.StepFineDown},
}

// UpdateControls turns key presses into engine intents and display toggles.
// Keys act on the press edge only; holding a key does nothing further.
func UpdateControls(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	board, ok := getBoard(ecs)
	if !ok {
		return
	}

	for _, c := range scoreControls {
		if GetAction(input, c.action).JustPressed {
			board.Engine.Adjust(c.side, c.step)
		}
	}
	if GetAction(input, cfg.ActionTogglePause).JustPressed {
		board.Engine.Apply(match.TogglePause())
	}
	if GetAction(input, cfg.ActionReset).JustPressed {
		board.Engine.Apply(match.Reset())
	}
	if GetAction(input, cfg.ActionQuit).JustPressed {
		board.Quit = true
	}

	settings, ok := getDisplaySettings(ecs)
	if !ok {
		return
	}
	changed := false
	if GetAction(input, cfg.ActionToggleFullscreen).JustPressed {
		settings.Fullscreen = !settings.Fullscreen
		setFullscreen(settings.Fullscreen)
		changed = true
	}
	if GetAction(input, cfg.ActionToggleLegend).JustPressed {
		settings.ShowLegend = !settings.ShowLegend
		changed = true
	}
	if changed {
		SaveDisplaySettings(settings)
	}
}

func getDisplaySettings(ecs *ecs.ECS) (*components.DisplaySettingsData, bool) {
	entry, ok := components.DisplaySettings.First(ecs.World)
	if !ok {
		return nil, false
	}
	return components.DisplaySettings.Get(entry), true
}
