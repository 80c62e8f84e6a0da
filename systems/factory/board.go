package factory

import (
	"github.com/automoto/matchboard/archetypes"
	"github.com/automoto/matchboard/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateBoard spawns the board singleton. Last and Prev start at the
// engine's current snapshot so nothing flashes on the first tick.
func CreateBoard(ecs *ecs.ECS, board components.BoardData, settings components.DisplaySettingsData) *donburi.Entry {
	entry := archetypes.Board.Spawn(ecs)

	snap := board.Engine.Snapshot()
	board.Prev, board.Last = snap, snap
	components.Board.SetValue(entry, board)
	components.Effects.SetValue(entry, components.EffectsData{})
	components.DisplaySettings.SetValue(entry, settings)

	return entry
}
