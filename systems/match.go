package systems

import (
	"github.com/automoto/matchboard/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateMatch runs the control tick: queued protocol intents are applied,
// the clock advances by one tick and the status goes out. The resulting
// snapshot is kept for the renderers and handed to the spectator feed.
func UpdateMatch(ecs *ecs.ECS) {
	board, ok := getBoard(ecs)
	if !ok {
		return
	}

	board.Prev = board.Last
	board.Last = board.Controller.Step(board.Engine, board.TickLength)

	if board.Feed != nil {
		board.Feed.Publish(board.Last)
	}
}

// QuitRequested reports whether the quit action has fired.
func QuitRequested(ecs *ecs.ECS) bool {
	board, ok := getBoard(ecs)
	return ok && board.Quit
}

func getBoard(ecs *ecs.ECS) (*components.BoardData, bool) {
	entry, ok := components.Board.First(ecs.World)
	if !ok {
		return nil, false
	}
	return components.Board.Get(entry), true
}
