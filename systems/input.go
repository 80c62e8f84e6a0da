package systems

import (
	"github.com/automoto/matchboard/components"
	cfg "github.com/automoto/matchboard/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// keyPressed is swapped out in tests.
var keyPressed = ebiten.IsKeyPressed

// UpdateInput polls raw input and updates the Input component.
// Must run BEFORE UpdateControls in the system order.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	pollBindings(input, keyPressed)
}

// pollBindings swaps buffers and records every action whose keys are down.
func pollBindings(input *components.InputData, pressed func(ebiten.Key) bool) {
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if pressed(key) {
				input.Current[actionID] = true
			}
		}
	}
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
	}
	return components.Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	curr := input.Current[id]
	prev := input.Previous[id]
	return components.ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}
