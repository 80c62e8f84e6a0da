package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical board action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionRedCoarseUp
	ActionRedCoarseDown
	ActionRedFineUp
	ActionRedFineDown
	ActionBlueCoarseUp
	ActionBlueCoarseDown
	ActionBlueFineUp
	ActionBlueFineDown
	ActionTogglePause
	ActionReset
	ActionQuit
	ActionToggleFullscreen
	ActionToggleLegend
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents the keys bound to an action
type InputBinding struct {
	Keys []ebiten.Key
	// Label is shown in the on-screen legend
	Label string
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		Bindings: map[ActionID]InputBinding{
			ActionRedCoarseUp:      {Keys: []ebiten.Key{ebiten.KeyQ}, Label: "Q +2"},
			ActionRedCoarseDown:    {Keys: []ebiten.Key{ebiten.KeyA}, Label: "A -2"},
			ActionRedFineUp:        {Keys: []ebiten.Key{ebiten.KeyW}, Label: "W +1"},
			ActionRedFineDown:      {Keys: []ebiten.Key{ebiten.KeyS}, Label: "S -1"},
			ActionBlueCoarseUp:     {Keys: []ebiten.Key{ebiten.KeyT}, Label: "T +2"},
			ActionBlueCoarseDown:   {Keys: []ebiten.Key{ebiten.KeyG}, Label: "G -2"},
			ActionBlueFineUp:       {Keys: []ebiten.Key{ebiten.KeyR}, Label: "R +1"},
			ActionBlueFineDown:     {Keys: []ebiten.Key{ebiten.KeyF}, Label: "F -1"},
			ActionTogglePause:      {Keys: []ebiten.Key{ebiten.KeySpace}, Label: "Space (Start/Pause)"},
			ActionReset:            {Keys: []ebiten.Key{ebiten.KeyBackspace}, Label: "Backspace (Reset)"},
			ActionQuit:             {Keys: []ebiten.Key{ebiten.KeyEscape}, Label: "Esc (Quit)"},
			ActionToggleFullscreen: {Keys: []ebiten.Key{ebiten.KeyF11}, Label: "F11 (Fullscreen)"},
			ActionToggleLegend:     {Keys: []ebiten.Key{ebiten.KeyH}, Label: "H (Hide keys)"},
		},
	}
}
