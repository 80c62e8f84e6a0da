package components

import "github.com/yohamta/donburi"

// DisplaySettingsData holds the user's persisted display preferences.
type DisplaySettingsData struct {
	Fullscreen bool
	ShowLegend bool
}

var DisplaySettings = donburi.NewComponentType[DisplaySettingsData]()
