package systems

import (
	"encoding/json"

	"github.com/automoto/matchboard/components"
	cfg "github.com/automoto/matchboard/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
	"go.uber.org/zap"
)

const settingsKey = "settings"

// SavedSettings represents the display preferences stored on disk. Match
// state is never persisted.
type SavedSettings struct {
	Fullscreen bool `json:"fullscreen"`
	ShowLegend bool `json:"showLegend"`
}

// itemStore is the part of *gdata.Manager the board uses.
type itemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

var (
	store  itemStore
	logger = zap.NewNop()

	// setFullscreen is swapped out in tests.
	setFullscreen = ebiten.SetFullscreen
)

// SetLogger sets the logger used by the systems package.
func SetLogger(l *zap.Logger) {
	logger = l.Named("board")
}

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.Display.AppName,
	})
	if err != nil {
		return err
	}
	store = m
	return nil
}

// LoadSettings returns the saved display settings, or the configured
// defaults when nothing usable is stored.
func LoadSettings() components.DisplaySettingsData {
	settings := components.DisplaySettingsData{
		Fullscreen: cfg.Display.Fullscreen,
		ShowLegend: cfg.Display.ShowLegend,
	}
	if store == nil {
		return settings
	}

	data, err := store.LoadItem(settingsKey)
	if err != nil {
		logger.Warn("could not load settings", zap.Error(err))
		return settings
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return settings
	}

	var saved SavedSettings
	if err := json.Unmarshal(data, &saved); err != nil {
		logger.Warn("could not parse saved settings", zap.Error(err))
		return settings
	}
	settings.Fullscreen = saved.Fullscreen
	settings.ShowLegend = saved.ShowLegend
	return settings
}

// SaveDisplaySettings writes the display settings to disk. Failures are
// logged; the board keeps running with the in-memory values.
func SaveDisplaySettings(s *components.DisplaySettingsData) {
	if store == nil {
		return
	}

	data, err := json.Marshal(SavedSettings{
		Fullscreen: s.Fullscreen,
		ShowLegend: s.ShowLegend,
	})
	if err != nil {
		logger.Warn("could not serialize settings", zap.Error(err))
		return
	}
	if err := store.SaveItem(settingsKey, data); err != nil {
		logger.Warn("could not save settings", zap.Error(err))
	}
}

// ApplyDisplaySettings pushes the settings to the window.
func ApplyDisplaySettings(s components.DisplaySettingsData) {
	setFullscreen(s.Fullscreen)
}
