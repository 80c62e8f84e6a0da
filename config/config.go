package config

import (
	"image/color"
	"time"
)

// DisplayConfig contains scoreboard window and drawing values.
// Ratios are relative to the window height so the board scales when resized.
type DisplayConfig struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	ShowLegend bool
	AppName    string // Settings storage namespace

	Margin         float64 // Gap around the coloured halves
	ScoreFontRatio float64
	TimeFontRatio  float64
	BannerFontSize float64
	LegendFontSize float64
	MinFontSize    float64

	RedColor       color.RGBA
	BlueColor      color.RGBA
	PlateColor     color.RGBA
	TextColor      color.RGBA
	DividerColor   color.RGBA
	FlashColor     color.RGBA
	LowTimeColor   color.RGBA
	BannerColor    color.RGBA
	BackgroundFill color.RGBA

	FlashDuration    float32       // Seconds a score plate stays highlighted after a change
	PulseDuration    float32       // Seconds per low-time pulse
	LowTimeThreshold time.Duration // Remaining time below which the clock pulses
}

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black        = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Blue         = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	BrightYellow = color.RGBA{R: 255, G: 255, B: 100, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

// Display is the global display configuration
var Display DisplayConfig

func init() {
	Display = DisplayConfig{
		Title:      "Matchboard",
		Width:      1280,
		Height:     720,
		Fullscreen: true,
		ShowLegend: true,
		AppName:    "matchboard",

		Margin:         10,
		ScoreFontRatio: 1.0 / 6.0,
		TimeFontRatio:  1.0 / 5.0,
		BannerFontSize: 28,
		LegendFontSize: 14,
		MinFontSize:    16,

		RedColor:       Red,
		BlueColor:      Blue,
		PlateColor:     Black,
		TextColor:      White,
		DividerColor:   White,
		FlashColor:     BrightYellow,
		LowTimeColor:   LightRed,
		BannerColor:    BrightOrange,
		BackgroundFill: Black,

		FlashDuration:    0.4,
		PulseDuration:    0.5,
		LowTimeThreshold: 10 * time.Second,
	}
}
