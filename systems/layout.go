package systems

import (
	"image/color"

	cfg "github.com/automoto/matchboard/config"
)

// plate is a bar with semicircular ends: a rectangle centred on (X, Y) plus
// a circle of radius R at each end.
type plate struct {
	X, Y, W, R float64
}

// rect is an axis-aligned rectangle by its top-left corner.
type rect struct {
	X, Y, W, H float64
}

// boardLayout holds every position the renderers need, in screen pixels
// with the origin at the top left.
type boardLayout struct {
	RedHalf, BlueHalf rect
	ScorePlate        plate
	Divider           rect
	RedScore          point
	BlueScore         point
	TimePlate         plate
	Time              point
	Banner            point
	RedLegend         point
	BlueLegend        point

	ScoreFont  float64
	TimeFont   float64
	BannerFont float64
}

type point struct{ X, Y float64 }

// layoutFor scales the board to a w by h screen.
func layoutFor(w, h float64) boardLayout {
	m := cfg.Display.Margin
	halfW := (w - m) / 2

	return boardLayout{
		RedHalf:  rect{X: w/4 - halfW/2, Y: m / 2, W: halfW, H: h - m},
		BlueHalf: rect{X: 3*w/4 - halfW/2, Y: m / 2, W: halfW, H: h - m},

		ScorePlate: plate{X: w / 2, Y: h / 4, W: w / 2, R: h / 10},
		Divider:    rect{X: w/2 - w/40, Y: h/4 - h/80, W: w / 20, H: h / 40},
		RedScore:   point{X: w * 0.32, Y: h * 0.22},
		BlueScore:  point{X: w * 0.68, Y: h * 0.22},

		TimePlate: plate{X: w / 2, Y: 3 * h / 4, W: w / 3, R: h / 8},
		Time:      point{X: w / 2, Y: h * 0.72},

		Banner:     point{X: w / 2, Y: h / 2},
		RedLegend:  point{X: w / 4, Y: h - 35},
		BlueLegend: point{X: 3 * w / 4, Y: h - 35},

		ScoreFont:  fontSize(h * cfg.Display.ScoreFontRatio),
		TimeFont:   fontSize(h * cfg.Display.TimeFontRatio),
		BannerFont: fontSize(cfg.Display.BannerFontSize),
	}
}

// fontSize falls back to the configured minimum when the window is too
// small for a usable size.
func fontSize(size float64) float64 {
	if size < 1 {
		return cfg.Display.MinFontSize
	}
	return size
}

// lerpColor blends from a toward b by t in [0, 1].
func lerpColor(a, b color.RGBA, t float32) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
