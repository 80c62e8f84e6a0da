package systems

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/automoto/matchboard/components"
	cfg "github.com/automoto/matchboard/config"
	"github.com/automoto/matchboard/fonts"
	"github.com/automoto/matchboard/shared/match"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

var phaseBanners = map[match.Phase]string{
	match.PhaseReset: "READY",
	match.PhasePause: "PAUSED",
	match.PhaseEnded: "FULL TIME",
}

// DrawBoard renders both halves, the score plate and the clock.
func DrawBoard(ecs *ecs.ECS, screen *ebiten.Image) {
	board, ok := getBoard(ecs)
	if !ok {
		return
	}
	var fx components.EffectsData
	if entry, ok := components.Effects.First(ecs.World); ok {
		fx = *components.Effects.Get(entry)
	}

	b := screen.Bounds()
	l := layoutFor(float64(b.Dx()), float64(b.Dy()))
	snap := board.Last

	screen.Fill(cfg.Display.BackgroundFill)
	fillRect(screen, l.RedHalf, cfg.Display.RedColor)
	fillRect(screen, l.BlueHalf, cfg.Display.BlueColor)

	// Scores
	fillPlate(screen, l.ScorePlate, cfg.Display.PlateColor)
	fillRect(screen, l.Divider, cfg.Display.DividerColor)
	scoreFace := fonts.Bold.Face(l.ScoreFont)
	drawCentered(screen, strconv.Itoa(int(snap.Red)), scoreFace, l.RedScore,
		lerpColor(cfg.Display.TextColor, cfg.Display.FlashColor, fx.FlashOf(match.Red).Level))
	drawCentered(screen, strconv.Itoa(int(snap.Blue)), scoreFace, l.BlueScore,
		lerpColor(cfg.Display.TextColor, cfg.Display.FlashColor, fx.FlashOf(match.Blue).Level))

	// Time
	fillPlate(screen, l.TimePlate, cfg.Display.PlateColor)
	drawCentered(screen, clockText(snap), fonts.Bold.Face(l.TimeFont), l.Time,
		lerpColor(cfg.Display.TextColor, cfg.Display.LowTimeColor, fx.Pulse.Level))
}

// DrawBanner labels every phase except running.
func DrawBanner(ecs *ecs.ECS, screen *ebiten.Image) {
	board, ok := getBoard(ecs)
	if !ok {
		return
	}
	label, ok := phaseBanners[board.Last.Phase]
	if !ok {
		return
	}

	b := screen.Bounds()
	l := layoutFor(float64(b.Dx()), float64(b.Dy()))
	face := fonts.Bold.Face(l.BannerFont)
	width, ascent := fonts.Measure(face, label)

	pad := l.BannerFont / 2
	vector.FillRect(screen,
		float32(l.Banner.X-float64(width)/2-pad), float32(l.Banner.Y-float64(ascent)/2-pad/2),
		float32(float64(width)+2*pad), float32(float64(ascent)+pad),
		cfg.BlackOverlay, false)
	drawCentered(screen, label, face, l.Banner, cfg.Display.BannerColor)
}

// DrawLegend lists each side's keys at the bottom of its half.
func DrawLegend(ecs *ecs.ECS, screen *ebiten.Image) {
	settings, ok := getDisplaySettings(ecs)
	if !ok || !settings.ShowLegend {
		return
	}

	b := screen.Bounds()
	l := layoutFor(float64(b.Dx()), float64(b.Dy()))
	face := fonts.Regular.Face(cfg.Display.LegendFontSize)

	drawLines(screen, legendLines(match.Red), face, l.RedLegend)
	drawLines(screen, legendLines(match.Blue), face, l.BlueLegend)
}

// legendLines pairs the coarse and fine keys per row, then the phase key.
func legendLines(side match.Side) []string {
	label := func(id cfg.ActionID) string { return cfg.Input.Bindings[id].Label }
	if side == match.Blue {
		return []string{
			label(cfg.ActionBlueFineUp) + "    " + label(cfg.ActionBlueCoarseUp),
			label(cfg.ActionBlueFineDown) + "    " + label(cfg.ActionBlueCoarseDown),
			label(cfg.ActionReset),
		}
	}
	return []string{
		label(cfg.ActionRedCoarseUp) + "    " + label(cfg.ActionRedFineUp),
		label(cfg.ActionRedCoarseDown) + "    " + label(cfg.ActionRedFineDown),
		label(cfg.ActionTogglePause),
	}
}

// clockText formats the remaining time as M:SS.
func clockText(snap match.Snapshot) string {
	minutes, seconds := snap.Clock()
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func fillRect(screen *ebiten.Image, r rect, clr color.Color) {
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func fillPlate(screen *ebiten.Image, p plate, clr color.Color) {
	vector.FillRect(screen, float32(p.X-p.W/2), float32(p.Y-p.R), float32(p.W), float32(2*p.R), clr, true)
	vector.FillCircle(screen, float32(p.X-p.W/2), float32(p.Y), float32(p.R), clr, true)
	vector.FillCircle(screen, float32(p.X+p.W/2), float32(p.Y), float32(p.R), clr, true)
}

// drawCentered draws s with its box centred on at.
func drawCentered(screen *ebiten.Image, s string, face font.Face, at point, clr color.Color) {
	width, ascent := fonts.Measure(face, s)
	text.Draw(screen, s, face, int(at.X)-width/2, int(at.Y)+ascent/2, clr)
}

// drawLines stacks lines upward from the bottom anchor, each centred.
func drawLines(screen *ebiten.Image, lines []string, face font.Face, bottom point) {
	lineHeight := float64(face.Metrics().Height.Ceil())
	top := bottom.Y - lineHeight*float64(len(lines)-1)
	for i, line := range lines {
		drawCentered(screen, line, face, point{X: bottom.X, Y: top + lineHeight*float64(i)}, cfg.Display.TextColor)
	}
}
