package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/automoto/matchboard/components"
	"github.com/automoto/matchboard/config"
	"github.com/automoto/matchboard/feed"
	"github.com/automoto/matchboard/fonts"
	"github.com/automoto/matchboard/logging"
	"github.com/automoto/matchboard/network"
	"github.com/automoto/matchboard/scenes"
	"github.com/automoto/matchboard/shared/match"
	"github.com/automoto/matchboard/shared/netconfig"
	"github.com/automoto/matchboard/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

type Game struct {
	scene *scenes.ScoreboardScene
}

func (g *Game) Update() error {
	g.scene.Update()
	if g.scene.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout uses the window size as is so the board scales with it.
func (g *Game) Layout(width, height int) (int, int) {
	return width, height
}

func main() {
	if err := netconfig.Load(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(netconfig.Log.Level, netconfig.Log.Development)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	systems.SetLogger(logger)

	if err := run(logger); err != nil {
		logger.Error("board stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	if err := fonts.LoadDefaults(); err != nil {
		return err
	}

	link, err := network.Open(netconfig.Net, logger.Named("net"))
	if err != nil {
		return fmt.Errorf("open control link: %w", err)
	}
	defer link.Close()

	engine := match.NewEngine(netconfig.Match.Length)
	board := components.BoardData{
		Engine:     engine,
		Controller: link,
		TickLength: time.Second / time.Duration(ebiten.TPS()),
	}

	if netconfig.Feed.Addr != "" {
		srv, err := feed.Start(netconfig.Feed, engine.Snapshot(), logger.Named("feed"))
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Close(ctx)
		}()
		board.Feed = srv
	}

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		logger.Warn("could not initialize persistence", zap.Error(err))
	}
	settings := systems.LoadSettings()

	ebiten.SetWindowTitle(config.Display.Title)
	ebiten.SetWindowSize(config.Display.Width, config.Display.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	systems.ApplyDisplaySettings(settings)

	game := &Game{scene: scenes.NewScoreboardScene(board, settings)}
	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	return nil
}
