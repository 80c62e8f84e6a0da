package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/matchboard/logging"
	"github.com/automoto/matchboard/server/core"
	"github.com/automoto/matchboard/shared/netconfig"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env", ".env", "Optional .env file")
	recvAddr := flag.String("recv", "", "Control listen address (default from config)")
	sendAddr := flag.String("send", "", "Status destination address (default from config)")
	feedAddr := flag.String("feed", "", "Spectator feed HTTP address (empty = disabled)")
	length := flag.Duration("length", 0, "Match length (default from config)")
	tickRate := flag.Int("tickrate", 0, "Ticks per second (default from config)")
	level := flag.String("log-level", "", "Log level (default from config)")
	flag.Parse()

	if err := netconfig.Load(*envFile); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Flags given on the command line override the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "recv":
			netconfig.Net.RecvAddr = *recvAddr
		case "send":
			netconfig.Net.SendAddr = *sendAddr
		case "feed":
			netconfig.Feed.Addr = *feedAddr
		case "length":
			netconfig.Match.Length = *length
		case "tickrate":
			netconfig.Server.TickRate = *tickRate
		case "log-level":
			netconfig.Log.Level = *level
		}
	})

	logger, err := logging.New(netconfig.Log.Level, netconfig.Log.Development)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg := core.Config{
		Net:      netconfig.Net,
		Match:    netconfig.Match,
		Feed:     netconfig.Feed,
		TickRate: netconfig.Server.TickRate,
	}

	server, err := core.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("could not start", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("matchboard controller running",
		zap.String("control", server.ControlAddr()),
		zap.String("status", cfg.Net.SendAddr),
		zap.String("feed", server.FeedAddr()),
		zap.Duration("length", cfg.Match.Length))
	if err := server.Run(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
