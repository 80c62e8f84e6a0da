package core

import (
	"context"
	"errors"
	"time"

	"github.com/automoto/matchboard/feed"
	"github.com/automoto/matchboard/network"
	"github.com/automoto/matchboard/shared/match"
	"github.com/automoto/matchboard/shared/netconfig"
	"go.uber.org/zap"
)

// Config collects what the headless controller needs.
type Config struct {
	Net      netconfig.NetConfig
	Match    netconfig.MatchConfig
	Feed     netconfig.FeedConfig
	TickRate int
}

// Server is the headless match controller: the control link, the engine
// and, when configured, the spectator feed.
type Server struct {
	engine *match.Engine
	link   *network.Link
	feed   *feed.Server
	loop   *GameLoop
	log    *zap.Logger
}

// NewServer binds every socket. Any bind failure is returned and nothing is
// left open.
func NewServer(cfg Config, log *zap.Logger) (*Server, error) {
	s := &Server{
		engine: match.NewEngine(cfg.Match.Length),
		log:    log,
	}

	link, err := network.Open(cfg.Net, log.Named("net"))
	if err != nil {
		return nil, err
	}
	s.link = link

	var pub Publisher
	if cfg.Feed.Addr != "" {
		srv, err := feed.Start(cfg.Feed, s.engine.Snapshot(), log.Named("feed"))
		if err != nil {
			_ = link.Close()
			return nil, err
		}
		s.feed = srv
		pub = srv
	}

	s.loop = NewGameLoop(s.engine, link, pub, cfg.TickRate, log.Named("loop"))
	return s, nil
}

// ControlAddr returns the bound control address.
func (s *Server) ControlAddr() string { return s.link.Addr() }

// FeedAddr returns the feed address, or "" when the feed is disabled.
func (s *Server) FeedAddr() string {
	if s.feed == nil {
		return ""
	}
	return s.feed.Addr().String()
}

// Run ticks until ctx is cancelled, then releases every socket.
func (s *Server) Run(ctx context.Context) error {
	err := s.loop.Run(ctx)
	return errors.Join(err, s.close())
}

func (s *Server) close() error {
	var errs []error
	if s.feed != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		errs = append(errs, s.feed.Close(ctx))
		cancel()
	}
	errs = append(errs, s.link.Close())
	return errors.Join(errs...)
}
