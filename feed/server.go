package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/automoto/matchboard/shared/match"
	"github.com/automoto/matchboard/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Server is the HTTP side of the feed.
type Server struct {
	hub          *Hub
	writeTimeout time.Duration
	log          *zap.Logger
	http         *http.Server
	ln           net.Listener
}

// NewServer wraps hub with the feed routes. Start listens and serves; tests
// mount Routes directly.
func NewServer(hub *Hub, cfg netconfig.FeedConfig, log *zap.Logger) *Server {
	s := &Server{hub: hub, writeTimeout: cfg.WriteTimeout, log: log}
	if s.writeTimeout <= 0 {
		s.writeTimeout = 3 * time.Second
	}
	s.http = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start builds a hub and serves it on cfg.Addr.
func Start(cfg netconfig.FeedConfig, initial match.Snapshot, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("feed listen %s: %w", cfg.Addr, err)
	}
	hub := NewHub(context.Background(), initial, cfg.InboxSize, cfg.ClientBuffer, log.Named("hub"))
	s := NewServer(hub, cfg, log)
	s.ln = ln
	go s.serve()

	log.Info("serving spectator feed", zap.Stringer("addr", ln.Addr()))
	return s, nil
}

func (s *Server) serve() {
	if err := s.http.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("feed server stopped", zap.Error(err))
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", Healthz)
	r.Get("/state", s.handleState)
	r.Get("/ws", s.handleWS)
	return r
}

// Publish forwards snap to the hub without blocking.
func (s *Server) Publish(snap match.Snapshot) {
	s.hub.Publish(snap)
}

// Addr returns the listening address, or nil when not started with Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Close stops the hub, which ends every websocket stream, then shuts the
// HTTP server down.
func (s *Server) Close(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	v, err := s.hub.State(r.Context())
	if err != nil {
		http.Error(w, "feed unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Debug("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	// Read-only stream: any data frame from the client closes the
	// connection, and ctx ends when the client goes away.
	ctx := conn.CloseRead(r.Context())

	id, out, err := s.hub.Join(ctx)
	if err != nil {
		conn.Close(websocket.StatusGoingAway, "feed closed")
		return
	}
	defer s.hub.Leave(id)

	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-out:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "feed closed")
				return
			}
			payload, err := json.Marshal(v)
			if err != nil {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
			err = conn.Write(wctx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				s.log.Debug("websocket write failed", zap.Int("client", id), zap.Error(err))
				return
			}
		}
	}
}
