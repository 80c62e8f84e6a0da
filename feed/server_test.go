package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/automoto/matchboard/shared/match"
	"github.com/automoto/matchboard/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	log := zap.NewNop()
	hub := NewHub(context.Background(), match.Snapshot{Remaining: 120 * time.Second}, 16, 4, log)
	s := NewServer(hub, netconfig.FeedConfig{WriteTimeout: time.Second}, log)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})
	return s, ts
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestState(t *testing.T) {
	s, ts := newTestServer(t)
	s.Publish(match.Snapshot{Phase: match.PhasePause, Red: 7, Blue: 1, Remaining: 61500 * time.Millisecond})
	settle(t, s.hub)

	resp, err := http.Get(ts.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var v View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.Equal(t, View{Phase: "pause", Red: 7, Blue: 1, RemainingMs: 61500, Minutes: 1, Seconds: 1}, v)
}

func TestStateRejectsWrites(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/state", "application/json", strings.NewReader(`{"red":9}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func readView(t *testing.T, ctx context.Context, conn *websocket.Conn) View {
	t.Helper()
	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageText, typ)
	var v View
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestWebsocketStream(t *testing.T) {
	s, ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	first := readView(t, ctx, conn)
	assert.Equal(t, "reset", first.Phase)
	assert.Equal(t, 2, first.Minutes)

	s.Publish(match.Snapshot{Phase: match.PhaseRunning, Blue: 2, Remaining: 119 * time.Second})
	next := readView(t, ctx, conn)
	assert.Equal(t, View{Phase: "running", Blue: 2, RemainingMs: 119000, Minutes: 1, Seconds: 59}, next)
}

func TestWebsocketClosedWithHub(t *testing.T) {
	s, ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()
	readView(t, ctx, conn)

	s.hub.Close()

	_, _, err = conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))
}
