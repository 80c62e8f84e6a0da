package feed

import (
	"context"
	"errors"

	"github.com/automoto/matchboard/shared/match"
	"go.uber.org/zap"
)

// ErrClosed is returned by hub requests made after Close.
var ErrClosed = errors.New("feed: hub closed")

type hubMsg interface{ isHubMsg() }

type publish struct{ view View }

type join struct {
	outbox chan View
	reply  chan int
}

type leave struct{ id int }

type getState struct{ reply chan View }

func (publish) isHubMsg()  {}
func (join) isHubMsg()     {}
func (leave) isHubMsg()    {}
func (getState) isHubMsg() {}

// Hub fans snapshots out to websocket clients. All state is owned by the
// loop goroutine; callers talk to it through the inbox.
type Hub struct {
	inbox        chan hubMsg
	clients      map[int]chan View
	latest       View
	nextID       int
	clientBuffer int
	log          *zap.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	done         chan struct{}
}

// NewHub starts a hub holding initial as its latest snapshot.
func NewHub(parent context.Context, initial match.Snapshot, inboxSize, clientBuffer int, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:        make(chan hubMsg, max(inboxSize, 1)),
		clients:      make(map[int]chan View),
		latest:       ViewOf(initial),
		clientBuffer: max(clientBuffer, 1),
		log:          log,
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Hub) loop() {
	defer close(h.done)
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case publish:
				changed := !msg.view.sameDisplay(h.latest)
				h.latest = msg.view
				if changed {
					h.broadcast(msg.view)
				}

			case join:
				id := h.nextID
				h.nextID++
				h.clients[id] = msg.outbox
				msg.outbox <- h.latest
				msg.reply <- id

			case leave:
				delete(h.clients, msg.id)

			case getState:
				msg.reply <- h.latest
			}
		}
	}
}

func (h *Hub) broadcast(v View) {
	for id, ch := range h.clients {
		select {
		case ch <- v:
		default:
			// Client is not keeping up, drop it.
			close(ch)
			delete(h.clients, id)
			h.log.Warn("dropping slow feed client", zap.Int("client", id))
		}
	}
}

func (h *Hub) shutdown() {
	for id, ch := range h.clients {
		close(ch)
		delete(h.clients, id)
	}
}

// Publish hands snap to the hub without blocking. It reports false when the
// hub is busy or closed and the snapshot was dropped.
func (h *Hub) Publish(snap match.Snapshot) bool {
	if h.ctx.Err() != nil {
		return false
	}
	select {
	case h.inbox <- publish{view: ViewOf(snap)}:
		return true
	default:
		return false
	}
}

// Join registers a client. The returned channel receives the latest view
// immediately and is closed when the client is dropped or the hub closes.
func (h *Hub) Join(ctx context.Context) (int, <-chan View, error) {
	out := make(chan View, h.clientBuffer)
	reply := make(chan int, 1)
	if err := h.send(ctx, join{outbox: out, reply: reply}); err != nil {
		return 0, nil, err
	}
	select {
	case id := <-reply:
		return id, out, nil
	case <-h.done:
		return 0, nil, ErrClosed
	}
}

// Leave unregisters a client. It is safe to call for a client that was
// already dropped.
func (h *Hub) Leave(id int) {
	_ = h.send(context.Background(), leave{id: id})
}

// State returns the latest view.
func (h *Hub) State(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := h.send(ctx, getState{reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-h.done:
		return View{}, ErrClosed
	}
}

func (h *Hub) send(ctx context.Context, m hubMsg) error {
	select {
	case h.inbox <- m:
		return nil
	case <-h.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the hub and closes every client channel.
func (h *Hub) Close() {
	h.cancel()
	<-h.done
}
