package network

import (
	"errors"
	"time"

	"github.com/automoto/matchboard/shared/match"
	"github.com/automoto/matchboard/shared/netconfig"
	"go.uber.org/zap"
)

// Link bundles the control and status channels used by a tick.
type Link struct {
	recv     *Receiver
	sender   *Sender
	dispatch *Dispatcher
	status   *Broadcaster
	pending  []Packet
}

// Open binds the control socket and connects the status socket. Either
// failure is returned; the process cannot run without both channels.
func Open(cfg netconfig.NetConfig, log *zap.Logger) (*Link, error) {
	recv, err := Listen(cfg.RecvAddr, cfg.QueueSize, cfg.MaxPacketSize, log.Named("recv"))
	if err != nil {
		return nil, err
	}
	sender, err := Dial(cfg.SendAddr)
	if err != nil {
		_ = recv.Close()
		return nil, err
	}
	log.Info("sending status", zap.Stringer("peer", sender.RemoteAddr()))

	return &Link{
		recv:     recv,
		sender:   sender,
		dispatch: NewDispatcher(log.Named("dispatch")),
		status:   NewBroadcaster(sender, log.Named("status")),
	}, nil
}

// Pump drains the packets queued since the last tick and applies them to
// sink.
func (l *Link) Pump(sink IntentSink) DispatchStats {
	l.pending = l.recv.Drain(l.pending[:0])
	stats := l.dispatch.Dispatch(sink, l.pending)
	clear(l.pending)
	return stats
}

// Publish transmits the status message for snap.
func (l *Link) Publish(snap match.Snapshot) {
	l.status.Publish(snap)
}

// Step runs one control tick: drain and apply intents, advance the clock,
// then transmit the status. It returns the post-tick snapshot.
func (l *Link) Step(e *match.Engine, elapsed time.Duration) match.Snapshot {
	l.Pump(e)
	e.Advance(elapsed)
	snap := e.Snapshot()
	l.Publish(snap)
	return snap
}

// Addr returns the bound control address.
func (l *Link) Addr() string { return l.recv.Addr().String() }

// Close releases both sockets.
func (l *Link) Close() error {
	return errors.Join(l.recv.Close(), l.sender.Close())
}
