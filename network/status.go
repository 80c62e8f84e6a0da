package network

import (
	"fmt"
	"net"

	"github.com/automoto/matchboard/shared/match"
	"github.com/automoto/matchboard/shared/oscwire"
	"go.uber.org/zap"
)

// StatusAddress is the address of the per-tick clock message.
const StatusAddress = "/match/time"

// Transmitter sends one datagram.
type Transmitter interface {
	Send(b []byte) error
}

// Sender is a UDP socket connected to a single peer.
type Sender struct {
	conn net.Conn
}

// Dial connects the status socket to addr. UDP has no handshake, so this only
// fails when the address cannot be resolved or bound.
func Dial(addr string) (*Sender, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return &Sender{conn: conn}, nil
}

func (s *Sender) Send(b []byte) error {
	_, err := s.conn.Write(b)
	return err
}

func (s *Sender) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

func (s *Sender) Close() error { return s.conn.Close() }

// StatusMessage encodes the remaining time as [minutes, seconds] floats.
func StatusMessage(snap match.Snapshot) oscwire.Message {
	minutes, seconds := snap.Clock()
	return oscwire.NewMessage(StatusAddress,
		oscwire.Float(float32(minutes)),
		oscwire.Float(float32(seconds)),
	)
}

// Broadcaster transmits the clock once per tick. Failed sends are counted
// and otherwise ignored.
type Broadcaster struct {
	out      Transmitter
	log      *zap.Logger
	failures int
}

func NewBroadcaster(out Transmitter, log *zap.Logger) *Broadcaster {
	return &Broadcaster{out: out, log: log}
}

// Publish sends the status message for snap.
func (b *Broadcaster) Publish(snap match.Snapshot) {
	if err := b.out.Send(oscwire.Encode(StatusMessage(snap))); err != nil {
		b.failures++
		b.log.Debug("status send failed", zap.Error(err), zap.Int("failures", b.failures))
	}
}

// Failures returns the number of sends that have failed so far.
func (b *Broadcaster) Failures() int { return b.failures }
