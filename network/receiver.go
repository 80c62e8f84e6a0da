package network

import (
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
)

// Packet is one raw datagram and the address it came from.
type Packet struct {
	Data []byte
	From net.Addr
}

// Receiver owns the inbound control socket. A reader goroutine moves
// datagrams into a bounded queue; the tick drains that queue without
// blocking.
type Receiver struct {
	conn    net.PacketConn
	queue   chan Packet
	maxSize int
	log     *zap.Logger
	closing chan struct{}
	done    chan struct{}
}

// Read errors other than a closed socket are retried with a growing pause.
const (
	minReadBackoff = 5 * time.Millisecond
	maxReadBackoff = time.Second
)

// Listen binds the control socket on addr and starts reading.
func Listen(addr string, queueSize, maxPacketSize int, log *zap.Logger) (*Receiver, error) {
	if queueSize <= 0 {
		return nil, fmt.Errorf("listen %s: queue size must be positive, got %d", addr, queueSize)
	}
	if maxPacketSize <= 0 {
		return nil, fmt.Errorf("listen %s: max packet size must be positive, got %d", addr, maxPacketSize)
	}

	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	r := &Receiver{
		conn:    conn,
		queue:   make(chan Packet, queueSize),
		maxSize: maxPacketSize,
		log:     log,
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go r.run()

	log.Info("listening for control messages", zap.Stringer("addr", conn.LocalAddr()))
	return r, nil
}

func (r *Receiver) run() {
	defer close(r.done)

	buf := make([]byte, r.maxSize)
	var (
		failures int
		backoff  time.Duration
	)
	for {
		n, from, err := r.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			// Only the first failure of a run is logged.
			if failures == 0 {
				r.log.Warn("read failed, backing off", zap.Error(err))
				backoff = minReadBackoff
			} else {
				backoff = min(backoff*2, maxReadBackoff)
			}
			failures++
			select {
			case <-r.closing:
				return
			case <-time.After(backoff):
			}
			continue
		}
		if failures > 0 {
			r.log.Info("read recovered", zap.Int("failures", failures))
			failures = 0
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		select {
		case r.queue <- Packet{Data: data, From: from}:
		default:
			r.log.Warn("inbound queue full, dropping packet",
				zap.Stringer("from", from), zap.Int("bytes", n))
		}
	}
}

// Drain appends every packet queued at the moment of the call to dst, in
// arrival order, and returns the extended slice. Packets that arrive while
// draining stay queued for the next call.
func (r *Receiver) Drain(dst []Packet) []Packet {
	n := len(r.queue)
	for i := 0; i < n; i++ {
		dst = append(dst, <-r.queue)
	}
	return dst
}

// Pending returns the number of queued packets.
func (r *Receiver) Pending() int { return len(r.queue) }

// Addr returns the bound local address.
func (r *Receiver) Addr() net.Addr { return r.conn.LocalAddr() }

// Close stops the reader and releases the socket.
func (r *Receiver) Close() error {
	close(r.closing)
	err := r.conn.Close()
	<-r.done
	return err
}
