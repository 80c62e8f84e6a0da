// Package netconfig holds settings shared by the windowed board and the
// headless controller. It must have zero dependencies on ebiten or any
// graphics library so the headless binary stays headless.
package netconfig

import (
	"time"

	"github.com/automoto/matchboard/shared/match"
)

// NetConfig contains the control and status channel settings
type NetConfig struct {
	RecvAddr      string // Local address the control protocol listens on
	SendAddr      string // Peer that receives the status message every tick
	QueueSize     int    // Inbound datagrams buffered between ticks
	MaxPacketSize int    // Largest datagram read from the socket
}

// MatchConfig contains match rules
type MatchConfig struct {
	Length time.Duration // Clock value on entry to the reset phase
}

// FeedConfig contains the read-only spectator feed settings
type FeedConfig struct {
	Addr         string        // HTTP listen address, empty disables the feed
	ClientBuffer int           // Snapshots queued per websocket client before it is dropped
	WriteTimeout time.Duration // Per-frame websocket write deadline
	InboxSize    int           // Snapshots queued between the tick and the hub
}

// LogConfig contains logger settings
type LogConfig struct {
	Level       string
	Development bool
}

// ServerConfig contains settings for the headless controller
type ServerConfig struct {
	TickRate int // Ticks per second
}

// Global configuration instances
var Net NetConfig
var Match MatchConfig
var Feed FeedConfig
var Log LogConfig
var Server ServerConfig

func init() {
	Defaults()
}

// Defaults resets every global configuration instance to its built-in value.
func Defaults() {
	Net = NetConfig{
		RecvAddr:      ":8000",
		SendAddr:      "127.0.0.1:9000",
		QueueSize:     256,
		MaxPacketSize: 1536,
	}

	Match = MatchConfig{
		Length: match.DefaultLength,
	}

	Feed = FeedConfig{
		Addr:         "", // disabled
		ClientBuffer: 8,
		WriteTimeout: 3 * time.Second,
		InboxSize:    16,
	}

	Log = LogConfig{
		Level:       "info",
		Development: false,
	}

	Server = ServerConfig{
		TickRate: 60,
	}
}
