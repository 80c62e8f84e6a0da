package network

import (
	"net"
	"testing"
	"time"

	"github.com/automoto/matchboard/shared/match"
	"github.com/automoto/matchboard/shared/oscwire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	got []match.Intent
}

func (r *recorder) Apply(in match.Intent) { r.got = append(r.got, in) }

var peer = &net.UDPAddr{IP: net.IPv4(10, 0, 0, 7), Port: 5555}

func packet(msgs ...oscwire.Message) Packet {
	if len(msgs) == 1 {
		return Packet{Data: oscwire.Encode(msgs[0]), From: peer}
	}
	return Packet{Data: oscwire.EncodeBundle(msgs...), From: peer}
}

func TestDispatchRoutes(t *testing.T) {
	tests := []struct {
		name string
		msg  oscwire.Message
		want []match.Intent
	}{
		{"red add", oscwire.NewMessage("/red/add", oscwire.Int(2)), []match.Intent{match.AddScore(match.Red, 2)}},
		{"red sub", oscwire.NewMessage("/red/sub", oscwire.Int(1)), []match.Intent{match.SubScore(match.Red, 1)}},
		{"blue add", oscwire.NewMessage("/blue/add", oscwire.Int(3)), []match.Intent{match.AddScore(match.Blue, 3)}},
		{"blue sub", oscwire.NewMessage("/blue/sub", oscwire.Int(4)), []match.Intent{match.SubScore(match.Blue, 4)}},
		{"reset ignores args", oscwire.NewMessage("/reset", oscwire.Int(9)), []match.Intent{match.Reset()}},
		{"pause", oscwire.NewMessage("/pause"), []match.Intent{match.TogglePause()}},
		{"string amount counts as zero", oscwire.NewMessage("/red/add", oscwire.String("two")), []match.Intent{match.AddScore(match.Red, 0)}},
		{"float amount counts as zero", oscwire.NewMessage("/blue/add", oscwire.Float(2.9)), []match.Intent{match.AddScore(match.Blue, 0)}},
		{"score without args is ignored", oscwire.NewMessage("/red/add"), nil},
		{"unknown address", oscwire.NewMessage("/green/add", oscwire.Int(1)), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sink recorder
			NewDispatcher(zap.NewNop()).Dispatch(&sink, []Packet{packet(tt.msg)})
			assert.Equal(t, tt.want, sink.got)
		})
	}
}

func TestDispatchKeepsOrderAcrossPackets(t *testing.T) {
	var sink recorder
	stats := NewDispatcher(zap.NewNop()).Dispatch(&sink, []Packet{
		packet(oscwire.NewMessage("/reset")),
		packet(
			oscwire.NewMessage("/red/add", oscwire.Int(1)),
			oscwire.NewMessage("/blue/add", oscwire.Int(2)),
		),
		packet(oscwire.NewMessage("/pause")),
	})

	assert.Equal(t, []match.Intent{
		match.Reset(),
		match.AddScore(match.Red, 1),
		match.AddScore(match.Blue, 2),
		match.TogglePause(),
	}, sink.got)
	assert.Equal(t, DispatchStats{Packets: 3, Messages: 4, Applied: 4}, stats)
}

func TestDispatchSkipsBadInput(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewDispatcher(zap.New(core))

	var sink recorder
	stats := d.Dispatch(&sink, []Packet{
		{Data: []byte{0x01, 0x02, 0x03}, From: peer},
		packet(
			oscwire.NewMessage("/nope"),
			oscwire.NewMessage("/blue/add", oscwire.Int(1)),
		),
	})

	assert.Equal(t, []match.Intent{match.AddScore(match.Blue, 1)}, sink.got)
	assert.Equal(t, DispatchStats{Packets: 2, Dropped: 1, Messages: 2, Applied: 1, Unknown: 1}, stats)

	require.Equal(t, 1, logs.FilterMessage("dropping malformed packet").Len())
	unknown := logs.FilterMessage("unknown message address").All()
	require.Len(t, unknown, 1)
	assert.Equal(t, "/nope", unknown[0].ContextMap()["address"])
	assert.Equal(t, "10.0.0.7", unknown[0].ContextMap()["from"])
}

func TestDispatchIntoEngine(t *testing.T) {
	tests := []struct {
		name      string
		setup     []oscwire.Message
		msgs      []oscwire.Message
		wantRed   match.Score
		wantBlue  match.Score
		wantPhase match.Phase
	}{
		{
			name:      "add over the cap is ignored",
			setup:     []oscwire.Message{oscwire.NewMessage("/pause"), oscwire.NewMessage("/red/add", oscwire.Int(5))},
			msgs:      []oscwire.Message{oscwire.NewMessage("/red/add", oscwire.Int(7))},
			wantRed:   5,
			wantBlue:  0,
			wantPhase: match.PhaseRunning,
		},
		{
			name:      "sub below zero is ignored",
			setup:     []oscwire.Message{oscwire.NewMessage("/pause"), oscwire.NewMessage("/blue/add", oscwire.Int(3))},
			msgs:      []oscwire.Message{oscwire.NewMessage("/blue/sub", oscwire.Int(5))},
			wantBlue:  3,
			wantPhase: match.PhaseRunning,
		},
		{
			name:      "float amount adds nothing",
			setup:     []oscwire.Message{oscwire.NewMessage("/pause")},
			msgs:      []oscwire.Message{oscwire.NewMessage("/red/add", oscwire.Float(3))},
			wantRed:   0,
			wantPhase: match.PhaseRunning,
		},
		{
			name:  "reset then add in one bundle",
			setup: []oscwire.Message{oscwire.NewMessage("/red/add", oscwire.Int(4))},
			msgs: []oscwire.Message{
				oscwire.NewMessage("/reset"),
				oscwire.NewMessage("/red/add", oscwire.Int(1)),
			},
			wantRed: 1,
		},
		{
			name:  "add then reset in one bundle",
			setup: []oscwire.Message{oscwire.NewMessage("/red/add", oscwire.Int(4))},
			msgs: []oscwire.Message{
				oscwire.NewMessage("/red/add", oscwire.Int(1)),
				oscwire.NewMessage("/reset"),
			},
			wantRed: 0,
		},
		{
			name:      "large amount is masked to a nibble",
			msgs:      []oscwire.Message{oscwire.NewMessage("/blue/add", oscwire.Int(0x13))},
			wantBlue:  3,
			wantPhase: match.PhaseReset,
		},
		{
			name:      "pause starts the match",
			msgs:      []oscwire.Message{oscwire.NewMessage("/pause")},
			wantPhase: match.PhaseRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := match.NewEngine(match.DefaultLength)
			d := NewDispatcher(zap.NewNop())
			if len(tt.setup) > 0 {
				d.Dispatch(e, []Packet{packet(tt.setup...)})
			}
			d.Dispatch(e, []Packet{packet(tt.msgs...)})

			snap := e.Snapshot()
			assert.Equal(t, tt.wantRed, snap.Red)
			assert.Equal(t, tt.wantBlue, snap.Blue)
			assert.Equal(t, tt.wantPhase, snap.Phase)
		})
	}
}

func TestBroadcasterSwallowsErrors(t *testing.T) {
	out := &fakeTransmitter{err: net.ErrClosed}
	b := NewBroadcaster(out, zap.NewNop())

	b.Publish(match.Snapshot{Remaining: 75 * time.Second})
	b.Publish(match.Snapshot{})

	assert.Equal(t, 2, b.Failures())
	assert.Len(t, out.sent, 2)
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		min, sec  float32
	}{
		{120 * time.Second, 2, 0},
		{75 * time.Second, 1, 15},
		{59900 * time.Millisecond, 0, 59},
		{0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.remaining.String(), func(t *testing.T) {
			out := &fakeTransmitter{}
			NewBroadcaster(out, zap.NewNop()).Publish(match.Snapshot{Remaining: tt.remaining})

			require.Len(t, out.sent, 1)
			msgs, err := oscwire.Decode(out.sent[0])
			require.NoError(t, err)
			require.Len(t, msgs, 1)
			assert.Equal(t, StatusAddress, msgs[0].Address)
			assert.Equal(t, []oscwire.Arg{oscwire.Float(tt.min), oscwire.Float(tt.sec)}, msgs[0].Args)
		})
	}
}

type fakeTransmitter struct {
	sent [][]byte
	err  error
}

func (f *fakeTransmitter) Send(b []byte) error {
	f.sent = append(f.sent, b)
	return f.err
}
