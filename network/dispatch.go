package network

import (
	"net"

	"github.com/automoto/matchboard/shared/match"
	"github.com/automoto/matchboard/shared/oscwire"
	"go.uber.org/zap"
)

// IntentSink receives decoded intents in arrival order.
type IntentSink interface {
	Apply(in match.Intent)
}

// route turns a message into an intent. It reports false when the message
// carries nothing to apply.
type route func(msg oscwire.Message) (match.Intent, bool)

var routes = map[string]route{
	"/red/add":  amountRoute(match.AddScore, match.Red),
	"/red/sub":  amountRoute(match.SubScore, match.Red),
	"/blue/add": amountRoute(match.AddScore, match.Blue),
	"/blue/sub": amountRoute(match.SubScore, match.Blue),
	"/reset": func(oscwire.Message) (match.Intent, bool) {
		return match.Reset(), true
	},
	"/pause": func(oscwire.Message) (match.Intent, bool) {
		return match.TogglePause(), true
	},
}

// amountRoute builds a score route. A message without arguments is ignored;
// a first argument that is not an int, floats included, counts as zero.
func amountRoute(build func(match.Side, int32) match.Intent, side match.Side) route {
	return func(msg oscwire.Message) (match.Intent, bool) {
		arg, ok := msg.Arg(0)
		if !ok {
			return match.Intent{}, false
		}
		amount, ok := arg.AsInt()
		if !ok {
			amount = 0
		}
		return build(side, amount), true
	}
}

// DispatchStats counts what one Dispatch call did.
type DispatchStats struct {
	Packets  int // Packets seen
	Dropped  int // Packets that failed to decode
	Messages int // Messages decoded
	Applied  int // Intents handed to the sink
	Unknown  int // Messages with an unrecognised address
}

// Dispatcher decodes inbound packets and routes their messages to an
// IntentSink.
type Dispatcher struct {
	log *zap.Logger
}

func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Dispatch applies every message of every packet to sink, packets in slice
// order and messages in packet order. Bad packets and unknown addresses are
// logged and skipped.
func (d *Dispatcher) Dispatch(sink IntentSink, packets []Packet) DispatchStats {
	var stats DispatchStats
	for _, p := range packets {
		stats.Packets++

		msgs, err := oscwire.Decode(p.Data)
		if err != nil {
			stats.Dropped++
			d.log.Warn("dropping malformed packet",
				zap.String("from", hostOf(p.From)), zap.Int("bytes", len(p.Data)), zap.Error(err))
			continue
		}
		if ce := d.log.Check(zap.DebugLevel, "packet"); ce != nil {
			ce.Write(zap.String("from", hostOf(p.From)), zap.Stringers("messages", msgs))
		}

		for _, msg := range msgs {
			stats.Messages++

			r, ok := routes[msg.Address]
			if !ok {
				stats.Unknown++
				d.log.Warn("unknown message address",
					zap.String("address", msg.Address), zap.String("from", hostOf(p.From)))
				continue
			}
			in, ok := r(msg)
			if !ok {
				continue
			}
			sink.Apply(in)
			stats.Applied++
		}
	}
	return stats
}

func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if u, ok := addr.(*net.UDPAddr); ok {
		return u.IP.String()
	}
	return addr.String()
}
