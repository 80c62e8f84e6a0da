// Package feed serves a read-only spectator view of the match over HTTP and
// websocket. It never accepts intents.
package feed

import "github.com/automoto/matchboard/shared/match"

// View is the JSON form of a snapshot.
type View struct {
	Phase       string `json:"phase"`
	Red         int    `json:"red"`
	Blue        int    `json:"blue"`
	RemainingMs int64  `json:"remaining_ms"`
	Minutes     int    `json:"minutes"`
	Seconds     int    `json:"seconds"`
}

func ViewOf(snap match.Snapshot) View {
	minutes, seconds := snap.Clock()
	return View{
		Phase:       snap.Phase.String(),
		Red:         int(snap.Red),
		Blue:        int(snap.Blue),
		RemainingMs: snap.Remaining.Milliseconds(),
		Minutes:     minutes,
		Seconds:     seconds,
	}
}

// sameDisplay reports whether v and o would render identically on a board.
// Sub-second clock movement does not count.
func (v View) sameDisplay(o View) bool {
	v.RemainingMs, o.RemainingMs = 0, 0
	return v == o
}
