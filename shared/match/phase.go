package match

// Phase is the match lifecycle state.
type Phase int

const (
	PhaseReset   Phase = iota // Clock held at the full match length
	PhaseRunning              // Clock counting down
	PhasePause                // Clock frozen
	PhaseEnded                // Clock expired, pinned to zero
)

var phaseNames = [...]string{
	PhaseReset:   "reset",
	PhaseRunning: "running",
	PhasePause:   "pause",
	PhaseEnded:   "ended",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

type transition struct {
	next        Phase
	clearScores bool
}

// toggleTable drives TogglePause for both the keyboard and the protocol path.
var toggleTable = [...]transition{
	PhaseReset:   {next: PhaseRunning},
	PhaseRunning: {next: PhasePause},
	PhasePause:   {next: PhaseRunning},
	PhaseEnded:   {next: PhaseReset, clearScores: true},
}

// Toggled returns the phase that follows p on a pause toggle and whether the
// scores are cleared by the transition. An unknown phase stays where it is.
func (p Phase) Toggled() (Phase, bool) {
	if p < 0 || int(p) >= len(toggleTable) {
		return p, false
	}
	t := toggleTable[p]
	return t.next, t.clearScores
}
