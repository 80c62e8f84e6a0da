package match

// MaxScore is the highest value a side can hold.
const MaxScore = 9

// Side identifies one half of the board.
type Side int

const (
	Red Side = iota
	Blue
)

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "unknown"
}

// Score is a single side's score. It only changes through the guarded
// operations below, all of which keep it within [0, MaxScore].
type Score uint8

// nibble keeps the low four bits of a protocol amount.
func nibble(n int32) Score {
	return Score(n & 0xF)
}

// add applies n if the result stays below ten; otherwise it is a no-op.
func (s *Score) add(n Score) {
	if *s+n <= MaxScore {
		*s += n
	}
}

// sub applies n if the result stays non-negative; otherwise it is a no-op.
func (s *Score) sub(n Score) {
	if *s >= n {
		*s -= n
	}
}

// Step is a direct score adjustment issued from the keyboard.
type Step int

const (
	StepCoarseUp   Step = iota // +2
	StepCoarseDown             // -2
	StepFineUp                 // +1
	StepFineDown               // -1
)

func (st Step) String() string {
	switch st {
	case StepCoarseUp:
		return "+2"
	case StepCoarseDown:
		return "-2"
	case StepFineUp:
		return "+1"
	case StepFineDown:
		return "-1"
	}
	return "?"
}

// stepRules holds the keyboard guards. They differ from the protocol clamps:
// +1 is refused from 8, and -2 is refused from 1.
var stepRules = [...]struct {
	allowed func(Score) bool
	delta   int
}{
	StepCoarseUp:   {allowed: func(s Score) bool { return s < 8 }, delta: 2},
	StepCoarseDown: {allowed: func(s Score) bool { return s > 1 }, delta: -2},
	StepFineUp:     {allowed: func(s Score) bool { return s < 8 }, delta: 1},
	StepFineDown:   {allowed: func(s Score) bool { return s > 0 }, delta: -1},
}

func (s *Score) step(st Step) {
	if st < 0 || int(st) >= len(stepRules) {
		return
	}
	r := stepRules[st]
	if r.allowed(*s) {
		*s = Score(int(*s) + r.delta)
	}
}
