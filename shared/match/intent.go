package match

import "fmt"

// IntentKind identifies a command submitted to the engine.
type IntentKind int

const (
	IntentAddScore IntentKind = iota
	IntentSubScore
	IntentReset
	IntentTogglePause
)

// Intent is a transient command for Engine.Apply. Amount is the raw protocol
// argument; only its low four bits are used.
type Intent struct {
	Kind   IntentKind
	Side   Side
	Amount int32
}

func AddScore(side Side, amount int32) Intent {
	return Intent{Kind: IntentAddScore, Side: side, Amount: amount}
}

func SubScore(side Side, amount int32) Intent {
	return Intent{Kind: IntentSubScore, Side: side, Amount: amount}
}

func Reset() Intent { return Intent{Kind: IntentReset} }

func TogglePause() Intent { return Intent{Kind: IntentTogglePause} }

func (in Intent) String() string {
	switch in.Kind {
	case IntentAddScore:
		return fmt.Sprintf("AddScore(%s, %d)", in.Side, in.Amount)
	case IntentSubScore:
		return fmt.Sprintf("SubScore(%s, %d)", in.Side, in.Amount)
	case IntentReset:
		return "Reset"
	case IntentTogglePause:
		return "TogglePause"
	}
	return fmt.Sprintf("Intent(%d)", int(in.Kind))
}
