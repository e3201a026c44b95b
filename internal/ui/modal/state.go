package modal

// State is the lifecycle of one host. Opening and Closing are transient: a
// single SetOpen call passes through them and settles in Open or Closed.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

type signal int

const (
	signalOpen signal = iota
	signalClose
	// signalSettle completes a transient state.
	signalSettle
)

// next is the transition table. Signals that do not apply leave the state
// unchanged.
func next(s State, sig signal) State {
	switch {
	case s == Closed && sig == signalOpen:
		return Opening
	case s == Opening && sig == signalSettle:
		return Open
	case s == Opening && sig == signalClose:
		return Closing
	case s == Open && sig == signalClose:
		return Closing
	case s == Closing && sig == signalSettle:
		return Closed
	}
	return s
}
