package lifecycle

// State is the controller's position in the question lifecycle.
type State int

const (
	// StateIdle means no session is running.
	StateIdle State = iota

	// StateLoading means a question request is outstanding.
	StateLoading

	// StateReady means a question is shown and nothing is selected.
	StateReady

	// StateSelected means an option is chosen but not confirmed.
	StateSelected

	// StateFeedback means the answer was confirmed and correctness is shown.
	StateFeedback

	// StateFailed means the last question request failed.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSelected:
		return "selected"
	case StateFeedback:
		return "feedback"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
