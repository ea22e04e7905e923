package core

// EventKind identifies a discrete feedback event emitted by a tick.
type EventKind int

const (
	EventCoinCollected EventKind = iota + 1
	EventCrash
	EventRunOver
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCoinCollected:
		return "coin_collected"
	case EventCrash:
		return "crash"
	case EventRunOver:
		return "run_over"
	default:
		return "unknown"
	}
}

// Event is handed to feedback sinks (toast, sound, log).
// Score and Lives are the values right after the event was applied;
// for EventRunOver Score is the final score of the run.
type Event struct {
	Kind  EventKind
	Score int
	Lives int
}
