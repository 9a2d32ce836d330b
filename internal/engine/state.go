package engine

// State is the stage an engine invocation is in. It only drives logging.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateFetching
	StateValidating
	StateDiscovering
	StateMerging
	StateCleaningUp
	StateDone
)

var stateNames = map[State]string{
	StateIdle:        "idle",
	StateResolving:   "resolving",
	StateFetching:    "fetching",
	StateValidating:  "validating",
	StateDiscovering: "discovering",
	StateMerging:     "merging",
	StateCleaningUp:  "cleaning-up",
	StateDone:        "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
