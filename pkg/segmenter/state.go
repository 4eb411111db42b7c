package segmenter

import (
	"fmt"
)

type State int

const (
	// StateIdle means no utterance is open.
	StateIdle = State(iota)

	// StateTriggered means an utterance is open and its frames are emitted.
	StateTriggered
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTriggered:
		return "triggered"
	default:
		return fmt.Sprintf("unknown_%d", int(s))
	}
}
