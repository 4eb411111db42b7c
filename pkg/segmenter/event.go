package segmenter

import (
	"fmt"

	"github.com/xaionaro-go/vadsplit/pkg/frame"
)

type EventKind int

const (
	EventKindUndefined = EventKind(iota)
	EventKindFrame
	EventKindEnd
)

func (k EventKind) String() string {
	switch k {
	case EventKindUndefined:
		return "undefined"
	case EventKindFrame:
		return "frame"
	case EventKindEnd:
		return "end"
	default:
		return fmt.Sprintf("unknown_%d", int(k))
	}
}

// Event is an element of the segmented sequence: either a frame of the
// utterance currently being emitted, or the marker ending it.
type Event struct {
	Kind  EventKind
	Frame frame.Frame
}

func FrameEvent(f frame.Frame) Event {
	return Event{Kind: EventKindFrame, Frame: f}
}

func EndEvent() Event {
	return Event{Kind: EventKindEnd}
}

func (e Event) IsEnd() bool {
	return e.Kind == EventKindEnd
}

func (e Event) String() string {
	if e.Kind == EventKindFrame {
		return fmt.Sprintf("frame@%v", e.Frame.Timestamp)
	}
	return e.Kind.String()
}
