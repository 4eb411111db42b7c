package segmenter

import (
	"github.com/xaionaro-go/vadsplit/pkg/frame"
)

type vote struct {
	Frame    frame.Frame
	IsSpeech bool
}

// VotingWindow is a ring buffer of the most recent classified frames. The
// amounts of voiced and unvoiced entries are maintained on every push and
// eviction, so querying them is O(1).
type VotingWindow struct {
	entries []vote
	start   int
	length  int
	voiced  int
}

func NewVotingWindow(capacity int) *VotingWindow {
	w := &VotingWindow{}
	w.Reset(capacity)
	return w
}

// Push appends the classified frame, evicting the oldest entry if the
// window is full. A zero-capacity window stays empty.
func (w *VotingWindow) Push(f frame.Frame, isSpeech bool) {
	capacity := len(w.entries)
	if capacity == 0 {
		return
	}

	if w.length == capacity {
		if w.entries[w.start].IsSpeech {
			w.voiced--
		}
		w.entries[w.start] = vote{}
		w.start = (w.start + 1) % capacity
		w.length--
	}

	w.entries[(w.start+w.length)%capacity] = vote{Frame: f, IsSpeech: isSpeech}
	w.length++
	if isSpeech {
		w.voiced++
	}
}

func (w *VotingWindow) Len() int {
	return w.length
}

func (w *VotingWindow) Cap() int {
	return len(w.entries)
}

// Voiced returns the amount of entries classified as speech.
func (w *VotingWindow) Voiced() int {
	return w.voiced
}

// Unvoiced returns the amount of entries classified as non-speech.
func (w *VotingWindow) Unvoiced() int {
	return w.length - w.voiced
}

// Frames returns the frames in the window, oldest first.
func (w *VotingWindow) Frames() frame.Frames {
	result := make(frame.Frames, 0, w.length)
	for idx := 0; idx < w.length; idx++ {
		result = append(result, w.entries[(w.start+idx)%len(w.entries)].Frame)
	}
	return result
}

// Reset empties the window and sets its capacity.
func (w *VotingWindow) Reset(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if cap(w.entries) >= capacity {
		w.entries = w.entries[:capacity]
		clear(w.entries)
	} else {
		w.entries = make([]vote, capacity)
	}
	w.start = 0
	w.length = 0
	w.voiced = 0
}
