// Package utterance assembles the frames emitted by a segmenter into
// complete utterances and encodes them as WAV.
package utterance

import (
	"time"

	"github.com/xaionaro-go/vadsplit/pkg/frame"
)

// Utterance is the audio between a trigger and the end marker following it,
// including the padding captured before the onset.
type Utterance struct {
	Audio      []byte
	Start      time.Duration
	Duration   time.Duration
	FrameCount int

	// Incomplete is set if the event stream failed before the end marker.
	Incomplete bool
}

func newUtterance(frames frame.Frames, format frame.Format, incomplete bool) *Utterance {
	audio := frames.Bytes()
	return &Utterance{
		Audio:      audio,
		Start:      frames[0].Timestamp,
		Duration:   format.DurationOf(len(audio)),
		FrameCount: len(frames),
		Incomplete: incomplete,
	}
}

// End returns the position right after the last sample of the utterance.
func (u *Utterance) End() time.Duration {
	return u.Start + u.Duration
}
