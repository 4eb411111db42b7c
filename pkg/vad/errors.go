package vad

import (
	"fmt"

	"github.com/xaionaro-go/audio/pkg/audio"
)

// ErrInvalidFrameShape means a frame does not match the configured
// rate/duration/encoding. It is a programming error.
type ErrInvalidFrameShape struct {
	SampleRate audio.SampleRate
	Expected   int
	Actual     int
}

func (e ErrInvalidFrameShape) Error() string {
	return fmt.Sprintf("invalid frame shape: %d bytes at %dHz (expected %d bytes)", e.Actual, e.SampleRate, e.Expected)
}

// ErrSampleRateMismatch means the detector was built for another sample rate.
type ErrSampleRateMismatch struct {
	Expected audio.SampleRate
	Actual   audio.SampleRate
}

func (e ErrSampleRateMismatch) Error() string {
	return fmt.Sprintf("the detector is configured for %dHz, got a frame at %dHz", e.Expected, e.Actual)
}

type ErrInvalidAggressiveness struct {
	Value int
}

func (e ErrInvalidAggressiveness) Error() string {
	return fmt.Sprintf("aggressiveness must be within [0, 3], got %d", e.Value)
}
