package vad

import (
	"time"

	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
)

// FrameBytes returns the length in bytes of an S16LE mono frame of the
// given duration.
func FrameBytes(sampleRate audio.SampleRate, duration time.Duration) int {
	return 2 * int(uint64(sampleRate)*uint64(duration)/uint64(time.Second))
}

// CheckFrameShape returns ErrInvalidFrameShape unless the samples are
// exactly one supported frame duration of S16LE mono audio at the given
// sample rate.
func CheckFrameShape(samples []byte, sampleRate audio.SampleRate) error {
	for _, d := range frame.SupportedFrameDurations {
		if len(samples) == FrameBytes(sampleRate, d) {
			return nil
		}
	}
	return ErrInvalidFrameShape{
		SampleRate: sampleRate,
		Expected:   FrameBytes(sampleRate, frame.SupportedFrameDurations[0]),
		Actual:     len(samples),
	}
}
