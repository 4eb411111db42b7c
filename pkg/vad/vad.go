// Package vad defines the frame-level voice activity classifier the
// segmenter consumes.
package vad

import (
	"context"
	"io"

	"github.com/xaionaro-go/audio/pkg/audio"
)

// VAD judges whether a single frame contains speech.
type VAD interface {
	io.Closer

	Encoding(context.Context) (audio.Encoding, error)
	Channels(context.Context) (audio.Channel, error)

	// IsSpeech classifies a frame of S16LE mono PCM sampled at sampleRate.
	// A frame of an unsupported length returns ErrInvalidFrameShape.
	IsSpeech(
		ctx context.Context,
		samples []byte,
		sampleRate audio.SampleRate,
	) (bool, error)
}
