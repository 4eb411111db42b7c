// Package recorder implements a frame source on top of the automatically
// selected recording backend of github.com/xaionaro-go/audio.
package recorder

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
	"github.com/xaionaro-go/xcontext"
)

type Source struct {
	framesource.QueueSource

	ctx       context.Context
	stream    io.Closer
	closeOnce sync.Once
}

var _ framesource.Source = (*Source)(nil)

// New starts recording with the automatically selected backend.
func New(
	ctx context.Context,
	format frame.Format,
) (*Source, error) {
	return NewWithRecorder(ctx, audio.NewRecorderAuto(ctx), format)
}

// NewWithRecorder starts recording with the given backend. The backend
// writes the PCM stream on its own goroutine; the stream is sliced into
// frames as it arrives.
func NewWithRecorder(
	ctx context.Context,
	recorder *audio.Recorder,
	format frame.Format,
) (*Source, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	s := &Source{
		QueueSource: framesource.NewQueueSource(format),
		ctx:         xcontext.DetachDone(ctx),
	}

	deviceName := fmt.Sprintf("%T", recorder.RecorderPCM)
	logger.Infof(ctx, "using %s as the audio input", deviceName)

	stream, err := recorder.RecordPCM(
		s.ctx,
		format.SampleRate,
		format.Channels,
		format.Encoding().PCMFormat,
		framesource.NewChunker(s.Queue, format),
	)
	if err != nil {
		return nil, framesource.ErrDeviceUnavailable{Device: deviceName, Err: err}
	}
	s.stream = stream
	return s, nil
}

// Close stops the recording. Teardown errors are logged, not returned.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		logger.Debugf(s.ctx, "Close")
		s.Queue.Close()
		if err := s.stream.Close(); err != nil {
			logger.Warnf(s.ctx, "unable to stop the recording: %v", err)
		}
	})
	return nil
}
