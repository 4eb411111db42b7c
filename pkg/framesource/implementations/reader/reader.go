// Package reader implements a frame source replaying raw S16LE mono PCM
// from an io.Reader (a file, stdin, a pipe).
package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
	"github.com/xaionaro-go/xcontext"
)

type Source struct {
	framesource.QueueSource

	input      io.ReadCloser
	chunker    *framesource.Chunker
	config     config
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
	wg         sync.WaitGroup
	loopErr    error
}

var _ framesource.Source = (*Source)(nil)

// New starts reading the input in background. If the input is an
// io.Closer, it is closed by Close.
func New(
	ctx context.Context,
	input io.Reader,
	format frame.Format,
	opts ...Option,
) (*Source, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	s := &Source{
		QueueSource: framesource.NewQueueSource(format),
		input:       asReadCloser(input),
		config:      Options(opts).config(),
	}
	s.chunker = framesource.NewChunker(s.Queue, format)

	ctx, cancelFn := context.WithCancel(xcontext.DetachDone(ctx))
	s.cancelFunc = cancelFn
	s.wg.Add(1)
	observability.Go(ctx, func() {
		defer s.wg.Done()
		defer s.Queue.Close()
		err := s.loop(ctx)
		if err != nil {
			logger.Errorf(ctx, "unable to read the audio: %v", err)
			s.loopErr = err
		}
	})
	return s, nil
}

func (s *Source) loop(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "loop()")
	defer func() { logger.Debugf(ctx, "/loop(): %v", _err) }()

	format := s.Format()
	buf := make([]byte, format.BytesPerFrame())

	var ticker *time.Ticker
	if s.config.RealTime {
		ticker = time.NewTicker(format.FrameDuration)
		defer ticker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := io.ReadFull(s.input, buf)
		if n > 0 {
			if _, wErr := s.chunker.Write(buf[:n]); wErr != nil {
				if errors.Is(wErr, framesource.ErrClosed{}) {
					return nil
				}
				return fmt.Errorf("unable to slice the audio into frames: %w", wErr)
			}
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			if leftover := s.chunker.Leftover(); leftover > 0 {
				logger.Debugf(ctx, "discarding the incomplete last frame (%d bytes)", leftover)
			}
			return nil
		default:
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return fmt.Errorf("unable to read from the input: %w", err)
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	}
}

// Close stops reading and closes the input. Frames already read are still
// returned by ReadFrame.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.cancelFunc()
		s.Queue.Close()
		if err := s.input.Close(); err != nil {
			logger.Debugf(context.TODO(), "unable to close the input: %v", err)
		}
	})
	return nil
}

// Wait blocks until the background reader exits and returns its error,
// if any.
func (s *Source) Wait() error {
	s.wg.Wait()
	return s.loopErr
}
