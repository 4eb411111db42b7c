// Package framesource turns callback-driven audio capture into a blocking,
// pull-based stream of fixed-size frames.
//
// A capture backend delivers audio on its own (real-time) goroutine and
// pushes it into a Queue; the consumer pulls frames with ReadFrame. The
// backend is never blocked by a slow consumer: frames are queued without a
// bound instead of being dropped.
package framesource

import (
	"context"
	"io"

	"github.com/xaionaro-go/vadsplit/pkg/frame"
)

type Source interface {
	io.Closer

	// Format returns the configuration the source was opened with.
	Format() frame.Format

	// ReadFrame blocks until the next captured frame is available.
	//
	// Frames are returned strictly in capture order. After the source is
	// closed, the frames captured before closing are still returned, and
	// then ErrClosed.
	ReadFrame(ctx context.Context) (frame.Frame, error)
}

// QueueSource implements the reading half of a Source on top of a Queue.
// Capture backends embed it and push into Queue.
type QueueSource struct {
	Queue       *Queue
	FrameFormat frame.Format
}

func NewQueueSource(format frame.Format) QueueSource {
	return QueueSource{
		Queue:       NewQueue(),
		FrameFormat: format,
	}
}

func (s *QueueSource) Format() frame.Format {
	return s.FrameFormat
}

func (s *QueueSource) ReadFrame(ctx context.Context) (frame.Frame, error) {
	return s.Queue.Pop(ctx)
}

// Pending returns the amount of captured frames not read yet.
func (s *QueueSource) Pending() int {
	return s.Queue.Len()
}
