package framesource

import (
	"fmt"
	"time"

	"github.com/xaionaro-go/vadsplit/pkg/frame"
)

// Chunker is an io.Writer which slices a continuous PCM byte stream into
// frames of the configured format and pushes them into a Queue.
//
// A Chunker is supposed to be written to from a single goroutine.
type Chunker struct {
	queue   *Queue
	format  frame.Format
	pending []byte
	count   uint64
}

func NewChunker(queue *Queue, format frame.Format) *Chunker {
	return &Chunker{
		queue:  queue,
		format: format,
	}
}

// Write slices p into frames. The tail which does not make a whole frame
// is kept until the next Write.
func (c *Chunker) Write(p []byte) (int, error) {
	frameSize := c.format.BytesPerFrame()
	if frameSize <= 0 {
		return 0, fmt.Errorf("invalid frame size %d for format %s", frameSize, c.format)
	}
	c.pending = append(c.pending, p...)
	for len(c.pending) >= frameSize {
		data := make([]byte, frameSize)
		copy(data, c.pending[:frameSize])
		c.pending = c.pending[frameSize:]
		if !c.queue.Push(frame.Frame{
			Data:      data,
			Timestamp: time.Duration(c.count) * c.format.FrameDuration,
		}) {
			return len(p), ErrClosed{}
		}
		c.count++
	}
	if len(c.pending) == 0 {
		c.pending = nil
	}
	return len(p), nil
}

// Frames returns the amount of frames pushed so far.
func (c *Chunker) Frames() uint64 {
	return c.count
}

// Leftover returns the amount of buffered bytes which do not make a whole frame yet.
func (c *Chunker) Leftover() int {
	return len(c.pending)
}
