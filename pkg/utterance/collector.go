package utterance

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/segmenter"
)

type EventReader interface {
	Next(ctx context.Context) (segmenter.Event, error)
}

var _ EventReader = (*segmenter.Segmenter)(nil)

// Collector buffers the frames between a trigger and the end marker and
// returns them as a single Utterance.
type Collector struct {
	events EventReader
	format frame.Format
	config config

	frames  frame.Frames
	pendErr error
}

func NewCollector(
	events EventReader,
	format frame.Format,
	opts ...Option,
) *Collector {
	return &Collector{
		events: events,
		format: format,
		config: Options(opts).config(),
	}
}

// Next blocks until an utterance is complete.
//
// If the event stream fails while an utterance is being collected, the
// collected part is returned first (with Incomplete set, unless disabled by
// OptionKeepIncomplete) and the error is returned by the following call.
func (c *Collector) Next(ctx context.Context) (_ret *Utterance, _err error) {
	logger.Tracef(ctx, "Next()")
	defer func() { logger.Tracef(ctx, "/Next(): %v", _err) }()

	if err := c.pendErr; err != nil {
		return nil, err
	}

	for {
		ev, err := c.events.Next(ctx)
		if err != nil {
			if len(c.frames) == 0 || !c.config.KeepIncomplete {
				if len(c.frames) > 0 {
					logger.Debugf(ctx, "dropping an incomplete utterance of %d frames", len(c.frames))
					c.frames = nil
				}
				return nil, err
			}
			c.pendErr = err
			return c.flush(ctx, true), nil
		}

		switch ev.Kind {
		case segmenter.EventKindFrame:
			c.frames = append(c.frames, ev.Frame)
		case segmenter.EventKindEnd:
			if len(c.frames) == 0 {
				logger.Warnf(ctx, "an end marker without any frames")
				continue
			}
			return c.flush(ctx, false), nil
		default:
			logger.Errorf(ctx, "unexpected event kind: %v", ev.Kind)
		}
	}
}

func (c *Collector) flush(ctx context.Context, incomplete bool) *Utterance {
	u := newUtterance(c.frames, c.format, incomplete)
	c.frames = nil
	logger.Debugf(ctx, "collected an utterance at %v of %v (%d frames, incomplete: %t)", u.Start, u.Duration, u.FrameCount, u.Incomplete)
	c.config.Metrics.ObserveUtterance(u.Duration)
	return u
}
