// Package segmenter splits a stream of audio frames into utterances.
//
// Every frame is classified as speech or non-speech, and the judgements of
// the most recent frames vote in a sliding window. While idle, the window
// keeps the last frames; once the share of voiced frames exceeds the ratio,
// the segmenter triggers and emits the whole window (so the utterance
// includes the audio right before the detected onset). While triggered,
// frames are emitted immediately, and once the share of unvoiced frames
// exceeds the ratio, the segmenter emits an end marker and goes idle.
//
// A single misclassified frame cannot flip the state; only a sustained
// majority within the window can.
package segmenter

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/vad"
)

// FrameReader is the source of frames a Segmenter pulls from.
type FrameReader interface {
	ReadFrame(ctx context.Context) (frame.Frame, error)
}

// Segmenter is the state machine of a single segmentation session. It is
// not safe for concurrent use.
type Segmenter struct {
	source     FrameReader
	classifier vad.VAD
	format     frame.Format
	config     config

	state         State
	window        *VotingWindow
	startCapacity int
	endCapacity   int
	pending       []Event
}

func New(
	source FrameReader,
	classifier vad.VAD,
	format frame.Format,
	opts ...Option,
) (*Segmenter, error) {
	cfg := Options(opts).config()
	if format.FrameDuration <= 0 {
		return nil, ErrInvalidConfig{Reason: fmt.Sprintf("frame duration must be positive, got %v", format.FrameDuration)}
	}
	if cfg.StartPadding < 0 || cfg.EndPadding < 0 {
		return nil, ErrInvalidConfig{Reason: fmt.Sprintf("padding cannot be negative: start:%v end:%v", cfg.StartPadding, cfg.EndPadding)}
	}
	if cfg.StartRatio < 0 || cfg.StartRatio > 1 || cfg.EndRatio < 0 || cfg.EndRatio > 1 {
		return nil, ErrInvalidConfig{Reason: fmt.Sprintf("ratios must be within [0, 1]: start:%v end:%v", cfg.StartRatio, cfg.EndRatio)}
	}

	s := &Segmenter{
		source:        source,
		classifier:    classifier,
		format:        format,
		config:        cfg,
		state:         StateIdle,
		startCapacity: int(cfg.StartPadding / format.FrameDuration),
		endCapacity:   int(cfg.EndPadding / format.FrameDuration),
	}
	s.window = NewVotingWindow(s.startCapacity)
	return s, nil
}

// State returns the current state of the state machine.
func (s *Segmenter) State() State {
	return s.state
}

// WindowCapacities returns the capacities (in frames) of the window used
// to trigger and to release an utterance.
func (s *Segmenter) WindowCapacities() (start, end int) {
	return s.startCapacity, s.endCapacity
}

// Next returns the next event, reading and processing as many frames as
// needed. Errors of the source and of the processing are returned as is.
func (s *Segmenter) Next(ctx context.Context) (Event, error) {
	for len(s.pending) == 0 {
		f, err := s.source.ReadFrame(ctx)
		if err != nil {
			return Event{}, err
		}
		events, err := s.Process(ctx, f)
		if err != nil {
			return Event{}, err
		}
		s.pending = events
	}
	ev := s.pending[0]
	s.pending = s.pending[1:]
	return ev, nil
}

// Events returns the infinite sequence of events. The sequence stops after
// yielding the first error.
func (s *Segmenter) Events(ctx context.Context) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := s.Next(ctx)
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

// Process runs the state machine over a single frame and returns the
// events it produced (possibly none). On error the state is not changed.
func (s *Segmenter) Process(
	ctx context.Context,
	f frame.Frame,
) ([]Event, error) {
	if expected := s.format.BytesPerFrame(); len(f.Data) != expected {
		s.config.Metrics.ObserveInvalidFrame()
		return nil, vad.ErrInvalidFrameShape{
			SampleRate: s.format.SampleRate,
			Expected:   expected,
			Actual:     len(f.Data),
		}
	}

	isSpeech, err := s.classifier.IsSpeech(ctx, f.Data, s.format.SampleRate)
	if err != nil {
		if errors.As(err, &vad.ErrInvalidFrameShape{}) {
			s.config.Metrics.ObserveInvalidFrame()
			return nil, err
		}
		s.config.Metrics.ObserveClassifierFailure()
		return nil, ErrClassifierFailure{Err: err}
	}
	s.config.Metrics.ObserveFrame(isSpeech)

	var events []Event
	switch s.state {
	case StateIdle:
		events = s.processIdle(ctx, f, isSpeech)
	case StateTriggered:
		events = s.processTriggered(ctx, f, isSpeech)
	default:
		return nil, fmt.Errorf("internal error: unexpected state %v", s.state)
	}

	emitted := len(events)
	if emitted > 0 && events[emitted-1].IsEnd() {
		emitted--
	}
	s.config.Metrics.ObserveEmitted(emitted)
	return events, nil
}

func (s *Segmenter) processIdle(
	ctx context.Context,
	f frame.Frame,
	isSpeech bool,
) []Event {
	if s.window.Cap() == 0 {
		if !isSpeech {
			return nil
		}
		s.setState(ctx, StateTriggered, f)
		return []Event{FrameEvent(f)}
	}

	s.window.Push(f, isSpeech)
	if float64(s.window.Voiced()) <= s.config.StartRatio*s.denominator() {
		return nil
	}

	frames := s.window.Frames()
	events := make([]Event, 0, len(frames))
	for _, windowed := range frames {
		events = append(events, FrameEvent(windowed))
	}
	s.setState(ctx, StateTriggered, f)
	return events
}

func (s *Segmenter) processTriggered(
	ctx context.Context,
	f frame.Frame,
	isSpeech bool,
) []Event {
	events := []Event{FrameEvent(f)}
	if s.window.Cap() == 0 {
		if isSpeech {
			return events
		}
		s.setState(ctx, StateIdle, f)
		return append(events, EndEvent())
	}

	s.window.Push(f, isSpeech)
	if float64(s.window.Unvoiced()) <= s.config.EndRatio*s.denominator() {
		return events
	}

	s.setState(ctx, StateIdle, f)
	return append(events, EndEvent())
}

func (s *Segmenter) denominator() float64 {
	if s.config.PartialWindowDenominator {
		return float64(s.window.Len())
	}
	return float64(s.window.Cap())
}

// setState switches the state and clears the window; the window of the
// new state may have a different capacity.
func (s *Segmenter) setState(
	ctx context.Context,
	newState State,
	at frame.Frame,
) {
	logger.Debugf(ctx, "%s -> %s at %v", s.state, newState, at.Timestamp)
	s.state = newState
	switch newState {
	case StateTriggered:
		s.config.Metrics.ObserveTrigger()
		s.window.Reset(s.endCapacity)
	case StateIdle:
		s.config.Metrics.ObserveRelease()
		s.window.Reset(s.startCapacity)
	}
}
