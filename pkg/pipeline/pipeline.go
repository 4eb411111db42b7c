// Package pipeline wires a capture source, a voice activity classifier, a
// segmenter and an utterance collector into a single capture session.
package pipeline

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	cfgpkg "github.com/xaionaro-go/vadsplit/pkg/config"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
	sourceauto "github.com/xaionaro-go/vadsplit/pkg/framesource/implementations/auto"
	"github.com/xaionaro-go/vadsplit/pkg/segmenter"
	"github.com/xaionaro-go/vadsplit/pkg/utterance"
	"github.com/xaionaro-go/vadsplit/pkg/vad"
	vadauto "github.com/xaionaro-go/vadsplit/pkg/vad/implementations/auto"
)

type Pipeline struct {
	Source    framesource.Source
	VAD       vad.VAD
	Segmenter *segmenter.Segmenter
	Collector *utterance.Collector
}

type pendingCounter interface {
	Pending() int
}

// New opens the source described by the config and starts a session.
func New(
	ctx context.Context,
	cfg cfgpkg.Config,
	opts ...Option,
) (_ret *Pipeline, _err error) {
	logger.Debugf(ctx, "New")
	defer func() { logger.Debugf(ctx, "/New: %v", _err) }()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	pCfg := Options(opts).config()

	params := cfg.SourceParams()
	params.Stdin = pCfg.Stdin
	src, err := sourceauto.New(ctx, cfg.Audio.Source, cfg.Format(), params)
	if err != nil {
		return nil, fmt.Errorf("unable to open the audio source: %w", err)
	}

	p, err := NewWithSource(ctx, src, cfg, opts...)
	if err != nil {
		src.Close()
		return nil, err
	}
	return p, nil
}

// NewWithSource starts a session over an already opened source. The
// source is closed by Close.
func NewWithSource(
	ctx context.Context,
	src framesource.Source,
	cfg cfgpkg.Config,
	opts ...Option,
) (*Pipeline, error) {
	pCfg := Options(opts).config()
	format := src.Format()

	classifier, err := vadauto.New(ctx, cfg.VAD.Backend, format.SampleRate, cfg.VAD.Aggressiveness)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the VAD: %w", err)
	}

	segOpts := append(cfg.SegmenterOptions(), segmenter.OptionMetrics{Metrics: pCfg.Metrics})
	seg, err := segmenter.New(src, classifier, format, segOpts...)
	if err != nil {
		classifier.Close()
		return nil, fmt.Errorf("unable to initialize the segmenter: %w", err)
	}

	if counter, ok := src.(pendingCounter); ok {
		pCfg.Metrics.WatchQueue(counter.Pending)
	}

	return &Pipeline{
		Source:    src,
		VAD:       classifier,
		Segmenter: seg,
		Collector: utterance.NewCollector(seg, format, utterance.OptionMetrics{Metrics: pCfg.Metrics}),
	}, nil
}

func (p *Pipeline) Format() frame.Format {
	return p.Source.Format()
}

// Next blocks until the next utterance is captured.
func (p *Pipeline) Next(ctx context.Context) (*utterance.Utterance, error) {
	return p.Collector.Next(ctx)
}

func (p *Pipeline) Close() error {
	var mErr *multierror.Error
	if err := p.Source.Close(); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("unable to close the source: %w", err))
	}
	if err := p.VAD.Close(); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("unable to close the VAD: %w", err))
	}
	return mErr.ErrorOrNil()
}
