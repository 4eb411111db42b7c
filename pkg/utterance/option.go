package utterance

import (
	"github.com/xaionaro-go/vadsplit/pkg/metrics"
)

type config struct {
	KeepIncomplete bool
	Metrics        *metrics.Metrics
}

func defaultConfig() config {
	return config{
		KeepIncomplete: true,
	}
}

type Option interface {
	apply(*config)
}

type Options []Option

func (opts Options) apply(cfg *config) {
	for _, opt := range opts {
		opt.apply(cfg)
	}
}

func (opts Options) config() config {
	cfg := defaultConfig()
	opts.apply(&cfg)
	return cfg
}

// OptionKeepIncomplete defines if the frames collected before the event
// stream failed are returned as an Incomplete utterance (default) or
// dropped.
type OptionKeepIncomplete bool

func (opt OptionKeepIncomplete) apply(cfg *config) {
	cfg.KeepIncomplete = bool(opt)
}

type OptionMetrics struct {
	Metrics *metrics.Metrics
}

func (opt OptionMetrics) apply(cfg *config) {
	cfg.Metrics = opt.Metrics
}
