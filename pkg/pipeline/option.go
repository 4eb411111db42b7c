package pipeline

import (
	"io"

	"github.com/xaionaro-go/vadsplit/pkg/metrics"
)

type config struct {
	Metrics *metrics.Metrics
	Stdin   io.Reader
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
	cfg := config{}
	opts.apply(&cfg)
	return cfg
}

type OptionMetrics struct {
	Metrics *metrics.Metrics
}

func (opt OptionMetrics) apply(cfg *config) {
	cfg.Metrics = opt.Metrics
}

// OptionStdin sets the reader used if the input file is "-".
type OptionStdin struct {
	Reader io.Reader
}

func (opt OptionStdin) apply(cfg *config) {
	cfg.Stdin = opt.Reader
}
