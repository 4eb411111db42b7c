package segmenter

import (
	"time"

	"github.com/xaionaro-go/vadsplit/pkg/metrics"
)

const (
	DefaultPadding = 300 * time.Millisecond
	DefaultRatio   = 0.75
)

type config struct {
	StartPadding time.Duration
	EndPadding   time.Duration
	StartRatio   float64
	EndRatio     float64

	PartialWindowDenominator bool

	Metrics *metrics.Metrics
}

func defaultConfig() config {
	return config{
		StartPadding: DefaultPadding,
		EndPadding:   DefaultPadding,
		StartRatio:   DefaultRatio,
		EndRatio:     DefaultRatio,
	}
}

// Option configures a Segmenter. Options are applied in order, so a later
// OptionPadding overrides an earlier OptionStartPadding.
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

// OptionPadding sets the length of audio inspected both to trigger and to
// release an utterance.
type OptionPadding time.Duration

func (opt OptionPadding) apply(cfg *config) {
	cfg.StartPadding = time.Duration(opt)
	cfg.EndPadding = time.Duration(opt)
}

// OptionStartPadding sets the length of audio inspected to trigger an
// utterance; it is also the length of audio prepended to the utterance.
type OptionStartPadding time.Duration

func (opt OptionStartPadding) apply(cfg *config) {
	cfg.StartPadding = time.Duration(opt)
}

// OptionEndPadding sets the length of audio inspected to release an utterance.
type OptionEndPadding time.Duration

func (opt OptionEndPadding) apply(cfg *config) {
	cfg.EndPadding = time.Duration(opt)
}

// OptionRatio sets the share of the window which has to vote for a
// transition, both to trigger and to release.
type OptionRatio float64

func (opt OptionRatio) apply(cfg *config) {
	cfg.StartRatio = float64(opt)
	cfg.EndRatio = float64(opt)
}

type OptionStartRatio float64

func (opt OptionStartRatio) apply(cfg *config) {
	cfg.StartRatio = float64(opt)
}

type OptionEndRatio float64

func (opt OptionEndRatio) apply(cfg *config) {
	cfg.EndRatio = float64(opt)
}

// OptionPartialWindowDenominator makes the vote use the current length of
// a window which is not full yet instead of its capacity. It shortens the
// latency of the very first trigger at the cost of triggering on a short
// burst right after the start.
type OptionPartialWindowDenominator bool

func (opt OptionPartialWindowDenominator) apply(cfg *config) {
	cfg.PartialWindowDenominator = bool(opt)
}

type OptionMetrics struct {
	Metrics *metrics.Metrics
}

func (opt OptionMetrics) apply(cfg *config) {
	cfg.Metrics = opt.Metrics
}
