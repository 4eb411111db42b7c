package reader

type config struct {
	RealTime bool
}

func defaultConfig() config {
	return config{}
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

// OptionRealTime makes the source deliver frames at the capture pace
// (one frame per frame duration) instead of as fast as they are read.
type OptionRealTime bool

func (opt OptionRealTime) apply(cfg *config) {
	cfg.RealTime = bool(opt)
}
