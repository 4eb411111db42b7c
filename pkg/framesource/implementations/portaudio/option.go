package portaudio

type config struct {
	DeviceName string
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

// OptionDeviceName selects the first input device whose name contains the
// given string (case-insensitive) instead of the default input device.
type OptionDeviceName string

func (opt OptionDeviceName) apply(cfg *config) {
	cfg.DeviceName = string(opt)
}
