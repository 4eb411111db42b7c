package config

import (
	"time"

	"github.com/spf13/pflag"
	sourceauto "github.com/xaionaro-go/vadsplit/pkg/framesource/implementations/auto"
	vadauto "github.com/xaionaro-go/vadsplit/pkg/vad/implementations/auto"
)

// Flags are the command line overrides of a Config. Only the flags which
// were set explicitly override the loaded values.
type Flags struct {
	fs *pflag.FlagSet

	Source          sourceauto.Kind
	Device          string
	InputFile       string
	RealTime        bool
	SampleRate      uint
	BlocksPerSecond uint

	Backend        vadauto.Backend
	Aggressiveness int

	Padding      time.Duration
	StartPadding time.Duration
	EndPadding   time.Duration
	Ratio        float64
	StartRatio   float64
	EndRatio     float64
	Partial      bool

	MetricsListenAddr string
}

func RegisterFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{
		fs:      fs,
		Source:  d.Audio.Source,
		Backend: d.VAD.Backend,
	}

	fs.Var(&f.Source, "source", "audio source: portaudio, recorder or file")
	fs.StringVar(&f.Device, "device", "", "a substring of the name of the PortAudio input device (default: the system default)")
	fs.StringVar(&f.InputFile, "input-file", "", "read raw S16LE mono PCM from the file instead of capturing ('-' for stdin); implies --source=file")
	fs.BoolVar(&f.RealTime, "real-time", false, "replay the input file at the capture pace")
	fs.UintVar(&f.SampleRate, "sample-rate", d.Audio.SampleRate, "sample rate of the audio, Hz")
	fs.UintVar(&f.BlocksPerSecond, "blocks-per-second", d.Audio.BlocksPerSecond, "amount of frames per second of audio")

	fs.Var(&f.Backend, "vad-backend", "voice activity detector: auto, webrtc, rms or dummy")
	fs.IntVarP(&f.Aggressiveness, "vad-aggressiveness", "v", d.VAD.Aggressiveness,
		"aggressiveness of the VAD: an integer between 0 and 3, 0 being the least aggressive about filtering out non-speech, 3 the most aggressive")

	fs.DurationVar(&f.Padding, "padding", d.Segmenter.StartPadding, "length of the voting window, both to trigger and to release an utterance")
	fs.DurationVar(&f.StartPadding, "start-padding", d.Segmenter.StartPadding, "length of the voting window used to trigger an utterance")
	fs.DurationVar(&f.EndPadding, "end-padding", d.Segmenter.EndPadding, "length of the voting window used to release an utterance")
	fs.Float64Var(&f.Ratio, "ratio", d.Segmenter.StartRatio, "share of the voting window required for a transition")
	fs.Float64Var(&f.StartRatio, "start-ratio", d.Segmenter.StartRatio, "share of voiced frames required to trigger an utterance")
	fs.Float64Var(&f.EndRatio, "end-ratio", d.Segmenter.EndRatio, "share of unvoiced frames required to release an utterance")
	fs.BoolVar(&f.Partial, "partial-window-denominator", false, "vote over the current length of a window which is not full yet")

	fs.StringVar(&f.MetricsListenAddr, "metrics-listen-addr", "", "serve Prometheus metrics at this address (disabled if empty)")
	return f
}

// Apply overrides the config with the flags set explicitly.
func (f *Flags) Apply(cfg *Config) {
	changed := f.fs.Changed

	if changed("input-file") {
		cfg.Audio.InputFile = f.InputFile
		if !changed("source") {
			cfg.Audio.Source = sourceauto.KindFile
		}
	}
	if changed("source") {
		cfg.Audio.Source = f.Source
	}
	if changed("device") {
		cfg.Audio.Device = f.Device
	}
	if changed("real-time") {
		cfg.Audio.RealTime = f.RealTime
	}
	if changed("sample-rate") {
		cfg.Audio.SampleRate = f.SampleRate
	}
	if changed("blocks-per-second") {
		cfg.Audio.BlocksPerSecond = f.BlocksPerSecond
	}

	if changed("vad-backend") {
		cfg.VAD.Backend = f.Backend
	}
	if changed("vad-aggressiveness") {
		cfg.VAD.Aggressiveness = f.Aggressiveness
	}

	if changed("padding") {
		cfg.Segmenter.StartPadding = f.Padding
		cfg.Segmenter.EndPadding = f.Padding
	}
	if changed("start-padding") {
		cfg.Segmenter.StartPadding = f.StartPadding
	}
	if changed("end-padding") {
		cfg.Segmenter.EndPadding = f.EndPadding
	}
	if changed("ratio") {
		cfg.Segmenter.StartRatio = f.Ratio
		cfg.Segmenter.EndRatio = f.Ratio
	}
	if changed("start-ratio") {
		cfg.Segmenter.StartRatio = f.StartRatio
	}
	if changed("end-ratio") {
		cfg.Segmenter.EndRatio = f.EndRatio
	}
	if changed("partial-window-denominator") {
		cfg.Segmenter.PartialWindowDenominator = f.Partial
	}

	if changed("metrics-listen-addr") {
		cfg.Metrics.ListenAddr = f.MetricsListenAddr
	}
}
