// Package config loads the configuration of the tools from a YAML file.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	sourceauto "github.com/xaionaro-go/vadsplit/pkg/framesource/implementations/auto"
	"github.com/xaionaro-go/vadsplit/pkg/segmenter"
	vadauto "github.com/xaionaro-go/vadsplit/pkg/vad/implementations/auto"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Audio     AudioConfig     `yaml:"audio"`
	VAD       VADConfig       `yaml:"vad"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type AudioConfig struct {
	Source          sourceauto.Kind `yaml:"source"`
	Device          string          `yaml:"device"`
	InputFile       string          `yaml:"input_file"`
	RealTime        bool            `yaml:"real_time"`
	SampleRate      uint            `yaml:"sample_rate"`
	BlocksPerSecond uint            `yaml:"blocks_per_second"`
}

type VADConfig struct {
	Backend        vadauto.Backend `yaml:"backend"`
	Aggressiveness int             `yaml:"aggressiveness"`
}

type SegmenterConfig struct {
	StartPadding             time.Duration `yaml:"start_padding"`
	EndPadding               time.Duration `yaml:"end_padding"`
	StartRatio               float64       `yaml:"start_ratio"`
	EndRatio                 float64       `yaml:"end_ratio"`
	PartialWindowDenominator bool          `yaml:"partial_window_denominator"`
}

type MetricsConfig struct {
	// ListenAddr is the address to serve /metrics on; empty disables it.
	ListenAddr string `yaml:"listen_addr"`
}

func Default() Config {
	return Config{
		Audio: AudioConfig{
			Source:          sourceauto.KindPortAudio,
			SampleRate:      uint(frame.DefaultSampleRate),
			BlocksPerSecond: frame.DefaultBlocksPerSecond,
		},
		VAD: VADConfig{
			Backend:        vadauto.BackendAuto,
			Aggressiveness: 3,
		},
		Segmenter: SegmenterConfig{
			StartPadding: segmenter.DefaultPadding,
			EndPadding:   segmenter.DefaultPadding,
			StartRatio:   segmenter.DefaultRatio,
			EndRatio:     segmenter.DefaultRatio,
		},
	}
}

// Load reads the file over the defaults. A missing path means the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return &cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the config file '%s': %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load the config file '%s': %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes the YAML over the defaults. Unknown fields are
// an error. The result is not validated, so that command line overrides
// could be applied first.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("unable to decode YAML: %w", err)
	}
	return &cfg, nil
}

// Dump writes the config as YAML.
func (cfg Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("unable to encode YAML: %w", err)
	}
	return enc.Close()
}

func (cfg Config) Validate() error {
	var result *multierror.Error

	if err := cfg.Format().Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("audio: %w", err))
	}
	if cfg.Audio.Source == sourceauto.KindFile && cfg.Audio.InputFile == "" {
		result = multierror.Append(result, fmt.Errorf("audio: input_file is required for source '%s'", cfg.Audio.Source))
	}
	var source sourceauto.Kind
	if err := source.Set(string(cfg.Audio.Source)); err != nil {
		result = multierror.Append(result, fmt.Errorf("audio: %w", err))
	}

	var backend vadauto.Backend
	if err := backend.Set(string(cfg.VAD.Backend)); err != nil {
		result = multierror.Append(result, fmt.Errorf("vad: %w", err))
	}
	if cfg.VAD.Aggressiveness < 0 || cfg.VAD.Aggressiveness > 3 {
		result = multierror.Append(result, fmt.Errorf("vad: aggressiveness must be within [0, 3], got %d", cfg.VAD.Aggressiveness))
	}

	seg := cfg.Segmenter
	if seg.StartPadding < 0 || seg.EndPadding < 0 {
		result = multierror.Append(result, fmt.Errorf("segmenter: padding cannot be negative"))
	}
	if seg.StartRatio < 0 || seg.StartRatio > 1 || seg.EndRatio < 0 || seg.EndRatio > 1 {
		result = multierror.Append(result, fmt.Errorf("segmenter: ratios must be within [0, 1]"))
	}

	return result.ErrorOrNil()
}

func (cfg Config) Format() frame.Format {
	return frame.FormatFromBlocksPerSecond(audio.SampleRate(cfg.Audio.SampleRate), cfg.Audio.BlocksPerSecond)
}

func (cfg Config) SegmenterOptions() segmenter.Options {
	seg := cfg.Segmenter
	return segmenter.Options{
		segmenter.OptionStartPadding(seg.StartPadding),
		segmenter.OptionEndPadding(seg.EndPadding),
		segmenter.OptionStartRatio(seg.StartRatio),
		segmenter.OptionEndRatio(seg.EndRatio),
		segmenter.OptionPartialWindowDenominator(seg.PartialWindowDenominator),
	}
}

func (cfg Config) SourceParams() sourceauto.Params {
	return sourceauto.Params{
		Device:    cfg.Audio.Device,
		InputFile: cfg.Audio.InputFile,
		RealTime:  cfg.Audio.RealTime,
	}
}
