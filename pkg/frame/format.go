package frame

import (
	"fmt"
	"slices"
	"time"

	"github.com/xaionaro-go/audio/pkg/audio"
)

const (
	DefaultSampleRate      = audio.SampleRate(16000)
	DefaultChannels        = audio.Channel(1)
	DefaultBlocksPerSecond = 50

	bytesPerSample = 2
)

// SupportedSampleRates are the sample rates the voice activity classifiers accept.
var SupportedSampleRates = []audio.SampleRate{8000, 16000, 32000, 48000}

// SupportedFrameDurations are the frame durations the voice activity classifiers accept.
var SupportedFrameDurations = []time.Duration{
	10 * time.Millisecond,
	20 * time.Millisecond,
	30 * time.Millisecond,
}

// Format is the configuration of a capture session. It is fixed for the
// whole lifetime of a source.
type Format struct {
	SampleRate    audio.SampleRate
	Channels      audio.Channel
	FrameDuration time.Duration
}

// DefaultFormat returns 16kHz mono with 20ms frames.
func DefaultFormat() Format {
	return FormatFromBlocksPerSecond(DefaultSampleRate, DefaultBlocksPerSecond)
}

// FormatFromBlocksPerSecond returns the mono format which splits every
// second of audio into blocksPerSecond frames.
func FormatFromBlocksPerSecond(
	sampleRate audio.SampleRate,
	blocksPerSecond uint,
) Format {
	if blocksPerSecond == 0 {
		return Format{SampleRate: sampleRate, Channels: DefaultChannels}
	}
	blockSize := uint64(sampleRate) / uint64(blocksPerSecond)
	return Format{
		SampleRate:    sampleRate,
		Channels:      DefaultChannels,
		FrameDuration: time.Duration(blockSize) * time.Second / time.Duration(sampleRate),
	}
}

// Encoding returns the encoding of the frames' payload.
func (f Format) Encoding() audio.EncodingPCM {
	return audio.EncodingPCM{
		PCMFormat:  audio.PCMFormatS16LE,
		SampleRate: f.SampleRate,
	}
}

// SamplesPerFrame returns the amount of samples (per channel) in a frame.
func (f Format) SamplesPerFrame() int {
	return int(uint64(f.SampleRate) * uint64(f.FrameDuration) / uint64(time.Second))
}

// BytesPerFrame returns the exact length every frame of this format has.
func (f Format) BytesPerFrame() int {
	return f.SamplesPerFrame() * int(f.Channels) * bytesPerSample
}

// DurationOf returns the duration of the given amount of PCM bytes.
func (f Format) DurationOf(byteCount int) time.Duration {
	bytesPerSecond := uint64(f.SampleRate) * uint64(f.Channels) * bytesPerSample
	if bytesPerSecond == 0 {
		return 0
	}
	return time.Duration(uint64(byteCount) * uint64(time.Second) / bytesPerSecond)
}

// Validate checks that the format is one the classifiers can work with.
func (f Format) Validate() error {
	if f.Channels != 1 {
		return ErrUnsupportedFormat{Format: f, Reason: fmt.Sprintf("only mono is supported, got %d channels", f.Channels)}
	}
	if !slices.Contains(SupportedSampleRates, f.SampleRate) {
		return ErrUnsupportedFormat{Format: f, Reason: fmt.Sprintf("sample rate %d is not one of %v", f.SampleRate, SupportedSampleRates)}
	}
	if !slices.Contains(SupportedFrameDurations, f.FrameDuration) {
		return ErrUnsupportedFormat{Format: f, Reason: fmt.Sprintf("frame duration %v is not one of %v", f.FrameDuration, SupportedFrameDurations)}
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch/%v", f.SampleRate, f.Channels, f.FrameDuration)
}
