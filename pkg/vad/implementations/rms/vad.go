// Package rms implements a pure-Go voice activity classifier comparing the
// RMS energy of a frame with a threshold.
//
// It is much less accurate than the WebRTC VAD; it exists for builds
// without cgo.
package rms

import (
	"context"
	"encoding/binary"
	"math"

	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/vad"
)

// Thresholds are the normalized RMS levels (0..1) above which a frame is
// speech, indexed by aggressiveness.
var Thresholds = [...]float64{0.005, 0.01, 0.015, 0.025}

type VAD struct {
	SampleRate audio.SampleRate
	Threshold  float64
}

var _ vad.VAD = (*VAD)(nil)

func NewVAD(
	sampleRate audio.SampleRate,
	aggressiveness int,
) (*VAD, error) {
	if aggressiveness < 0 || aggressiveness >= len(Thresholds) {
		return nil, vad.ErrInvalidAggressiveness{Value: aggressiveness}
	}
	return &VAD{
		SampleRate: sampleRate,
		Threshold:  Thresholds[aggressiveness],
	}, nil
}

func (*VAD) Close() error {
	return nil
}

func (v *VAD) Encoding(context.Context) (audio.Encoding, error) {
	return audio.EncodingPCM{
		PCMFormat:  audio.PCMFormatS16LE,
		SampleRate: v.SampleRate,
	}, nil
}

func (*VAD) Channels(context.Context) (audio.Channel, error) {
	return 1, nil
}

func (v *VAD) IsSpeech(
	_ context.Context,
	samples []byte,
	sampleRate audio.SampleRate,
) (bool, error) {
	if err := vad.CheckFrameShape(samples, sampleRate); err != nil {
		return false, err
	}
	return Level(samples) >= v.Threshold, nil
}

// Level returns the RMS of S16LE samples normalized to 0..1.
func Level(samples []byte) float64 {
	count := len(samples) / 2
	if count == 0 {
		return 0
	}
	var sum float64
	for idx := 0; idx < count; idx++ {
		sample := float64(int16(binary.LittleEndian.Uint16(samples[idx*2:]))) / math.MaxInt16
		sum += sample * sample
	}
	return math.Sqrt(sum / float64(count))
}
