// Package libfvad implements the voice activity classifier with libfvad,
// the standalone build of the WebRTC VAD.
package libfvad

import (
	"context"
	"fmt"

	"github.com/josharian/fvad"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/vad"
	"github.com/xaionaro-go/xsync"
)

const (
	AggressivenessMin = 0
	AggressivenessMax = 3
)

type VAD struct {
	locker     xsync.Mutex
	Detector   *fvad.Detector
	SampleRate audio.SampleRate
}

var _ vad.VAD = (*VAD)(nil)

// NewVAD creates a classifier for the given sample rate. aggressiveness
// is within [0, 3]: 0 is the least aggressive about filtering out
// non-speech, 3 is the most aggressive.
func NewVAD(
	sampleRate audio.SampleRate,
	aggressiveness int,
) (*VAD, error) {
	if aggressiveness < AggressivenessMin || aggressiveness > AggressivenessMax {
		return nil, vad.ErrInvalidAggressiveness{Value: aggressiveness}
	}
	detector := fvad.NewDetector()
	if err := detector.SetSampleRate(int(sampleRate)); err != nil {
		detector.Close()
		return nil, fmt.Errorf("unable to set the sample rate: %w", err)
	}
	if err := detector.SetMode(aggressiveness); err != nil {
		detector.Close()
		return nil, fmt.Errorf("unable to set the aggressiveness mode: %w", err)
	}
	return &VAD{
		SampleRate: sampleRate,
		Detector:   detector,
	}, nil
}

func (v *VAD) Close() error {
	v.locker.Do(context.Background(), func() {
		if v.Detector == nil {
			return
		}
		v.Detector.Close()
		v.Detector = nil
	})
	return nil
}

func (v *VAD) Encoding(context.Context) (audio.Encoding, error) {
	return v.EncodingNoErr(), nil
}

func (v *VAD) EncodingNoErr() audio.EncodingPCM {
	return audio.EncodingPCM{
		PCMFormat:  audio.PCMFormatS16LE,
		SampleRate: v.SampleRate,
	}
}

func (v *VAD) Channels(context.Context) (audio.Channel, error) {
	return v.ChannelsNoErr(), nil
}

func (*VAD) ChannelsNoErr() audio.Channel {
	return 1
}

func (v *VAD) IsSpeech(
	ctx context.Context,
	samples []byte,
	sampleRate audio.SampleRate,
) (bool, error) {
	if sampleRate != v.SampleRate {
		return false, vad.ErrSampleRateMismatch{
			Expected: v.SampleRate,
			Actual:   sampleRate,
		}
	}
	if err := vad.CheckFrameShape(samples, sampleRate); err != nil {
		return false, err
	}

	var (
		isSpeech bool
		err      error
	)
	v.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		if v.Detector == nil {
			err = fmt.Errorf("the detector is already closed")
			return
		}
		isSpeech, err = v.Detector.Process(samplesFromBytes(samples))
	})
	return isSpeech, err
}
