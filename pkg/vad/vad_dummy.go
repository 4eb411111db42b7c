package vad

import (
	"context"

	"github.com/xaionaro-go/audio/pkg/audio"
)

// Dummy considers every well-formed frame to be speech (or every frame to be
// silence if IsSpeechValue is false).
type Dummy struct {
	EncodingValue audio.Encoding
	ChannelsValue audio.Channel
	IsSpeechValue bool
}

var _ VAD = (*Dummy)(nil)

func NewDummy(
	encoding audio.Encoding,
	channels audio.Channel,
	isSpeech bool,
) *Dummy {
	return &Dummy{
		EncodingValue: encoding,
		ChannelsValue: channels,
		IsSpeechValue: isSpeech,
	}
}

func (vad *Dummy) Close() error {
	return nil
}

func (vad *Dummy) Encoding(context.Context) (audio.Encoding, error) {
	return vad.EncodingValue, nil
}

func (vad *Dummy) Channels(context.Context) (audio.Channel, error) {
	return vad.ChannelsValue, nil
}

func (vad *Dummy) IsSpeech(
	_ context.Context,
	samples []byte,
	sampleRate audio.SampleRate,
) (bool, error) {
	if err := CheckFrameShape(samples, sampleRate); err != nil {
		return false, err
	}
	return vad.IsSpeechValue, nil
}
