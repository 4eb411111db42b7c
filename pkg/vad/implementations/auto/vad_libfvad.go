//go:build !no_libfvad
// +build !no_libfvad

package auto

import (
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/vad"
	"github.com/xaionaro-go/vadsplit/pkg/vad/implementations/libfvad"
)

const defaultBackend = BackendWebRTC

func newWebRTC(
	sampleRate audio.SampleRate,
	aggressiveness int,
) (vad.VAD, error) {
	v, err := libfvad.NewVAD(sampleRate, aggressiveness)
	if err != nil {
		return nil, err
	}
	return v, nil
}
