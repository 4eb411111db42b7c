// Package auto constructs a voice activity classifier by backend name.
package auto

import (
	"context"
	"fmt"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/vad"
	"github.com/xaionaro-go/vadsplit/pkg/vad/implementations/rms"
)

type Backend string

const (
	BackendAuto   = Backend("auto")
	BackendWebRTC = Backend("webrtc")
	BackendRMS    = Backend("rms")
	BackendDummy  = Backend("dummy")
)

func (b Backend) String() string {
	return string(b)
}

func (b *Backend) Set(s string) error {
	switch v := Backend(strings.ToLower(strings.TrimSpace(s))); v {
	case BackendAuto, BackendWebRTC, BackendRMS, BackendDummy:
		*b = v
		return nil
	default:
		return fmt.Errorf("unknown VAD backend '%s'", s)
	}
}

func (b Backend) Type() string {
	return "vad-backend"
}

// New returns the classifier of the given backend. BackendAuto selects the
// WebRTC VAD unless the binary was built without it.
func New(
	ctx context.Context,
	backend Backend,
	sampleRate audio.SampleRate,
	aggressiveness int,
) (vad.VAD, error) {
	if backend == "" || backend == BackendAuto {
		backend = defaultBackend
	}
	logger.Debugf(ctx, "VAD backend: %s; aggressiveness: %d", backend, aggressiveness)

	switch backend {
	case BackendWebRTC:
		return newWebRTC(sampleRate, aggressiveness)
	case BackendRMS:
		v, err := rms.NewVAD(sampleRate, aggressiveness)
		if err != nil {
			return nil, err
		}
		return v, nil
	case BackendDummy:
		return vad.NewDummy(audio.EncodingPCM{
			PCMFormat:  audio.PCMFormatS16LE,
			SampleRate: sampleRate,
		}, 1, true), nil
	default:
		return nil, fmt.Errorf("unknown VAD backend '%s'", backend)
	}
}
