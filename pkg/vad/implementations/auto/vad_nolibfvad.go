//go:build no_libfvad
// +build no_libfvad

package auto

import (
	"fmt"

	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/vad"
)

const defaultBackend = BackendRMS

func newWebRTC(
	audio.SampleRate,
	int,
) (vad.VAD, error) {
	return nil, fmt.Errorf("built without libfvad (tag no_libfvad)")
}
