package frame

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audio/pkg/audio"
)

func TestDefaultFormat(t *testing.T) {
	f := DefaultFormat()
	require.Equal(t, audio.SampleRate(16000), f.SampleRate)
	require.Equal(t, audio.Channel(1), f.Channels)
	require.Equal(t, 20*time.Millisecond, f.FrameDuration)
	require.Equal(t, 320, f.SamplesPerFrame())
	require.Equal(t, 640, f.BytesPerFrame())
	require.NoError(t, f.Validate())
	require.Equal(t, audio.PCMFormatS16LE, f.Encoding().PCMFormat)
}

func TestFormatFromBlocksPerSecond(t *testing.T) {
	for _, tc := range []struct {
		rate     audio.SampleRate
		bps      uint
		duration time.Duration
		bytes    int
	}{
		{8000, 100, 10 * time.Millisecond, 160},
		{16000, 50, 20 * time.Millisecond, 640},
		{48000, 50, 20 * time.Millisecond, 1920},
		{32000, 100, 10 * time.Millisecond, 640},
	} {
		f := FormatFromBlocksPerSecond(tc.rate, tc.bps)
		require.Equal(t, tc.duration, f.FrameDuration, f.String())
		require.Equal(t, tc.bytes, f.BytesPerFrame(), f.String())
		require.NoError(t, f.Validate())
	}
}

func TestFormatValidate(t *testing.T) {
	for name, f := range map[string]Format{
		"rate":     {SampleRate: 44100, Channels: 1, FrameDuration: 20 * time.Millisecond},
		"duration": {SampleRate: 16000, Channels: 1, FrameDuration: 25 * time.Millisecond},
		"stereo":   {SampleRate: 16000, Channels: 2, FrameDuration: 20 * time.Millisecond},
		"zero":     FormatFromBlocksPerSecond(16000, 0),
	} {
		t.Run(name, func(t *testing.T) {
			err := f.Validate()
			var errFormat ErrUnsupportedFormat
			require.True(t, errors.As(err, &errFormat), "%v", err)
			require.Equal(t, f, errFormat.Format)
		})
	}
}

func TestDurationOf(t *testing.T) {
	f := DefaultFormat()
	require.Equal(t, time.Second, f.DurationOf(32000))
	require.Equal(t, 20*time.Millisecond, f.DurationOf(f.BytesPerFrame()))
}

func TestFramesBytes(t *testing.T) {
	frames := Frames{
		{Data: []byte{1, 2}},
		{Data: []byte{3, 4}},
		{Data: []byte{5}},
	}
	require.Equal(t, []byte{1, 2, 3, 4, 5}, frames.Bytes())
	require.Empty(t, Frames(nil).Bytes())
}
