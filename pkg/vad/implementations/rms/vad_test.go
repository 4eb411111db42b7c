package rms

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func sine(sampleCount int, amplitude float64) []byte {
	b := make([]byte, sampleCount*2)
	for idx := 0; idx < sampleCount; idx++ {
		v := amplitude * math.MaxInt16 * math.Sin(2*math.Pi*440*float64(idx)/16000)
		binary.LittleEndian.PutUint16(b[idx*2:], uint16(int16(v)))
	}
	return b
}

func TestLevel(t *testing.T) {
	require.Zero(t, Level(nil))
	require.Zero(t, Level(make([]byte, 640)))
	require.InDelta(t, 0.5/math.Sqrt2, Level(sine(3200, 0.5)), 0.01)
}

func TestIsSpeech(t *testing.T) {
	ctx := context.Background()
	v, err := NewVAD(16000, 3)
	require.NoError(t, err)

	isSpeech, err := v.IsSpeech(ctx, make([]byte, 640), 16000)
	require.NoError(t, err)
	require.False(t, isSpeech)

	isSpeech, err = v.IsSpeech(ctx, sine(320, 0.3), 16000)
	require.NoError(t, err)
	require.True(t, isSpeech)

	_, err = v.IsSpeech(ctx, sine(321, 0.3), 16000)
	require.Error(t, err)

	_, err = NewVAD(16000, 4)
	require.Error(t, err)
}
