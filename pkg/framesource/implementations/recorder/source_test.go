package recorder

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
)

type fakeStream struct {
	closed int
}

func (s *fakeStream) Close() error {
	s.closed++
	return errors.New("already stopped")
}

type fakeRecorderPCM struct {
	stream  *fakeStream
	payload []byte
	err     error

	ctx        context.Context
	sampleRate audio.SampleRate
	channels   audio.Channel
	pcmFormat  audio.PCMFormat
}

var _ audio.RecorderPCM = (*fakeRecorderPCM)(nil)

func (*fakeRecorderPCM) Close() error {
	return nil
}

func (*fakeRecorderPCM) Ping(context.Context) error {
	return nil
}

func (r *fakeRecorderPCM) RecordPCM(
	ctx context.Context,
	sampleRate audio.SampleRate,
	channels audio.Channel,
	pcmFormat audio.PCMFormat,
	writer io.Writer,
) (audio.RecordStream, error) {
	r.ctx = ctx
	r.sampleRate = sampleRate
	r.channels = channels
	r.pcmFormat = pcmFormat
	if r.err != nil {
		return nil, r.err
	}
	if _, err := writer.Write(r.payload); err != nil {
		return nil, err
	}
	return r.stream, nil
}

func TestNewWithRecorder(t *testing.T) {
	ctx, cancelFn := context.WithCancel(context.Background())
	format := frame.DefaultFormat()

	payload := make([]byte, 2*format.BytesPerFrame()+10)
	payload[format.BytesPerFrame()] = 0x7f
	backend := &fakeRecorderPCM{stream: &fakeStream{}, payload: payload}

	s, err := NewWithRecorder(ctx, audio.NewRecorder(backend), format)
	require.NoError(t, err)
	require.Equal(t, format.SampleRate, backend.sampleRate)
	require.Equal(t, format.Channels, backend.channels)
	require.Equal(t, audio.PCMFormatS16LE, backend.pcmFormat)

	// the recording outlives the cancellation of the constructor's context
	cancelFn()
	require.NoError(t, backend.ctx.Err())

	f, err := s.ReadFrame(context.Background())
	require.NoError(t, err)
	require.Len(t, f.Data, format.BytesPerFrame())
	require.Zero(t, f.Timestamp)

	f, err = s.ReadFrame(context.Background())
	require.NoError(t, err)
	require.Equal(t, byte(0x7f), f.Data[0])
	require.Equal(t, format.FrameDuration, f.Timestamp)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.Equal(t, 1, backend.stream.closed)

	_, err = s.ReadFrame(context.Background())
	require.ErrorIs(t, err, framesource.ErrClosed{})
}

func TestNewWithRecorderFailure(t *testing.T) {
	backend := &fakeRecorderPCM{err: errors.New("no such device")}
	_, err := NewWithRecorder(context.Background(), audio.NewRecorder(backend), frame.DefaultFormat())
	var errDevice framesource.ErrDeviceUnavailable
	require.True(t, errors.As(err, &errDevice), "%v", err)
	require.Contains(t, errDevice.Device, "fakeRecorderPCM")
}
