// Package portaudio implements a frame source capturing from a PortAudio
// input device.
//
// PortAudio invokes the stream callback on its own real-time thread; the
// callback only copies the samples into a new frame and enqueues it.
package portaudio

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/gordonklaus/portaudio"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
	"github.com/xaionaro-go/xcontext"
)

const defaultDeviceName = "default"

type Source struct {
	framesource.QueueSource

	ctx        context.Context
	deviceName string
	stream     *portaudio.Stream
	frameCount uint64
	closeOnce  sync.Once
}

var _ framesource.Source = (*Source)(nil)

// New opens the capture device and starts capturing. The returned error
// is ErrDeviceUnavailable if the device cannot be opened or started.
func New(
	ctx context.Context,
	format frame.Format,
	opts ...Option,
) (_ret *Source, _err error) {
	logger.Debugf(ctx, "New(ctx, %s)", format)
	defer func() { logger.Debugf(ctx, "/New(ctx, %s): %v", format, _err) }()

	if err := format.Validate(); err != nil {
		return nil, err
	}
	cfg := Options(opts).config()

	s := &Source{
		QueueSource: framesource.NewQueueSource(format),
		ctx:         xcontext.DetachDone(ctx),
		deviceName:  defaultDeviceName,
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, framesource.ErrDeviceUnavailable{Device: s.deviceName, Err: fmt.Errorf("unable to initialize PortAudio: %w", err)}
	}

	stream, err := s.openStream(format, cfg)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, framesource.ErrDeviceUnavailable{Device: s.deviceName, Err: err}
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, framesource.ErrDeviceUnavailable{Device: s.deviceName, Err: fmt.Errorf("unable to start the stream: %w", err)}
	}
	s.stream = stream

	logger.Infof(ctx, "started audio capture from '%s' (%s)", s.deviceName, format)
	return s, nil
}

func (s *Source) openStream(
	format frame.Format,
	cfg config,
) (*portaudio.Stream, error) {
	if cfg.DeviceName == "" {
		stream, err := portaudio.OpenDefaultStream(
			int(format.Channels),
			0,
			float64(format.SampleRate),
			format.SamplesPerFrame(),
			s.onAudio,
		)
		if err != nil {
			return nil, fmt.Errorf("unable to open the default input stream: %w", err)
		}
		return stream, nil
	}

	dev, err := findInputDevice(cfg.DeviceName)
	if err != nil {
		return nil, err
	}
	s.deviceName = dev.Name

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: int(format.Channels),
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(format.SampleRate),
		FramesPerBuffer: format.SamplesPerFrame(),
	}
	stream, err := portaudio.OpenStream(params, s.onAudio)
	if err != nil {
		return nil, fmt.Errorf("unable to open an input stream on '%s': %w", dev.Name, err)
	}
	return stream, nil
}

// onAudio is called by PortAudio for every captured buffer.
func (s *Source) onAudio(in []int16) {
	data := make([]byte, len(in)*2)
	for idx, sample := range in {
		binary.LittleEndian.PutUint16(data[idx*2:], uint16(sample))
	}
	f := frame.Frame{
		Data:      data,
		Timestamp: time.Duration(s.frameCount) * s.FrameFormat.FrameDuration,
	}
	s.frameCount++
	if !s.Queue.Push(f) {
		logger.Tracef(s.ctx, "the source is closed, discarding the frame at %v", f.Timestamp)
	}
}

// DeviceName returns the name of the device the source captures from.
func (s *Source) DeviceName() string {
	return s.deviceName
}

// Close stops the capture and releases the device. Readers blocked in
// ReadFrame are woken up. Teardown errors are logged, not returned.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		logger.Debugf(s.ctx, "Close")
		s.Queue.Close()

		var mErr *multierror.Error
		if err := s.stream.Stop(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("stream.Stop(): %w", err))
		}
		if err := s.stream.Close(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("stream.Close(): %w", err))
		}
		if err := portaudio.Terminate(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("portaudio.Terminate(): %w", err))
		}
		if err := mErr.ErrorOrNil(); err != nil {
			logger.Warnf(s.ctx, "unable to release the capture device '%s' cleanly: %v", s.deviceName, err)
		}
	})
	return nil
}
