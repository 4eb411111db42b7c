package portaudio

import (
	"fmt"
	"strings"

	"github.com/gordonklaus/portaudio"
)

// Device describes an audio input device.
type Device struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// InputDevices lists the devices which can capture audio.
func InputDevices() (_ []Device, _err error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("unable to initialize PortAudio: %w", err)
	}
	defer func() {
		if err := portaudio.Terminate(); err != nil && _err == nil {
			_err = fmt.Errorf("unable to terminate PortAudio: %w", err)
		}
	}()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("unable to list devices: %w", err)
	}
	defaultDev, _ := portaudio.DefaultInputDevice()

	var result []Device
	for _, dev := range devices {
		if dev.MaxInputChannels < 1 {
			continue
		}
		result = append(result, Device{
			Name:              dev.Name,
			MaxInputChannels:  dev.MaxInputChannels,
			DefaultSampleRate: dev.DefaultSampleRate,
			IsDefault:         defaultDev != nil && dev.Name == defaultDev.Name,
		})
	}
	return result, nil
}

func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("unable to list devices: %w", err)
	}
	for _, dev := range devices {
		if dev.MaxInputChannels < 1 {
			continue
		}
		if containsFold(dev.Name, name) {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("no input device matches '%s'", name)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
