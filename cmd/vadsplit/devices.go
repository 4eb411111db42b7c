package main

import (
	"fmt"
	"io"

	"github.com/xaionaro-go/vadsplit/pkg/framesource/implementations/portaudio"
)

func listDevices(out io.Writer) error {
	devices, err := portaudio.InputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		mark := " "
		if dev.IsDefault {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s (channels: %d, sample rate: %.0f)\n", mark, dev.Name, dev.MaxInputChannels, dev.DefaultSampleRate)
	}
	return nil
}
