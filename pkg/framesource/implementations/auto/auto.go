// Package auto opens a frame source by kind.
package auto

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
	"github.com/xaionaro-go/vadsplit/pkg/framesource/implementations/portaudio"
	"github.com/xaionaro-go/vadsplit/pkg/framesource/implementations/reader"
	"github.com/xaionaro-go/vadsplit/pkg/framesource/implementations/recorder"
)

type Kind string

const (
	KindPortAudio = Kind("portaudio")
	KindRecorder  = Kind("recorder")
	KindFile      = Kind("file")
)

func (k Kind) String() string {
	return string(k)
}

func (k *Kind) Set(s string) error {
	switch v := Kind(strings.ToLower(strings.TrimSpace(s))); v {
	case KindPortAudio, KindRecorder, KindFile:
		*k = v
		return nil
	default:
		return fmt.Errorf("unknown audio source '%s'", s)
	}
}

func (k Kind) Type() string {
	return "audio-source"
}

type Params struct {
	Device    string
	InputFile string
	RealTime  bool

	// Stdin is read if InputFile is "-".
	Stdin io.Reader
}

// New opens the source of the given kind.
func New(
	ctx context.Context,
	kind Kind,
	format frame.Format,
	params Params,
) (framesource.Source, error) {
	logger.Debugf(ctx, "audio source: %s; format: %s", kind, format)
	switch kind {
	case KindPortAudio, "":
		s, err := portaudio.New(ctx, format, portaudio.OptionDeviceName(params.Device))
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindRecorder:
		s, err := recorder.New(ctx, format)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindFile:
		var (
			input io.Reader
			file  *os.File
		)
		switch params.InputFile {
		case "":
			return nil, fmt.Errorf("the input file is not set")
		case "-":
			input = params.Stdin
			if input == nil {
				input = os.Stdin
			}
		default:
			f, err := os.Open(params.InputFile)
			if err != nil {
				return nil, fmt.Errorf("unable to open '%s': %w", params.InputFile, err)
			}
			input, file = f, f
		}
		s, err := reader.New(ctx, input, format, reader.OptionRealTime(params.RealTime))
		if err != nil {
			if file != nil {
				file.Close()
			}
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown audio source '%s'", kind)
	}
}
