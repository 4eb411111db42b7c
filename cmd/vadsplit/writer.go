package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
	"github.com/xaionaro-go/vadsplit/pkg/utterance"
)

type utteranceSource interface {
	Next(ctx context.Context) (*utterance.Utterance, error)
}

// utteranceWriter writes every utterance to its own WAV file.
type utteranceWriter struct {
	dir    string
	format frame.Format
	out    io.Writer
	count  int
}

func newUtteranceWriter(dir string, format frame.Format, out io.Writer) *utteranceWriter {
	return &utteranceWriter{
		dir:    dir,
		format: format,
		out:    out,
	}
}

// Run writes the utterances until the source is exhausted or the context
// is cancelled.
func (w *utteranceWriter) Run(ctx context.Context, src utteranceSource) error {
	for {
		u, err := src.Next(ctx)
		switch {
		case err == nil:
		case errors.Is(err, framesource.ErrClosed{}):
			logger.Infof(ctx, "the audio source is exhausted")
			return nil
		case ctx.Err() != nil:
			return nil
		default:
			return err
		}

		path, err := w.write(u)
		if err != nil {
			return err
		}
		fmt.Fprintf(w.out, "%s\t%v\t%v\n", path, u.Start, u.Duration)
	}
}

func (w *utteranceWriter) write(u *utterance.Utterance) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("utterance_%d.wav", w.count))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create '%s': %w", path, err)
	}
	if err := utterance.WriteWAV(f, u, w.format); err != nil {
		f.Close()
		return "", fmt.Errorf("unable to write '%s': %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("unable to close '%s': %w", path, err)
	}
	w.count++
	return path, nil
}
