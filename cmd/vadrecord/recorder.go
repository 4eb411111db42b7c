package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/vadsplit/pkg/dataset"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
	"github.com/xaionaro-go/vadsplit/pkg/utterance"
)

type session interface {
	io.Closer
	Next(ctx context.Context) (*utterance.Utterance, error)
}

// datasetRecorder asks to read the prompts aloud one by one and adds the
// accepted recordings to the dataset.
type datasetRecorder struct {
	Dataset    *dataset.Dataset
	Prompts    []string
	Prompter   *dataset.Prompter
	Out        io.Writer
	Format     frame.Format
	NewSession func(ctx context.Context) (session, error)
	Now        func() time.Time
}

// Run continues from the first prompt not recorded yet.
func (r *datasetRecorder) Run(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Run")
	defer func() { logger.Debugf(ctx, "/Run: %v", _err) }()

	for index := r.Dataset.Progress(); index < len(r.Prompts); {
		prompt := r.Prompts[index]

		u, err := r.listen(ctx, prompt)
		if err != nil {
			if errors.Is(err, framesource.ErrClosed{}) {
				fmt.Fprintln(r.Out, "The audio input is exhausted.")
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			logger.Debugf(ctx, "interrupted, dropping the take of %v", u.Duration)
			return nil
		}
		if u.Incomplete {
			fmt.Fprintln(r.Out, "The audio input is exhausted.")
			return nil
		}
		fmt.Fprintln(r.Out, "Finished utterance")

		ok, err := r.Prompter.AskYesNo("Are you happy with that recording?", dataset.AnswerYes)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if _, err := r.Dataset.Record(ctx, u, r.Format, prompt, r.Now()); err != nil {
			return err
		}
		index++
	}
	fmt.Fprintln(r.Out, "Finished creating dataset!")
	return nil
}

// listen starts a new capture session, so that audio captured while the
// user was answering is never a part of the next recording.
func (r *datasetRecorder) listen(ctx context.Context, prompt string) (*utterance.Utterance, error) {
	s, err := r.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Errorf(ctx, "unable to close the capture session: %v", err)
		}
	}()

	fmt.Fprintln(r.Out, "Listening (ctrl-C to exit)...")
	fmt.Fprintf(r.Out, "Please say: %q\n", prompt)
	return s.Next(ctx)
}
