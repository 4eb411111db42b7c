package main

import (
	"bytes"
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/vadsplit/pkg/dataset"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
	"github.com/xaionaro-go/vadsplit/pkg/segmenter"
	"github.com/xaionaro-go/vadsplit/pkg/utterance"
)

type fakeSession struct {
	u      *utterance.Utterance
	closed *int
}

func (s *fakeSession) Next(context.Context) (*utterance.Utterance, error) {
	if s.u == nil {
		return nil, framesource.ErrClosed{}
	}
	return s.u, nil
}

func (s *fakeSession) Close() error {
	*s.closed++
	return nil
}

func newTestRecorder(
	t *testing.T,
	ds *dataset.Dataset,
	prompts []string,
	answers string,
	sessions int,
) (*datasetRecorder, *bytes.Buffer, *int) {
	format := frame.DefaultFormat()
	var (
		out    bytes.Buffer
		opened int
		closed int
		clock  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	)
	r := &datasetRecorder{
		Dataset:  ds,
		Prompts:  prompts,
		Prompter: dataset.NewPrompter(strings.NewReader(answers), &out),
		Out:      &out,
		Format:   format,
		NewSession: func(context.Context) (session, error) {
			opened++
			if opened > sessions {
				return &fakeSession{closed: &closed}, nil
			}
			return &fakeSession{
				u: &utterance.Utterance{
					Audio:      make([]byte, opened*format.BytesPerFrame()),
					FrameCount: opened,
				},
				closed: &closed,
			}, nil
		},
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
	return r, &out, &closed
}

func TestDatasetRecorder(t *testing.T) {
	ctx := context.Background()
	ds, err := dataset.Open(ctx, t.TempDir())
	require.NoError(t, err)

	r, out, closed := newTestRecorder(t, ds, []string{"first line", "second line"}, "n\n\ny\n", 10)
	require.NoError(t, r.Run(ctx))
	require.Equal(t, 2, ds.Progress())
	require.Equal(t, 3, *closed)
	require.Contains(t, out.String(), `Please say: "first line"`)
	require.Contains(t, out.String(), "Finished creating dataset!")

	content, err := os.ReadFile(ds.IndexPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	// the rejected first take had a single frame
	require.True(t, strings.HasSuffix(lines[1], ","+strconv.Itoa(44+2*640)+",first line"), lines[1])
	require.True(t, strings.HasSuffix(lines[2], ","+strconv.Itoa(44+3*640)+",second line"), lines[2])
}

func TestDatasetRecorderResumes(t *testing.T) {
	ctx := context.Background()
	ds, err := dataset.Open(ctx, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, ds.Append("/done.wav", 1000, "first line"))

	r, out, _ := newTestRecorder(t, ds, []string{"first line", "second line"}, "y\n", 10)
	require.NoError(t, r.Run(ctx))
	require.Equal(t, 2, ds.Progress())
	require.NotContains(t, out.String(), `"first line"`)
}

func TestDatasetRecorderInputExhausted(t *testing.T) {
	ctx := context.Background()
	ds, err := dataset.Open(ctx, t.TempDir())
	require.NoError(t, err)

	r, out, _ := newTestRecorder(t, ds, []string{"a", "b", "c"}, "y\n", 1)
	require.NoError(t, r.Run(ctx))
	require.Equal(t, 1, ds.Progress())
	require.Contains(t, out.String(), "exhausted")
	require.NotContains(t, out.String(), "Finished creating dataset!")
}

// interruptedEvents yields a few frames of an utterance and then behaves as
// if the user pressed ctrl-C.
type interruptedEvents struct {
	format   frame.Format
	frames   int
	cancelFn context.CancelFunc
	sent     int
}

func (e *interruptedEvents) Next(ctx context.Context) (segmenter.Event, error) {
	if e.sent >= e.frames {
		e.cancelFn()
		return segmenter.Event{}, ctx.Err()
	}
	f := frame.Frame{
		Data:      make([]byte, e.format.BytesPerFrame()),
		Timestamp: time.Duration(e.sent) * e.format.FrameDuration,
	}
	e.sent++
	return segmenter.FrameEvent(f), nil
}

type collectorSession struct {
	*utterance.Collector
}

func (collectorSession) Close() error {
	return nil
}

func TestDatasetRecorderInterrupted(t *testing.T) {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()
	ds, err := dataset.Open(ctx, t.TempDir())
	require.NoError(t, err)

	r, out, _ := newTestRecorder(t, ds, []string{"first line"}, "\n", 10)
	r.NewSession = func(context.Context) (session, error) {
		events := &interruptedEvents{format: r.Format, frames: 5, cancelFn: cancelFn}
		return collectorSession{utterance.NewCollector(events, r.Format)}, nil
	}

	require.NoError(t, r.Run(ctx))
	require.Equal(t, 0, ds.Progress())
	require.NotContains(t, out.String(), "Finished utterance")
	require.NotContains(t, out.String(), "Are you happy")
	require.NotContains(t, out.String(), "Finished creating dataset!")
}

func TestDatasetRecorderIncompleteTake(t *testing.T) {
	ctx := context.Background()
	ds, err := dataset.Open(ctx, t.TempDir())
	require.NoError(t, err)

	r, out, _ := newTestRecorder(t, ds, []string{"first line"}, "\n", 10)
	r.NewSession = func(context.Context) (session, error) {
		return &fakeSession{
			u: &utterance.Utterance{
				Audio:      make([]byte, r.Format.BytesPerFrame()),
				FrameCount: 1,
				Incomplete: true,
			},
			closed: new(int),
		}, nil
	}

	require.NoError(t, r.Run(ctx))
	require.Equal(t, 0, ds.Progress())
	require.Contains(t, out.String(), "exhausted")
	require.NotContains(t, out.String(), "Finished utterance")
}
