package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/framesource"
	"github.com/xaionaro-go/vadsplit/pkg/utterance"
)

type closingUtterances struct {
	scriptedUtterances
	closed int
}

func (s *closingUtterances) Close() error {
	s.closed++
	return nil
}

func TestRunClosesSession(t *testing.T) {
	format := frame.DefaultFormat()

	for _, tc := range []struct {
		name   string
		err    error
		expErr bool
	}{
		{name: "exhausted", err: framesource.ErrClosed{}},
		{name: "failed", err: errors.New("device lost"), expErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			src := &closingUtterances{
				scriptedUtterances: scriptedUtterances{
					utterances: []*utterance.Utterance{
						{Audio: make([]byte, format.BytesPerFrame()), FrameCount: 1},
					},
					err: tc.err,
				},
			}
			w := newUtteranceWriter(t.TempDir(), format, &out)

			err := run(context.Background(), src, w, "", prometheus.NewRegistry())
			if tc.expErr {
				require.ErrorIs(t, err, tc.err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, 1, src.closed)
			require.Contains(t, out.String(), "utterance_0.wav")
		})
	}
}
