package framesource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
)

func TestChunker(t *testing.T) {
	ctx := context.Background()
	format := frame.FormatFromBlocksPerSecond(8000, 100) // 160 bytes per frame
	q := NewQueue()
	c := NewChunker(q, format)

	payload := make([]byte, 500)
	for i := range payload {
		payload[i] = byte(i)
	}

	n, err := c.Write(payload[:100])
	require.NoError(t, err)
	require.Equal(t, 100, n)
	require.Zero(t, q.Len())

	n, err = c.Write(payload[100:])
	require.NoError(t, err)
	require.Equal(t, 400, n)
	require.Equal(t, 3, q.Len())
	require.Equal(t, uint64(3), c.Frames())
	require.Equal(t, 20, c.Leftover())

	for i := 0; i < 3; i++ {
		f, err := q.Pop(ctx)
		require.NoError(t, err)
		require.Equal(t, payload[i*160:(i+1)*160], f.Data)
		require.Equal(t, time.Duration(i)*10*time.Millisecond, f.Timestamp)
	}
}

func TestChunkerClosedQueue(t *testing.T) {
	q := NewQueue()
	q.Close()
	c := NewChunker(q, frame.DefaultFormat())
	_, err := c.Write(make([]byte, 640))
	require.ErrorIs(t, err, ErrClosed{})
}

func TestChunkerInvalidFormat(t *testing.T) {
	c := NewChunker(NewQueue(), frame.Format{})
	_, err := c.Write([]byte{1, 2})
	require.Error(t, err)
}
