package framesource

import (
	"context"
	"sync"

	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/xsync"
)

// Queue is an unbounded FIFO of frames with a single producer and a single
// consumer. Push never blocks; Pop blocks until a frame is available, the
// context is cancelled or the queue is closed.
type Queue struct {
	locker xsync.Mutex
	items  []frame.Frame
	head   int
	closed bool

	notifyCh  chan struct{}
	closeOnce sync.Once
	closedCh  chan struct{}
}

func NewQueue() *Queue {
	return &Queue{
		notifyCh: make(chan struct{}, 1),
		closedCh: make(chan struct{}),
	}
}

// Push appends the frame to the queue. It returns false if the queue is
// already closed, in which case the frame is discarded.
func (q *Queue) Push(f frame.Frame) bool {
	ctx := xsync.WithNoLogging(context.Background(), true)
	ok := xsync.DoR1(ctx, &q.locker, func() bool {
		if q.closed {
			return false
		}
		q.items = append(q.items, f)
		return true
	})
	if !ok {
		return false
	}
	select {
	case q.notifyCh <- struct{}{}:
	default:
	}
	return true
}

// Pop removes and returns the oldest frame. Frames pushed before Close are
// still returned after Close; once they are drained Pop returns ErrClosed.
func (q *Queue) Pop(ctx context.Context) (frame.Frame, error) {
	for {
		f, ok, closed := q.tryPop(ctx)
		if ok {
			return f, nil
		}
		if closed {
			return frame.Frame{}, ErrClosed{}
		}

		select {
		case <-ctx.Done():
			return frame.Frame{}, ctx.Err()
		case <-q.notifyCh:
		case <-q.closedCh:
		}
	}
}

func (q *Queue) tryPop(ctx context.Context) (result frame.Frame, ok bool, closed bool) {
	q.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		if q.head >= len(q.items) {
			closed = q.closed
			return
		}
		result = q.items[q.head]
		q.items[q.head] = frame.Frame{}
		q.head++
		ok = true

		if q.head == len(q.items) {
			q.items = q.items[:0]
			q.head = 0
			return
		}
		if q.head > cap(q.items)/2 {
			n := copy(q.items, q.items[q.head:])
			q.items = q.items[:n]
			q.head = 0
		}
	})
	return
}

// Len returns the amount of queued frames.
func (q *Queue) Len() int {
	ctx := xsync.WithNoLogging(context.Background(), true)
	return xsync.DoR1(ctx, &q.locker, func() int {
		return len(q.items) - q.head
	})
}

// Close stops accepting frames and wakes up a blocked Pop. It is safe to
// call Close multiple times and from any goroutine.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.locker.Do(xsync.WithNoLogging(context.Background(), true), func() {
			q.closed = true
		})
		close(q.closedCh)
	})
}

// IsClosed reports whether Close was called.
func (q *Queue) IsClosed() bool {
	select {
	case <-q.closedCh:
		return true
	default:
		return false
	}
}
