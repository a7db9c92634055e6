package event

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Push once the consumer has closed the queue, and by
// Pop once a closed queue has been drained.
var ErrClosed = errors.New("event queue closed")

// Queue is an unbounded multi-producer, single-consumer FIFO of events.
//
// Push never blocks and never drops. Events pushed by a single goroutine are
// popped in the order they were pushed; no order is promised between
// different producers beyond arrival time.
type Queue struct {
	mu     sync.Mutex
	items  []Event
	head   int
	closed bool
	// signal holds at most one pending wakeup for the consumer.
	signal chan struct{}
}

// NewQueue creates an empty, open queue.
func NewQueue() *Queue {
	return &Queue{signal: make(chan struct{}, 1)}
}

// Push appends ev. It returns ErrClosed after Close.
func (q *Queue) Push(ev Event) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, ev)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return nil
}

// Pop blocks until an event is available, the queue is closed and drained, or
// ctx is done.
func (q *Queue) Pop(ctx context.Context) (Event, error) {
	for {
		ev, ok, err := q.take()
		if ok || err != nil {
			return ev, err
		}

		select {
		case <-q.signal:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// TryPop returns the next event without blocking.
func (q *Queue) TryPop() (Event, bool) {
	ev, ok, _ := q.take()
	return ev, ok
}

func (q *Queue) take() (Event, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head < len(q.items) {
		ev := q.items[q.head]
		q.items[q.head] = nil
		q.head++
		if q.head == len(q.items) {
			q.items = q.items[:0]
			q.head = 0
		}
		return ev, true, nil
	}
	if q.closed {
		return nil, false, ErrClosed
	}
	return nil, false, nil
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Close stops accepting events and wakes a blocked consumer. Events already
// queued are still returned by Pop. Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
