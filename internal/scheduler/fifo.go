package scheduler

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrQueueClosed = errors.New("queue is closed")
)

// Task is a unit of work executed by a worker. The context is the worker's
// context and is cancelled when the owning pool is shut down forcefully.
type Task func(ctx context.Context)

// Queue is an unbounded first-in first-out task queue shared by every
// worker of a pool. Enqueue never blocks, so submitters are never held up by
// busy workers; tasks simply wait their turn.
type Queue struct {
	mu     sync.Mutex
	items  []Task
	closed bool

	// Notification channel for data (BUFFERED, NEVER CLOSED)
	notifyC chan struct{}

	// Notification channel for shutdown (UNBUFFERED, CLOSED ON SHUTDOWN)
	closeC chan struct{}
}

// NewQueue creates an empty FIFO queue.
func NewQueue() *Queue {
	return &Queue{
		notifyC: make(chan struct{}, 1),
		closeC:  make(chan struct{}),
	}
}

// Enqueue appends a task to the tail of the queue.
// Returns ErrQueueClosed once Close or Drain has been called.
func (q *Queue) Enqueue(t Task) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.items = append(q.items, t)
	q.mu.Unlock()

	q.notify()
	return nil
}

// Dequeue removes and returns the task at the head of the queue, blocking
// until one is available.
// Returns ErrQueueClosed if the queue is closed and empty, or the context
// error if ctx is done first.
func (q *Queue) Dequeue(ctx context.Context) (Task, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			t := q.pop()
			more := len(q.items) > 0
			q.mu.Unlock()

			// A single buffered notification can wake only one waiter, so the
			// worker that consumed it hands it on while work remains.
			if more {
				q.notify()
			}
			return t, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.closeC:
		case <-q.notifyC:
		}
	}
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue as closed. Tasks already queued remain available to
// Dequeue; new tasks are rejected.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closeLocked()
}

// Drain closes the queue and removes every task still waiting in it.
func (q *Queue) Drain() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closeLocked()
	drained := q.items
	q.items = nil
	return drained
}

func (q *Queue) closeLocked() {
	if !q.closed {
		q.closed = true
		close(q.closeC)
	}
}

func (q *Queue) pop() Task {
	t := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return t
}

func (q *Queue) notify() {
	select {
	case q.notifyC <- struct{}{}:
	default:
	}
}
