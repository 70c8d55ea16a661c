package future

import (
	"context"
	"sync"
	"time"
)

// Future represents a value of type T that becomes available asynchronously.
// It is completed exactly once, with either a value or an error.
//
// Reading the outcome is safe from any number of goroutines and returns the
// same result every time. A pipeline stage that composes a future should be
// treated as its only consumer.
type Future[T any] struct {
	mu        sync.Mutex
	completed bool
	value     T
	err       error
	callbacks []func()
	done      chan struct{}
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Completed returns a future already completed with v.
func Completed[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.complete(v, nil)
	return f
}

// Failed returns a future already failed with err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	f.fail(err)
	return f
}

// complete records the outcome and runs every registered continuation on
// the calling goroutine. Only the first call has any effect.
func (f *Future[T]) complete(v T, err error) {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return
	}
	f.value, f.err = v, err
	f.completed = true
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

func (f *Future[T]) fail(err error) {
	var zero T
	f.complete(zero, err)
}

// onComplete registers cb to run once f completes. If f is already complete,
// cb runs immediately on the caller.
func (f *Future[T]) onComplete(cb func()) {
	f.mu.Lock()
	if !f.completed {
		f.callbacks = append(f.callbacks, cb)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	cb()
}

// Get blocks until the future completes and returns its value and error.
// The error is exactly the one produced by the failing stage.
//
// Example:
//
//	price, err := future.Get()
//	if err != nil {
//	    return err
//	}
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// Wait blocks until the future completes and returns only its error.
func (f *Future[T]) Wait() error {
	<-f.done
	return f.err
}

// GetWithContext waits for the result or for ctx to be done, whichever comes
// first. Giving up on the wait does not affect the underlying computation.
//
// Returns:
//   - value, error: The outcome if the future completed first
//   - zero, ctx.Err(): If ctx was done first
func (f *Future[T]) GetWithContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// GetWithTimeout waits up to timeout for the result.
// Returns ErrTimeout if the future has not completed in time.
func (f *Future[T]) GetWithTimeout(timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}

// TryGet returns the outcome without blocking. ready reports whether the
// future has completed; value and err are meaningful only when it has.
func (f *Future[T]) TryGet() (value T, err error, ready bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Done returns a channel that is closed when the future completes.
// Useful in select statements.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsReady reports whether the future has completed.
func (f *Future[T]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
