package future

import (
	"context"
	"fmt"
)

// Executor runs tasks, possibly concurrently. Implementations must not block
// the caller of Execute waiting for the task to finish.
//
// The context passed to a task is cancelled when the executor is forcibly
// stopped; tasks that wait should honour it.
type Executor interface {
	Execute(task func(ctx context.Context)) error
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(task func(ctx context.Context)) error

func (fn ExecutorFunc) Execute(task func(ctx context.Context)) error {
	return fn(task)
}

type inlineExecutor struct{}

func (inlineExecutor) Execute(task func(ctx context.Context)) error {
	task(context.Background())
	return nil
}

// Inline runs every task synchronously on the submitting goroutine.
var Inline Executor = inlineExecutor{}

// Submit schedules fn on ex and returns a future for its result.
//
// The future fails when:
//   - ex rejects the task (for example a pool that has been shut down)
//   - the task's context is already done when it is picked up (ErrNotStarted)
//   - fn returns an error or panics (ErrPanic)
//
// Example:
//
//	f := future.Submit(p, func(ctx context.Context) (string, error) {
//	    return s.GetQuote(ctx, "myPhone")
//	})
func Submit[T any](ex Executor, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()

	err := ex.Execute(func(ctx context.Context) {
		if err := ctx.Err(); err != nil {
			f.fail(fmt.Errorf("%w: %w", ErrNotStarted, err))
			return
		}
		f.complete(protect(func() (T, error) { return fn(ctx) }))
	})
	if err != nil {
		f.fail(err)
	}

	return f
}
