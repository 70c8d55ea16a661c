package scheduler

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/time/rate"
)

// Outcome classifies how a task execution ended.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomePanic
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomePanic:
		return "panic"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// WorkerConfig holds the per-pool execution settings shared by all workers.
type WorkerConfig struct {
	// Optional token bucket rate limiter applied before each task start (may be nil).
	RateLimiter *rate.Limiter

	// Hook called before a task starts.
	BeforeTaskStart func(workerID int)

	// Hook called after a task ends with its outcome and wall time.
	OnTaskEnd func(workerID int, outcome Outcome, elapsed time.Duration)

	// Hook called when a task panics. The worker survives.
	OnPanic func(workerID int, recovered any, stack []byte)

	// Optional per-worker setup run when the worker starts (thread affinity).
	// The returned cleanup runs when the worker exits.
	Setup func(workerID int) (cleanup func())
}

// Run is the worker event loop. It takes tasks from q in FIFO order and
// executes them until the queue is closed and empty (returns nil) or ctx is
// done (returns the context error).
func Run(ctx context.Context, workerID int, q *Queue, conf *WorkerConfig) error {
	if conf.Setup != nil {
		cleanup := conf.Setup(workerID)
		defer cleanup()
	}

	for {
		t, err := q.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) {
				return nil
			}
			return err
		}
		executeTask(ctx, workerID, t, conf)
	}
}

// executeTask encapsulates the common logic for executing a task with hooks,
// rate limiting and panic recovery.
//
// A rate limiter wait that fails because ctx ended still runs the task, so the
// task observes the cancelled context and can fail whatever is waiting on it.
func executeTask(ctx context.Context, workerID int, t Task, conf *WorkerConfig) {
	if conf.RateLimiter != nil {
		_ = conf.RateLimiter.Wait(ctx)
	}

	if conf.BeforeTaskStart != nil {
		conf.BeforeTaskStart(workerID)
	}

	start := time.Now()
	outcome := processWithRecovery(ctx, workerID, t, conf)
	if outcome == OutcomeOK && ctx.Err() != nil {
		outcome = OutcomeCancelled
	}

	if conf.OnTaskEnd != nil {
		conf.OnTaskEnd(workerID, outcome, time.Since(start))
	}
}

// processWithRecovery executes a task with panic recovery.
// If a panic occurs it is reported through OnPanic instead of crashing the worker.
func processWithRecovery(ctx context.Context, workerID int, t Task, conf *WorkerConfig) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			if conf.OnPanic != nil {
				conf.OnPanic(workerID, r, buf[:n])
			}
			outcome = OutcomePanic
		}
	}()

	t(ctx)
	return OutcomeOK
}

// Discard runs tasks that were removed from a queue without being started.
// The caller passes an already-cancelled ctx so each task can fail whatever
// waits on it. Panics are recovered and every task ends as OutcomeCancelled.
func Discard(ctx context.Context, tasks []Task, conf *WorkerConfig) {
	for _, t := range tasks {
		start := time.Now()
		_ = processWithRecovery(ctx, -1, t, conf)
		if conf.OnTaskEnd != nil {
			conf.OnTaskEnd(-1, OutcomeCancelled, time.Since(start))
		}
	}
}
