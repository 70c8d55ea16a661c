// Package pool provides a bounded worker pool that executes submitted tasks
// in FIFO order. A *WorkerPool is a future.Executor, so it is the value handed
// to future.Submit and to every pipeline that needs somewhere to run.
//
// The number of workers is fixed at construction and clamped to [1, 100]
// (see EffectiveSize). Submission never blocks: tasks wait in an unbounded
// queue until a worker is free.
//
// # Basic Usage
//
//	p := pool.New(len(shops), pool.WithName("shops"))
//	defer p.Shutdown(5 * time.Second)
//
//	f := future.Submit(p, func(ctx context.Context) (string, error) {
//	    return s.GetQuote(ctx, "myPhone")
//	})
//
// A small shared pool sized from GOMAXPROCS is available through NewCommon.
// It is an ordinary value; construct it once and pass it where it is needed.
//
// # Rate Limiting
//
// Throttle task starts to avoid overwhelming downstream services:
//
//	p := pool.New(10, pool.WithRateLimit(5.0, 10)) // 5 tasks/sec, burst of 10
//
// # Shutdown
//
// Shutdown stops accepting tasks and lets the workers drain what is queued.
// ShutdownNow additionally cancels the context handed to running tasks, so
// latent waits are interrupted, and fails every queued task without running
// its body.
//
// Workers are plain goroutines. A pool that is never shut down does not keep
// the process alive.
//
// # Panics
//
// A panicking task never kills its worker. The panic is recovered, logged
// and counted; futures built with future.Submit see it as future.ErrPanic.
//
// # Metrics
//
// With WithMeterProvider the pool records OpenTelemetry instruments:
//
//   - bestprice.pool.tasks.submitted
//   - bestprice.pool.tasks.completed (attribute outcome)
//   - bestprice.pool.task.duration (seconds)
//   - bestprice.pool.queue.depth
//
// Every measurement carries the pool.name attribute.
package pool
