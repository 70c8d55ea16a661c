package pool

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/bestprice/internal/cpu"
	"github.com/utkarsh5026/bestprice/internal/scheduler"
)

// MaxWorkers is the upper bound on the number of workers in a pool.
const MaxWorkers = 100

// EffectiveSize returns the number of workers a pool created with the
// requested size actually runs: requested clamped to [1, MaxWorkers].
// Zero and negative requests yield a single worker.
func EffectiveSize(requested int) int {
	return min(max(requested, 1), MaxWorkers)
}

// WorkerPool is a fixed-size set of workers draining a shared FIFO queue.
// It is safe for concurrent use.
type WorkerPool struct {
	name     string
	size     int
	queue    *scheduler.Queue
	conf     *scheduler.WorkerConfig
	logger   zerolog.Logger
	metrics  *poolMetrics
	ctx      context.Context
	cancel   context.CancelFunc
	shutdown atomic.Bool
	done     chan struct{} // Closed when all workers have exited
}

// New creates a pool running EffectiveSize(requested) workers and starts
// them immediately.
//
// Example:
//
//	p := pool.New(len(shops), pool.WithName("shops"), pool.WithLogger(log))
//	defer p.Shutdown(5 * time.Second)
func New(requested int, opts ...WorkerPoolOption) *WorkerPool {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		name:   cfg.name,
		size:   EffectiveSize(requested),
		queue:  scheduler.NewQueue(),
		logger: cfg.logger.With().Str("pool", cfg.name).Logger(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	m, err := newPoolMetrics(cfg.meterProvider, cfg.name)
	if err != nil {
		wp.logger.Warn().Err(err).Msg("metrics disabled")
		m, _ = newPoolMetrics(noop.NewMeterProvider(), cfg.name)
	}
	wp.metrics = m
	wp.conf = wp.workerConfig(cfg)

	wp.start()
	return wp
}

// NewCommon creates the shared default pool, sized GOMAXPROCS-1 with a
// minimum of one worker, and named "common" unless overridden.
func NewCommon(opts ...WorkerPoolOption) *WorkerPool {
	size := max(runtime.GOMAXPROCS(0)-1, 1)
	return New(size, append([]WorkerPoolOption{WithName("common")}, opts...)...)
}

func (wp *WorkerPool) workerConfig(cfg *workerPoolConfig) *scheduler.WorkerConfig {
	wc := &scheduler.WorkerConfig{
		RateLimiter: cfg.rateLimiter,
		BeforeTaskStart: func(int) {
			wp.metrics.recordStart(context.Background())
		},
		OnTaskEnd: func(_ int, outcome scheduler.Outcome, elapsed time.Duration) {
			wp.metrics.recordEnd(context.Background(), outcome, elapsed)
		},
		OnPanic: func(workerID int, recovered any, stack []byte) {
			wp.logger.Error().
				Int("worker", workerID).
				Interface("panic", recovered).
				Bytes("stack", stack).
				Msg("task panicked")
		},
	}

	if cfg.pinWorkers {
		wc.Setup = func(workerID int) func() {
			release, err := cpu.Pin(workerID)
			if err != nil {
				wp.logger.Warn().Err(err).Int("worker", workerID).Msg("cpu pinning failed, running unpinned")
			}
			return release
		}
	}

	return wc
}

func (wp *WorkerPool) start() {
	var g errgroup.Group

	for i := range wp.size {
		g.Go(func() error {
			return scheduler.Run(wp.ctx, i, wp.queue, wp.conf)
		})
	}

	go func() {
		_ = g.Wait()
		close(wp.done)
	}()

	wp.logger.Debug().Int("workers", wp.size).Msg("worker pool started")
}

// Execute queues task for execution and returns without waiting.
// Tasks start in submission order. It returns ErrPoolClosed once Shutdown
// or ShutdownNow has been called.
func (wp *WorkerPool) Execute(task func(ctx context.Context)) error {
	if task == nil {
		return ErrNilTask
	}
	if wp.shutdown.Load() {
		return ErrPoolClosed
	}

	// Count before enqueueing so a worker's decrement never precedes it.
	wp.metrics.recordSubmit(context.Background())
	if err := wp.queue.Enqueue(task); err != nil {
		wp.metrics.recordStart(context.Background())
		return ErrPoolClosed
	}

	return nil
}

// Size returns the number of workers.
func (wp *WorkerPool) Size() int {
	return wp.size
}

// Pending returns the number of queued tasks not yet picked up by a worker.
func (wp *WorkerPool) Pending() int {
	return wp.queue.Len()
}

// Name returns the pool name.
func (wp *WorkerPool) Name() string {
	return wp.name
}

// Shutdown gracefully shuts down the pool.
// It stops accepting tasks and waits for the workers to finish everything
// already queued.
//
// Parameters:
//   - timeout: Maximum duration to wait for graceful shutdown (0 = wait forever)
//
// Returns:
//   - error: ErrPoolClosed if already shut down, ErrShutdownTimeout if the
//     queue did not drain in time (workers keep draining in the background)
//
// Example:
//
//	if err := p.Shutdown(5 * time.Second); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
func (wp *WorkerPool) Shutdown(timeout time.Duration) error {
	if !wp.shutdown.CompareAndSwap(false, true) {
		return ErrPoolClosed
	}

	wp.queue.Close()

	if err := waitUntil(wp.done, timeout); err != nil {
		wp.logger.Warn().Dur("timeout", timeout).Int("pending", wp.queue.Len()).Msg("shutdown timed out")
		return err
	}

	wp.cancel()
	wp.logger.Debug().Msg("worker pool stopped")
	return nil
}

// ShutdownNow stops the pool immediately. Running tasks see their context
// cancelled; queued tasks are run with that cancelled context on the calling
// goroutine so whatever waits on them fails instead of hanging.
//
// Returns the number of queued tasks that were discarded. Calling it again,
// or after Shutdown, only cancels running tasks.
func (wp *WorkerPool) ShutdownNow() int {
	wp.shutdown.Store(true)

	// Drain before cancelling so no worker picks up a queued task on its way out.
	discarded := wp.queue.Drain()
	wp.cancel()

	for range discarded {
		wp.metrics.recordStart(context.Background())
	}
	scheduler.Discard(wp.ctx, discarded, wp.conf)

	if len(discarded) > 0 {
		wp.logger.Debug().Int("discarded", len(discarded)).Msg("worker pool stopped, queued tasks discarded")
	}
	return len(discarded)
}

// Done returns a channel that is closed once every worker has exited.
func (wp *WorkerPool) Done() <-chan struct{} {
	return wp.done
}
