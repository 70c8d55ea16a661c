package pool

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

// WorkerPoolOption is a functional option for configuring the worker pool.
type WorkerPoolOption func(*workerPoolConfig)

type workerPoolConfig struct {
	name          string
	logger        zerolog.Logger
	rateLimiter   *rate.Limiter
	meterProvider metric.MeterProvider
	pinWorkers    bool
}

func defaultConfig() *workerPoolConfig {
	return &workerPoolConfig{
		name:          "pool",
		logger:        zerolog.Nop(),
		meterProvider: otel.GetMeterProvider(),
	}
}

// WithName sets the pool name used in logs and as the pool.name metric attribute.
func WithName(name string) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithLogger sets the logger for lifecycle events and recovered panics.
// If not specified, the pool logs nothing.
func WithLogger(l zerolog.Logger) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.logger = l
	}
}

// WithRateLimit sets a rate limiter for controlling task throughput.
// tasksPerSecond specifies the maximum number of task starts per second.
// burst specifies the maximum number of tasks that can start in a burst.
// If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for pool metrics.
// Defaults to the global provider, which is a no-op unless the program
// installs one.
func WithMeterProvider(mp metric.MeterProvider) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if mp != nil {
			cfg.meterProvider = mp
		}
	}
}

// WithThreadAffinity locks each worker goroutine to its own OS thread and,
// where the platform supports it, pins that thread to a CPU core
// (worker i on core i mod NumCPU).
func WithThreadAffinity() WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.pinWorkers = true
	}
}
