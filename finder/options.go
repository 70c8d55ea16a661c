package finder

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/utkarsh5026/bestprice/discount"
	"github.com/utkarsh5026/bestprice/future"
)

// Option configures a Finder.
type Option func(*Finder)

// WithDiscounts sets the discount service used by the discount pipelines.
// If not specified, a service with a one second delay is used.
func WithDiscounts(s *discount.Service) Option {
	return func(f *Finder) {
		if s != nil {
			f.discounts = s
		}
	}
}

// WithDiscountExecutor runs the discount stage on ex instead of the
// executor passed to each operation.
func WithDiscountExecutor(ex future.Executor) Option {
	return func(f *Finder) {
		f.discountEx = ex
	}
}

// WithLogger sets the logger for batch lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Finder) {
		f.logger = l
	}
}

// WithTracerProvider records one span per batch on tp.
// If not specified, the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(f *Finder) {
		if tp != nil {
			f.tracer = tp.Tracer(tracerName)
		}
	}
}
