package shop

import (
	"time"

	"github.com/utkarsh5026/bestprice/latency"
	"github.com/utkarsh5026/bestprice/quote"
)

// Option configures a Shop.
type Option func(*Shop)

// WithTimeUnit scales both delays: the fixed delay becomes unit and the
// random delay is drawn from [unit/2, 5*unit/2).
// If not specified, the unit is latency.DefaultUnit (one second).
func WithTimeUnit(unit time.Duration) Option {
	return func(s *Shop) {
		if unit >= 0 {
			s.unit = unit
		}
	}
}

// WithLatency replaces the fixed delay paid by CalculatePrice and GetQuote.
func WithLatency(m latency.Model) Option {
	return func(s *Shop) {
		s.latency = m
	}
}

// WithRandomLatency replaces the delay paid by the *WithRandomDelay operations.
func WithRandomLatency(m latency.Model) Option {
	return func(s *Shop) {
		s.randomLatency = m
	}
}

// WithRand sets the random source used for prices, discount codes and the
// default random delay.
func WithRand(r *latency.Rand) Option {
	return func(s *Shop) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithPricing replaces the default pricing formula.
func WithPricing(fn func(product string) (float64, error)) Option {
	return func(s *Shop) {
		s.pricing = fn
	}
}

// WithCodePicker replaces the uniform random choice of discount code.
func WithCodePicker(fn func() quote.DiscountCode) Option {
	return func(s *Shop) {
		s.pickCode = fn
	}
}
