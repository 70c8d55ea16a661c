// Package shop simulates an online shop whose price lookups are slow.
// Every lookup pays a latency before answering, which is what makes running
// them concurrently worthwhile.
package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/utkarsh5026/bestprice/future"
	"github.com/utkarsh5026/bestprice/latency"
	"github.com/utkarsh5026/bestprice/money"
	"github.com/utkarsh5026/bestprice/quote"
)

var (
	ErrInvalidName    = errors.New("shop name must be non-empty and contain no ':'")
	ErrInvalidProduct = errors.New("product name needs at least two characters")
)

// Shop is a named price source. It is safe for concurrent use.
type Shop struct {
	name          string
	unit          time.Duration
	latency       latency.Model
	randomLatency latency.Model
	rng           *latency.Rand
	pricing       func(product string) (float64, error)
	pickCode      func() quote.DiscountCode
}

// New creates a shop. The name ends up in the quote wire format, so it may
// not contain the field separator.
//
// Example:
//
//	s, err := shop.New("BestPrice", shop.WithTimeUnit(100*time.Millisecond))
func New(name string, opts ...Option) (*Shop, error) {
	if name == "" || strings.Contains(name, ":") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	s := &Shop{
		name: name,
		unit: latency.DefaultUnit,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		s.rng = latency.NewTimeSeeded()
	}
	if s.latency == nil {
		s.latency = latency.Fixed(s.unit)
	}
	if s.randomLatency == nil {
		lo, hi := latency.RandomRange(s.unit)
		s.randomLatency = latency.Uniform(lo, hi, s.rng)
	}
	if s.pricing == nil {
		s.pricing = s.defaultPrice
	}
	if s.pickCode == nil {
		s.pickCode = s.randomCode
	}

	return s, nil
}

// MustNew is like New but panics on an invalid name.
func MustNew(name string, opts ...Option) *Shop {
	s, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the shop name.
func (s *Shop) Name() string {
	return s.name
}

// defaultPrice is rand*product[0] + product[1], using the byte values of the
// first two characters.
func (s *Shop) defaultPrice(product string) (float64, error) {
	if len(product) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidProduct, product)
	}
	return s.rng.Float64()*float64(product[0]) + float64(product[1]), nil
}

func (s *Shop) randomCode() quote.DiscountCode {
	codes := quote.DiscountCodes()
	return codes[s.rng.IntN(len(codes))]
}

func (s *Shop) calculate(ctx context.Context, delay latency.Model, product string) (float64, error) {
	if err := delay.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", s.name, err)
	}
	return s.pricing(product)
}

// CalculatePrice waits the fixed delay and returns the unrounded price.
func (s *Shop) CalculatePrice(ctx context.Context, product string) (float64, error) {
	return s.calculate(ctx, s.latency, product)
}

// CalculatePriceWithRandomDelay waits a random delay and returns the unrounded price.
func (s *Shop) CalculatePriceWithRandomDelay(ctx context.Context, product string) (float64, error) {
	return s.calculate(ctx, s.randomLatency, product)
}

// GetPrice returns the price rounded to two decimals.
func (s *Shop) GetPrice(ctx context.Context, product string) (float64, error) {
	price, err := s.CalculatePrice(ctx, product)
	if err != nil {
		return 0, err
	}
	return money.Round2(price), nil
}

// GetQuote returns a wire-encoded quote such as "BestPrice:123.26:GOLD".
func (s *Shop) GetQuote(ctx context.Context, product string) (string, error) {
	price, err := s.CalculatePrice(ctx, product)
	if err != nil {
		return "", err
	}
	return s.encode(price), nil
}

// GetQuoteWithRandomDelay is GetQuote with a random delay.
func (s *Shop) GetQuoteWithRandomDelay(ctx context.Context, product string) (string, error) {
	price, err := s.CalculatePriceWithRandomDelay(ctx, product)
	if err != nil {
		return "", err
	}
	return s.encode(price), nil
}

func (s *Shop) encode(price float64) string {
	return quote.Encode(quote.Quote{Shop: s.name, Price: price, Code: s.pickCode()})
}

// GetPriceAsync starts CalculatePrice on ex and returns immediately.
func (s *Shop) GetPriceAsync(ex future.Executor, product string) *future.Future[float64] {
	return future.Submit(ex, func(ctx context.Context) (float64, error) {
		return s.CalculatePrice(ctx, product)
	})
}

// GetPriceInCurrencyAsync fetches the USD price and the exchange rate as two
// independent tasks on ex and combines them into the price in currency.
//
// On an executor with a single worker the two lookups run one after the
// other; with two or more they overlap.
func (s *Shop) GetPriceInCurrencyAsync(ex future.Executor, rates *money.Service, currency money.Currency, product string) *future.Future[float64] {
	price := future.Submit(ex, func(ctx context.Context) (float64, error) {
		return s.GetPrice(ctx, product)
	})
	rate := future.Submit(ex, func(ctx context.Context) (float64, error) {
		return rates.LookupRate(ctx, currency)
	})

	return future.Zip(price, rate, money.Convert)
}
