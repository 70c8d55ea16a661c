// Package money holds the supported currencies, their exchange rates
// against USD, and a latent rate lookup service.
package money

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/utkarsh5026/bestprice/latency"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidRate     = errors.New("exchange rate must be positive")
	ErrInvalidPrice    = errors.New("price must be a finite number")
)

// Currency is a currency a price can be converted into.
type Currency int

const (
	USD Currency = iota
	EUR
)

type currencyInfo struct {
	code string
	rate float64
}

var currencies = [...]currencyInfo{
	USD: {code: "USD", rate: 1.0},
	EUR: {code: "EUR", rate: 1.16},
}

// Currencies returns every supported currency.
func Currencies() []Currency {
	return []Currency{USD, EUR}
}

func (c Currency) Valid() bool {
	return c >= USD && c <= EUR
}

// String returns the ISO code.
func (c Currency) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Currency(%d)", int(c))
	}
	return currencies[c].code
}

// Rate returns the value of one unit of c in USD.
func (c Currency) Rate() float64 {
	if !c.Valid() {
		return 0
	}
	return currencies[c].rate
}

// ParseCurrency resolves an ISO code, ignoring case and surrounding spaces.
func ParseCurrency(s string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for i, info := range currencies {
		if info.code == code {
			return Currency(i), nil
		}
	}
	return USD, fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
}

// Round2 rounds v half away from zero to two decimal places.
// NaN and ±Inf are returned unchanged.
func Round2(v float64) float64 {
	if !finite(v) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Convert expresses a USD price in the currency with the given rate,
// rounded to two decimals. The signature fits future.Zip directly.
func Convert(price, rate float64) (float64, error) {
	if !finite(price) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	if !finite(rate) || rate <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return Round2(decimal.NewFromFloat(price).Div(decimal.NewFromFloat(rate)).InexactFloat64()), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Service looks up exchange rates, paying a latency on each call.
type Service struct {
	latency latency.Model
}

// NewService creates a rate service. A nil model means no delay.
func NewService(model latency.Model) *Service {
	if model == nil {
		model = latency.None()
	}
	return &Service{latency: model}
}

// LookupRate waits on the service latency and returns c's rate.
// An interrupted wait returns an error matching latency.ErrInterrupted.
func (s *Service) LookupRate(ctx context.Context, c Currency) (float64, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrUnknownCurrency, c)
	}
	if err := s.latency.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate lookup for %v: %w", c, err)
	}
	return c.Rate(), nil
}
