// Package discount applies a quote's discount code to its price through a
// remote-looking service that pays a latency per call.
package discount

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/utkarsh5026/bestprice/latency"
	"github.com/utkarsh5026/bestprice/money"
	"github.com/utkarsh5026/bestprice/quote"
)

var hundred = decimal.NewFromInt(100)

// Apply returns price reduced by code's percentage, rounded to two decimals.
// A NaN or infinite price is returned unchanged.
func Apply(price float64, code quote.DiscountCode) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return price
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(code.Percentage())))
	discounted := decimal.NewFromFloat(price).Mul(factor).Div(hundred)
	return money.Round2(discounted.InexactFloat64())
}

// Line formats the result line shown to users, e.g. "BestPrice price is 27.00".
func Line(shop string, price float64) string {
	return fmt.Sprintf("%s price is %.2f", shop, price)
}

// Service applies discounts after a configurable delay.
type Service struct {
	latency latency.Model
}

// NewService creates a discount service. A nil model means no delay.
func NewService(model latency.Model) *Service {
	if model == nil {
		model = latency.None()
	}
	return &Service{latency: model}
}

// ApplyDiscount waits on the service latency and returns the discounted line
// for q. An interrupted wait returns an error matching latency.ErrInterrupted.
func (s *Service) ApplyDiscount(ctx context.Context, q quote.Quote) (string, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return "", fmt.Errorf("discount for %s: %w", q.Shop, err)
	}
	return Line(q.Shop, Apply(q.Price, q.Code)), nil
}
