// Package benchmarks measures the pool, the future combinators and the
// price pipelines across pool sizes.
package benchmarks

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/utkarsh5026/bestprice/latency"
	"github.com/utkarsh5026/bestprice/quote"
	"github.com/utkarsh5026/bestprice/shop"
)

// poolSizes are the worker counts every scaling benchmark runs with.
var poolSizes = []int{1, 4, 16, 100}

// cpuBoundWork simulates a CPU-intensive operation
func cpuBoundWork(iterations int) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		result := 0
		for i := range iterations {
			result += i
		}
		return result, nil
	}
}

// ioBoundWork simulates an I/O operation with a delay
func ioBoundWork(delay time.Duration) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		if err := latency.Sleep(ctx, delay); err != nil {
			return 0, err
		}
		return 1, nil
	}
}

// benchShops returns n shops answering after delay with a constant price
// and alternating discount codes.
func benchShops(n int, delay time.Duration) []*shop.Shop {
	codes := quote.DiscountCodes()
	shops := make([]*shop.Shop, n)
	for i := range shops {
		code := codes[i%len(codes)]
		shops[i] = shop.MustNew(fmt.Sprintf("Shop%03d", i),
			shop.WithLatency(latency.Fixed(delay)),
			shop.WithRandomLatency(latency.Fixed(delay)),
			shop.WithRand(latency.NewRand(int64(i+1))),
			shop.WithCodePicker(func() quote.DiscountCode { return code }),
		)
	}
	return shops
}

func percentile(latencies []time.Duration, p float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}

	sorted := slices.Clone(latencies)
	slices.Sort(sorted)

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
