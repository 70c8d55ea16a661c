package benchmarks

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/utkarsh5026/bestprice/discount"
	"github.com/utkarsh5026/bestprice/finder"
	"github.com/utkarsh5026/bestprice/future"
	"github.com/utkarsh5026/bestprice/latency"
	"github.com/utkarsh5026/bestprice/pool"
	"github.com/utkarsh5026/bestprice/quote"
)

// =============================================================================
// Pool Throughput
// =============================================================================

func BenchmarkPool_ExecuteWorkerScaling(b *testing.B) {
	for _, size := range poolSizes {
		b.Run(fmt.Sprintf("workers=%d", size), func(b *testing.B) {
			p := pool.New(size)
			defer p.ShutdownNow()

			var wg sync.WaitGroup
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				wg.Add(1)
				if err := p.Execute(func(context.Context) { wg.Done() }); err != nil {
					b.Fatal(err)
				}
			}
			wg.Wait()
		})
	}
}

func BenchmarkPool_RateLimited(b *testing.B) {
	p := pool.New(4, pool.WithRateLimit(1e6, 1000))
	defer p.ShutdownNow()

	var wg sync.WaitGroup
	b.ResetTimer()

	for range b.N {
		wg.Add(1)
		_ = p.Execute(func(context.Context) { wg.Done() })
	}
	wg.Wait()
}

// =============================================================================
// Future Combinators
// =============================================================================

func BenchmarkFuture_SubmitGetCPUBound(b *testing.B) {
	for _, size := range poolSizes {
		b.Run(fmt.Sprintf("workers=%d", size), func(b *testing.B) {
			p := pool.New(size)
			defer p.ShutdownNow()

			work := cpuBoundWork(1000)
			fs := make([]*future.Future[int], b.N)
			b.ResetTimer()

			for i := range fs {
				fs[i] = future.Submit(p, work)
			}
			if err := future.AwaitAll(fs...).Wait(); err != nil {
				b.Fatal(err)
			}
		})
	}
}

func BenchmarkFuture_MapChainInline(b *testing.B) {
	b.ReportAllocs()

	for range b.N {
		raw := future.Completed("Shop:10.00:GOLD")
		parsed := future.Map(raw, quote.Parse)
		priced := future.Chain(parsed, func(q quote.Quote) *future.Future[float64] {
			return future.Completed(discount.Apply(q.Price, q.Code))
		})
		if _, err := priced.Get(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFuture_AwaitAll(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("inputs=%d", n), func(b *testing.B) {
			b.ReportAllocs()

			for range b.N {
				fs := make([]*future.Future[int], n)
				for i := range fs {
					fs[i] = future.Completed(i)
				}
				if _, err := future.AwaitAll(fs...).Get(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// =============================================================================
// Price Pipelines
// =============================================================================

func BenchmarkPipeline_FindPricesWithDiscount(b *testing.B) {
	const shopCount = 16
	shops := finder.Shops(benchShops(shopCount, time.Millisecond)...)
	f := finder.New(shops, finder.WithDiscounts(discount.NewService(latency.Fixed(time.Millisecond))))

	for _, size := range poolSizes {
		b.Run(fmt.Sprintf("workers=%d", size), func(b *testing.B) {
			p := pool.New(size)
			defer p.ShutdownNow()
			b.ResetTimer()

			for range b.N {
				if _, err := f.FindPricesWithDiscount(p, "myPhone"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPipeline_ReactLatencyDistribution(b *testing.B) {
	const shopCount = 32
	shops := finder.Shops(benchShops(shopCount, time.Millisecond)...)
	f := finder.New(shops, finder.WithDiscounts(discount.NewService(latency.None())))

	p := pool.New(shopCount)
	defer p.ShutdownNow()

	var mu sync.Mutex
	var latencies []time.Duration
	b.ResetTimer()

	for range b.N {
		start := time.Now()
		_, err := f.ReactPricesWithDiscount(p, "myPhone", finder.Reaction{
			OnPrice: func(string, string) {
				mu.Lock()
				latencies = append(latencies, time.Since(start))
				mu.Unlock()
			},
		}).Get()
		if err != nil {
			b.Fatal(err)
		}
	}

	b.StopTimer()

	if len(latencies) > 0 {
		b.ReportMetric(float64(percentile(latencies, 0.50).Nanoseconds()), "p50_ns")
		b.ReportMetric(float64(percentile(latencies, 0.95).Nanoseconds()), "p95_ns")
		b.ReportMetric(float64(percentile(latencies, 0.99).Nanoseconds()), "p99_ns")
	}
}

// =============================================================================
// Comparison
// =============================================================================

func BenchmarkComparison_Sequential(b *testing.B) {
	work := ioBoundWork(time.Millisecond)

	for range b.N {
		for range 16 {
			_, _ = work(context.Background())
		}
	}
}

func BenchmarkComparison_WorkerPool(b *testing.B) {
	work := ioBoundWork(time.Millisecond)
	p := pool.New(16)
	defer p.ShutdownNow()
	b.ResetTimer()

	for range b.N {
		fs := make([]*future.Future[int], 16)
		for i := range fs {
			fs[i] = future.Submit(p, work)
		}
		_ = future.AwaitAll(fs...).Wait()
	}
}
