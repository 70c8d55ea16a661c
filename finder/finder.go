// Package finder queries every shop for a product concurrently and gathers
// the answers, optionally passing each quote through the discount service.
//
// Every operation builds one non-blocking pipeline per shop on the given
// executor. The fetch, parse and discount stages of one shop run in order;
// different shops proceed independently, and a failing shop never affects
// the others.
package finder

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/utkarsh5026/bestprice/discount"
	"github.com/utkarsh5026/bestprice/future"
	"github.com/utkarsh5026/bestprice/latency"
	"github.com/utkarsh5026/bestprice/money"
	"github.com/utkarsh5026/bestprice/quote"
	"github.com/utkarsh5026/bestprice/shop"
)

// Source is a shop as seen by the finder. *shop.Shop implements it.
type Source interface {
	Name() string
	GetPrice(ctx context.Context, product string) (float64, error)
	GetQuote(ctx context.Context, product string) (string, error)
	GetQuoteWithRandomDelay(ctx context.Context, product string) (string, error)
}

// Shops converts concrete shops into sources.
func Shops(shops ...*shop.Shop) []Source {
	sources := make([]Source, len(shops))
	for i, s := range shops {
		sources[i] = s
	}
	return sources
}

// Finder fans a product lookup out to a fixed list of sources.
type Finder struct {
	sources    []Source
	discounts  *discount.Service
	discountEx future.Executor
	logger     zerolog.Logger
	tracer     trace.Tracer
}

const tracerName = "github.com/utkarsh5026/bestprice/finder"

// New creates a finder over sources, which are queried in the given order.
func New(sources []Source, opts ...Option) *Finder {
	f := &Finder{
		sources:   sources,
		discounts: discount.NewService(latency.Fixed(latency.DefaultUnit)),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.tracer == nil {
		f.tracer = otel.GetTracerProvider().Tracer(tracerName)
	}
	return f
}

// Sources returns the number of sources queried per batch.
func (f *Finder) Sources() int {
	return len(f.sources)
}

type batch struct {
	id     string
	start  time.Time
	logger zerolog.Logger
	span   trace.Span
}

func (f *Finder) newBatch(op, product string) *batch {
	id := uuid.NewString()
	_, span := f.tracer.Start(context.Background(), "finder."+op,
		trace.WithAttributes(
			attribute.String("batch.id", id),
			attribute.String("product", product),
			attribute.Int("shops", len(f.sources)),
		),
	)
	b := &batch{
		id:    id,
		start: time.Now(),
		logger: f.logger.With().
			Str("batch", id).
			Str("op", op).
			Str("product", product).
			Logger(),
		span: span,
	}
	b.logger.Debug().Int("shops", len(f.sources)).Msg("batch started")
	return b
}

func (b *batch) failed(shop string, err error) {
	b.logger.Warn().Err(err).Str("shop", shop).Msg("shop failed")
	b.span.RecordError(err, trace.WithAttributes(attribute.String("shop", shop)))
}

func (b *batch) finish(msg string, succeeded, failed int) {
	b.logger.Info().
		Int("succeeded", succeeded).
		Int("failed", failed).
		Dur("elapsed", time.Since(b.start)).
		Msg(msg)

	b.span.SetAttributes(
		attribute.Int("shops.succeeded", succeeded),
		attribute.Int("shops.failed", failed),
	)
	if failed > 0 {
		b.span.SetStatus(codes.Error, "some shops failed")
	}
	b.span.End()
}

// FindPrices asks every source for its rounded price and returns lines of
// the form "<shop> price is <price>" in source order.
//
// A failed source leaves "" at its index and is listed in the returned
// *BatchError; the other lines are still returned.
func (f *Finder) FindPrices(ex future.Executor, product string) ([]string, error) {
	b := f.newBatch("find_prices", product)

	fs := make([]*future.Future[string], len(f.sources))
	for i, s := range f.sources {
		fs[i] = future.Submit(ex, func(ctx context.Context) (string, error) {
			price, err := s.GetPrice(ctx, product)
			if err != nil {
				return "", err
			}
			return discount.Line(s.Name(), price), nil
		})
	}

	return f.collect(b, fs)
}

// FindPricesWithDiscount runs fetch quote -> parse -> apply discount for
// every source and returns the discounted lines in source order. Failures
// are reported as in FindPrices.
func (f *Finder) FindPricesWithDiscount(ex future.Executor, product string) ([]string, error) {
	b := f.newBatch("find_prices_with_discount", product)

	fs := make([]*future.Future[string], len(f.sources))
	for i, s := range f.sources {
		fs[i] = f.discountPipeline(ex, product, s.GetQuote)
	}

	return f.collect(b, fs)
}

// discountPipeline composes the three stages for one source without
// blocking. The discount stage is a fresh task so its delay occupies a
// worker of its own executor rather than the goroutine that parsed.
func (f *Finder) discountPipeline(
	ex future.Executor,
	product string,
	fetch func(ctx context.Context, product string) (string, error),
) *future.Future[string] {
	discountEx := f.discountEx
	if discountEx == nil {
		discountEx = ex
	}

	raw := future.Submit(ex, func(ctx context.Context) (string, error) {
		return fetch(ctx, product)
	})
	parsed := future.Map(raw, quote.Parse)

	return future.Chain(parsed, func(q quote.Quote) *future.Future[string] {
		return future.Submit(discountEx, func(ctx context.Context) (string, error) {
			return f.discounts.ApplyDiscount(ctx, q)
		})
	})
}

// collect waits for every future and separates lines from failures.
func (f *Finder) collect(b *batch, fs []*future.Future[string]) ([]string, error) {
	results, _ := future.Settle(fs...).Get()

	lines := make([]string, len(results))
	var failures []SourceError
	for i, r := range results {
		if r.Error != nil {
			name := f.sources[i].Name()
			failures = append(failures, SourceError{Index: i, Shop: name, Err: r.Error})
			b.failed(name, r.Error)
			continue
		}
		lines[i] = r.Value
	}

	b.finish("batch complete", len(results)-len(failures), len(failures))

	if len(failures) > 0 {
		return lines, &BatchError{BatchID: b.id, Total: len(results), Failures: failures}
	}
	return lines, nil
}

// StreamPricesWithDiscount yields one pending discount pipeline per source,
// paired with the source name. It is lazy: a source is only queried when
// the iteration reaches it, using the random-delay quote.
//
// Start the whole sequence before waiting on any element, or the lookups
// will not overlap.
func (f *Finder) StreamPricesWithDiscount(ex future.Executor, product string) iter.Seq2[string, *future.Future[string]] {
	return func(yield func(string, *future.Future[string]) bool) {
		for _, s := range f.sources {
			if !yield(s.Name(), f.discountPipeline(ex, product, s.GetQuoteWithRandomDelay)) {
				return
			}
		}
	}
}

// Reaction receives each shop's outcome as soon as it is known.
// Calls are serialized and happen in completion order.
type Reaction struct {
	OnPrice func(shop, line string)
	OnError func(shop string, err error)
}

// Report lists shops by outcome, in completion order.
type Report struct {
	Succeeded []string
	Failed    []string
}

// ReactPricesWithDiscount starts every stream pipeline, reports each result
// through r as it arrives, and returns a future that completes once all
// shops have answered. A shop that fails is reported to OnError and does
// not cut the wait short for the others.
func (f *Finder) ReactPricesWithDiscount(ex future.Executor, product string, r Reaction) *future.Future[Report] {
	b := f.newBatch("react_prices_with_discount", product)

	var mu sync.Mutex
	var report Report

	var subscriptions []*future.Future[struct{}]
	for name, pipeline := range f.StreamPricesWithDiscount(ex, product) {
		subscriptions = append(subscriptions, pipeline.WhenComplete(func(line string, err error) {
			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				report.Failed = append(report.Failed, name)
				b.failed(name, err)
				if r.OnError != nil {
					r.OnError(name, err)
				}
				return
			}

			report.Succeeded = append(report.Succeeded, name)
			if r.OnPrice != nil {
				r.OnPrice(name, line)
			}
		}))
	}

	return future.Map(future.AwaitAll(subscriptions...), func([]struct{}) (Report, error) {
		mu.Lock()
		defer mu.Unlock()

		b.finish("all shops responded", len(report.Succeeded), len(report.Failed))
		return report, nil
	})
}

// PriceInCurrency returns s's price converted into currency, fetching the
// price and the exchange rate as two independent tasks on ex.
func PriceInCurrency(ex future.Executor, s *shop.Shop, rates *money.Service, currency money.Currency, product string) *future.Future[float64] {
	return s.GetPriceInCurrencyAsync(ex, rates, currency, product)
}
