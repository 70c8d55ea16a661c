// Package future provides an asynchronous value, Future[T], and the
// combinators used to build non-blocking pipelines from many of them.
//
// A Future is produced by scheduling a function on an Executor (typically a
// *pool.WorkerPool) and completes exactly once with a value or an error.
//
// # Basic Usage
//
//	p := pool.New(4)
//	f := future.Submit(p, func(ctx context.Context) (float64, error) {
//	    return shop.GetPrice(ctx, "myPhone")
//	})
//	price, err := f.Get() // blocks
//
// # Composition
//
// Composition never blocks the caller. Each operator registers a continuation
// on its input and returns a new Future immediately:
//
//   - Map: transform the value once it is available (may fail)
//   - Chain: start another asynchronous computation from the value and
//     complete when that one completes
//   - Zip: combine two independently running futures
//   - Subscribe / WhenComplete: react to completion with a side effect
//   - AwaitAll / Settle: join many futures, preserving input order
//
// For example, a quote that is fetched, parsed and then discounted:
//
//	raw := future.Submit(p, fetchQuote)
//	parsed := future.Map(raw, quote.Parse)
//	priced := future.Chain(parsed, func(q quote.Quote) *future.Future[string] {
//	    return future.Submit(p, func(ctx context.Context) (string, error) {
//	        return discounts.ApplyDiscount(ctx, q)
//	    })
//	})
//
// Map, Subscribe, WhenComplete and the combine step of Zip run on whichever
// goroutine completes their input, or immediately on the caller if the input
// is already complete. Keep them cheap; anything that blocks belongs in Submit.
//
// # Error Handling
//
// A failure travels down the chain untouched: a failed input skips every
// downstream function and fails every derived future with the same error.
// Panics inside user functions are recovered and surface as ErrPanic.
// Nothing is retried.
//
// Blocking extraction (Get, Wait, GetWithContext, GetWithTimeout) is meant
// for program edges only.
package future
