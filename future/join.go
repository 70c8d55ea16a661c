package future

import "sync/atomic"

// Result holds the outcome of one future in a Settle join.
type Result[T any] struct {
	Value T
	Error error
	Index int
}

// Settle waits for every input future and returns their outcomes in input
// order. The returned future never fails; a nil input is reported as
// ErrNilFuture at its index. An empty input completes immediately with an
// empty slice.
func Settle[T any](fs ...*Future[T]) *Future[[]Result[T]] {
	out := newFuture[[]Result[T]]()
	results := make([]Result[T], len(fs))

	if len(fs) == 0 {
		out.complete(results, nil)
		return out
	}

	var remaining atomic.Int64
	remaining.Store(int64(len(fs)))

	finish := func() {
		if remaining.Add(-1) == 0 {
			out.complete(results, nil)
		}
	}

	for i, f := range fs {
		if f == nil {
			results[i] = Result[T]{Error: ErrNilFuture, Index: i}
			finish()
			continue
		}
		f.onComplete(func() {
			results[i] = Result[T]{Value: f.value, Error: f.err, Index: i}
			finish()
		})
	}

	return out
}

// AwaitAll returns a future for the values of all inputs, in input order.
// It completes only after every input has completed. If any input failed it
// fails with an *AggregateError listing every failure by index.
//
// Example:
//
//	all := future.AwaitAll(prices...)
//	values, err := all.Get()
//	var agg *future.AggregateError
//	if errors.As(err, &agg) {
//	    // agg.Errors[i].Index identifies each failed input
//	}
func AwaitAll[T any](fs ...*Future[T]) *Future[[]T] {
	return Map(Settle(fs...), func(results []Result[T]) ([]T, error) {
		values := make([]T, len(results))
		var failures []IndexedError

		for i, r := range results {
			if r.Error != nil {
				failures = append(failures, IndexedError{Index: i, Err: r.Error})
				continue
			}
			values[i] = r.Value
		}

		if len(failures) > 0 {
			return nil, &AggregateError{Errors: failures, Total: len(results)}
		}
		return values, nil
	})
}
