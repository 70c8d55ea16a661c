package future

import "sync/atomic"

// Map returns a future for fn applied to f's value. If f fails, fn is
// skipped and the result fails with the same error. If fn returns an error
// or panics, the result fails with it.
//
// fn runs on the goroutine that completes f.
func Map[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	out := newFuture[U]()

	f.onComplete(func() {
		if f.err != nil {
			out.fail(f.err)
			return
		}
		out.complete(protect(func() (U, error) { return fn(f.value) }))
	})

	return out
}

// Chain starts a dependent asynchronous computation once f succeeds and
// returns a future that completes with the outcome of that computation.
// Nothing blocks while the inner future is pending.
func Chain[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	out := newFuture[U]()

	f.onComplete(func() {
		if f.err != nil {
			out.fail(f.err)
			return
		}

		inner, err := protect(func() (*Future[U], error) { return fn(f.value), nil })
		if err != nil {
			out.fail(err)
			return
		}
		if inner == nil {
			out.fail(ErrNilFuture)
			return
		}

		inner.onComplete(func() {
			out.complete(inner.value, inner.err)
		})
	})

	return out
}

// Zip waits for two independently running futures and merges their values
// with combine. If either input fails the result fails; when both fail, a's
// error is reported.
func Zip[T, U, V any](a *Future[T], b *Future[U], combine func(T, U) (V, error)) *Future[V] {
	out := newFuture[V]()

	var remaining atomic.Int32
	remaining.Store(2)

	finish := func() {
		if remaining.Add(-1) != 0 {
			return
		}
		switch {
		case a.err != nil:
			out.fail(a.err)
		case b.err != nil:
			out.fail(b.err)
		default:
			out.complete(protect(func() (V, error) { return combine(a.value, b.value) }))
		}
	}

	a.onComplete(finish)
	b.onComplete(finish)

	return out
}

// Subscribe runs fn with the value once f succeeds. The returned future
// signals that fn has run; it fails with f's error when f fails, in which
// case fn is not called.
func (f *Future[T]) Subscribe(fn func(T)) *Future[struct{}] {
	out := newFuture[struct{}]()

	f.onComplete(func() {
		if f.err != nil {
			out.fail(f.err)
			return
		}
		out.complete(protect(func() (struct{}, error) {
			fn(f.value)
			return struct{}{}, nil
		}))
	})

	return out
}

// WhenComplete runs fn with the outcome of f, success or failure. The
// returned future succeeds once fn has run, regardless of f's outcome; it
// fails only if fn panics.
func (f *Future[T]) WhenComplete(fn func(T, error)) *Future[struct{}] {
	out := newFuture[struct{}]()

	f.onComplete(func() {
		out.complete(protect(func() (struct{}, error) {
			fn(f.value, f.err)
			return struct{}{}, nil
		}))
	})

	return out
}
