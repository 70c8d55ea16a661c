package future

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	ErrPanic      = errors.New("future: function panicked")
	ErrTimeout    = errors.New("future: timed out waiting for result")
	ErrNilFuture  = errors.New("future: nil future")
	ErrNotStarted = errors.New("future: task cancelled before it started")
)

// IndexedError ties a failure to the position of its future in a join.
type IndexedError struct {
	Index int
	Err   error
}

func (e IndexedError) Error() string {
	return fmt.Sprintf("future %d: %v", e.Index, e.Err)
}

func (e IndexedError) Unwrap() error { return e.Err }

// AggregateError is returned by AwaitAll when one or more inputs failed.
// Errors are ordered by index.
type AggregateError struct {
	Errors []IndexedError
	Total  int
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d futures failed", len(e.Errors), e.Total)
	for _, ie := range e.Errors {
		b.WriteString("; ")
		b.WriteString(ie.Error())
	}
	return b.String()
}

// Unwrap exposes every underlying failure to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, ie := range e.Errors {
		errs[i] = ie
	}
	return errs
}

// protect calls fn, converting a panic into an ErrPanic error carrying the
// recovered value and stack trace.
func protect[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrPanic, r, buf[:n])
		}
	}()

	return fn()
}
