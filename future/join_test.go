package future

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAwaitAll(t *testing.T) {
	t.Run("preserves input order", func(t *testing.T) {
		delays := []time.Duration{60, 10, 30}
		fs := make([]*Future[int], len(delays))
		for i, d := range delays {
			fs[i] = Submit(goExecutor, func(ctx context.Context) (int, error) {
				time.Sleep(d * time.Millisecond)
				return i, nil
			})
		}

		values, err := AwaitAll(fs...).Get()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, v := range values {
			if v != i {
				t.Errorf("position %d: expected %d, got %d", i, i, v)
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		f := AwaitAll[int]()
		values, err, ready := f.TryGet()
		if !ready {
			t.Fatal("expected immediate completion")
		}
		if err != nil || len(values) != 0 {
			t.Errorf("expected empty result, got (%v, %v)", values, err)
		}
	})

	t.Run("pending until last input", func(t *testing.T) {
		gate := newFuture[int]()
		all := AwaitAll(Completed(1), gate, Completed(3))

		if all.IsReady() {
			t.Fatal("completed while an input was still pending")
		}

		gate.complete(2, nil)

		values, err := all.GetWithTimeout(time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(values) != 3 || values[1] != 2 {
			t.Errorf("unexpected values %v", values)
		}
	})

	t.Run("failure waits for every input", func(t *testing.T) {
		errFirst := errors.New("first")
		gate := newFuture[int]()
		all := AwaitAll(Failed[int](errFirst), gate)

		if all.IsReady() {
			t.Fatal("failed before every input completed")
		}

		errLast := errors.New("last")
		gate.fail(errLast)

		err := all.Wait()
		var agg *AggregateError
		if !errors.As(err, &agg) {
			t.Fatalf("expected *AggregateError, got %v", err)
		}
		if len(agg.Errors) != 2 || agg.Total != 2 {
			t.Errorf("expected 2 of 2 failures, got %d of %d", len(agg.Errors), agg.Total)
		}
		if agg.Errors[0].Index != 0 || agg.Errors[1].Index != 1 {
			t.Errorf("failures not ordered by index: %+v", agg.Errors)
		}
		if !errors.Is(err, errFirst) || !errors.Is(err, errLast) {
			t.Error("aggregate should unwrap to every underlying error")
		}
	})
}

func TestSettle(t *testing.T) {
	boom := errors.New("boom")
	results, err := Settle(Completed("a"), Failed[string](boom), nil).Get()

	if err != nil {
		t.Fatalf("Settle should never fail, got %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Value != "a" || results[0].Error != nil || results[0].Index != 0 {
		t.Errorf("unexpected result 0: %+v", results[0])
	}
	if !errors.Is(results[1].Error, boom) || results[1].Index != 1 {
		t.Errorf("unexpected result 1: %+v", results[1])
	}
	if !errors.Is(results[2].Error, ErrNilFuture) {
		t.Errorf("expected ErrNilFuture for nil input, got %v", results[2].Error)
	}
}

func TestAggregateError_Message(t *testing.T) {
	err := &AggregateError{
		Total: 3,
		Errors: []IndexedError{
			{Index: 1, Err: errors.New("bad quote")},
		},
	}

	want := "1 of 3 futures failed; future 1: bad quote"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
