package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// goExecutor starts every task on its own goroutine.
var goExecutor = ExecutorFunc(func(task func(ctx context.Context)) error {
	go task(context.Background())
	return nil
})

func TestFuture_Get(t *testing.T) {
	t.Run("successful result", func(t *testing.T) {
		f := newFuture[string]()

		go func() {
			time.Sleep(50 * time.Millisecond)
			f.complete("success", nil)
		}()

		value, err := f.Get()
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if value != "success" {
			t.Errorf("expected value 'success', got %v", value)
		}
	})

	t.Run("error result", func(t *testing.T) {
		f := newFuture[string]()
		expectedErr := errors.New("task failed")

		go f.fail(expectedErr)

		value, err := f.Get()
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if value != "" {
			t.Errorf("expected zero value, got %q", value)
		}
	})

	t.Run("repeated get returns the same outcome", func(t *testing.T) {
		f := Completed(7)

		for range 3 {
			v, err := f.Get()
			if v != 7 || err != nil {
				t.Errorf("expected (7, nil), got (%v, %v)", v, err)
			}
		}
	})

	t.Run("only first completion counts", func(t *testing.T) {
		f := newFuture[int]()
		f.complete(1, nil)
		f.complete(2, errors.New("late"))

		v, err := f.Get()
		if v != 1 || err != nil {
			t.Errorf("expected (1, nil), got (%v, %v)", v, err)
		}
	})
}

func TestFuture_Wait(t *testing.T) {
	expectedErr := errors.New("boom")

	if err := Failed[int](expectedErr).Wait(); !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
	if err := Completed("ok").Wait(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestFuture_GetWithContext(t *testing.T) {
	t.Run("result before deadline", func(t *testing.T) {
		f := newFuture[int]()
		go func() {
			time.Sleep(10 * time.Millisecond)
			f.complete(42, nil)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		v, err := f.GetWithContext(ctx)
		if err != nil || v != 42 {
			t.Errorf("expected (42, nil), got (%v, %v)", v, err)
		}
	})

	t.Run("context cancelled first", func(t *testing.T) {
		f := newFuture[int]()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		_, err := f.GetWithContext(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
		if f.IsReady() {
			t.Error("abandoning the wait must not complete the future")
		}
	})
}

func TestFuture_GetWithTimeout(t *testing.T) {
	f := newFuture[int]()

	if _, err := f.GetWithTimeout(20 * time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}

	f.complete(5, nil)
	if v, err := f.GetWithTimeout(time.Second); v != 5 || err != nil {
		t.Errorf("expected (5, nil), got (%v, %v)", v, err)
	}
}

func TestFuture_TryGet(t *testing.T) {
	f := newFuture[string]()

	if _, _, ready := f.TryGet(); ready {
		t.Error("expected not ready before completion")
	}

	f.complete("done", nil)

	v, err, ready := f.TryGet()
	if !ready {
		t.Fatal("expected ready after completion")
	}
	if v != "done" || err != nil {
		t.Errorf("expected (done, nil), got (%v, %v)", v, err)
	}
}

func TestFuture_Done(t *testing.T) {
	f := newFuture[int]()

	select {
	case <-f.Done():
		t.Fatal("done channel closed before completion")
	default:
	}

	go f.complete(1, nil)

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("done channel not closed after completion")
	}
}

func TestFuture_IsReady(t *testing.T) {
	f := newFuture[int]()
	if f.IsReady() {
		t.Error("expected not ready")
	}
	f.fail(errors.New("x"))
	if !f.IsReady() {
		t.Error("expected ready after failure")
	}
}

func TestFuture_ConcurrentAccess(t *testing.T) {
	f := newFuture[int]()
	var wg sync.WaitGroup

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.Get()
			if v != 99 || err != nil {
				t.Errorf("expected (99, nil), got (%v, %v)", v, err)
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	f.complete(99, nil)
	wg.Wait()
}

func TestSubmit(t *testing.T) {
	t.Run("value from executor", func(t *testing.T) {
		f := Submit(goExecutor, func(ctx context.Context) (int, error) {
			return 21 * 2, nil
		})

		if v, err := f.Get(); v != 42 || err != nil {
			t.Errorf("expected (42, nil), got (%v, %v)", v, err)
		}
	})

	t.Run("inline runs on caller", func(t *testing.T) {
		f := Submit(Inline, func(ctx context.Context) (string, error) {
			return "now", nil
		})

		if !f.IsReady() {
			t.Error("inline submission should complete before Submit returns")
		}
	})

	t.Run("task error", func(t *testing.T) {
		expectedErr := errors.New("shop offline")
		f := Submit(Inline, func(ctx context.Context) (int, error) {
			return 0, expectedErr
		})

		if err := f.Wait(); !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
	})

	t.Run("panic becomes ErrPanic", func(t *testing.T) {
		f := Submit(Inline, func(ctx context.Context) (int, error) {
			panic("kaboom")
		})

		if err := f.Wait(); !errors.Is(err, ErrPanic) {
			t.Errorf("expected ErrPanic, got %v", err)
		}
	})

	t.Run("rejected by executor", func(t *testing.T) {
		rejected := errors.New("closed")
		ex := ExecutorFunc(func(func(ctx context.Context)) error { return rejected })

		f := Submit(ex, func(ctx context.Context) (int, error) {
			t.Error("task should never run")
			return 0, nil
		})

		if err := f.Wait(); !errors.Is(err, rejected) {
			t.Errorf("expected %v, got %v", rejected, err)
		}
	})

	t.Run("cancelled before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ex := ExecutorFunc(func(task func(ctx context.Context)) error {
			task(ctx)
			return nil
		})

		f := Submit(ex, func(ctx context.Context) (int, error) {
			t.Error("task should not start on a cancelled context")
			return 0, nil
		})

		err := f.Wait()
		if !errors.Is(err, ErrNotStarted) {
			t.Errorf("expected ErrNotStarted, got %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected error to wrap context.Canceled, got %v", err)
		}
	})
}
