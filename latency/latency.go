package latency

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrInterrupted = errors.New("latent wait interrupted")
)

// DefaultUnit is the base delay of a simulated remote call.
const DefaultUnit = time.Second

// Model is a latency model: Wait blocks for the simulated duration of one call.
type Model interface {
	Wait(ctx context.Context) error
}

// Func adapts a plain function to a Model.
type Func func(ctx context.Context) error

// Wait calls f(ctx).
func (f Func) Wait(ctx context.Context) error { return f(ctx) }

// Sleep blocks for d or until ctx is done, whichever comes first.
// A non-positive d only checks ctx.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return interrupted(err)
		}
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return interrupted(ctx.Err())
	}
}

func interrupted(cause error) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, cause)
}

// RandomRange returns the bounds of the randomized delay for a given unit:
// [unit/2, unit*5/2). With the default unit that is [500ms, 2500ms).
func RandomRange(unit time.Duration) (min, max time.Duration) {
	return unit / 2, unit * 5 / 2
}

type none struct{}

// None returns a model with no delay.
func None() Model { return none{} }

func (none) Wait(ctx context.Context) error { return Sleep(ctx, 0) }

type fixed struct {
	d time.Duration
}

// Fixed returns a model that always waits d.
func Fixed(d time.Duration) Model { return fixed{d: d} }

func (f fixed) Wait(ctx context.Context) error { return Sleep(ctx, f.d) }

type uniform struct {
	min, max time.Duration
	rng      *Rand
}

// Uniform returns a model whose delay is drawn uniformly from [min, max)
// on every call. If max <= min it always waits min. A nil rng is replaced
// by a time-seeded one.
func Uniform(min, max time.Duration, rng *Rand) Model {
	if rng == nil {
		rng = NewTimeSeeded()
	}
	return &uniform{min: min, max: max, rng: rng}
}

func (u *uniform) Wait(ctx context.Context) error {
	return Sleep(ctx, u.next())
}

func (u *uniform) next() time.Duration {
	spread := u.max - u.min
	if spread <= 0 {
		return u.min
	}
	return u.min + time.Duration(u.rng.Int63n(int64(spread)))
}

type script struct {
	mu     sync.Mutex
	delays []time.Duration
	next   int
}

// Script returns a model that waits delays[0] on the first call, delays[1]
// on the second, and so on. The last delay repeats once the script runs out;
// an empty script does not wait.
func Script(delays ...time.Duration) Model {
	return &script{delays: delays}
}

func (s *script) Wait(ctx context.Context) error {
	s.mu.Lock()
	var d time.Duration
	if len(s.delays) > 0 {
		d = s.delays[min(s.next, len(s.delays)-1)]
		s.next++
	}
	s.mu.Unlock()

	return Sleep(ctx, d)
}
