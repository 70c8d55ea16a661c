// Package latency provides the simulated delays that stand in for calls to
// external services.
//
// Every latent operation in this module waits on a Model before computing its
// result. Models are injected rather than hard-coded, so production wiring can
// use real sleeps while tests run with no delay or with scripted, deterministic
// delays:
//
//	shop.New("BestPrice", shop.WithLatency(latency.Fixed(time.Second)))
//	shop.New("BestPrice", shop.WithLatency(latency.None()))
//	latency.Uniform(500*time.Millisecond, 2500*time.Millisecond, latency.NewRand(42))
//
// A wait that is cut short by its context fails with ErrInterrupted. The error
// also wraps the context's error, so both errors.Is(err, ErrInterrupted) and
// errors.Is(err, context.Canceled) hold.
package latency
