package latency

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is a random source safe for concurrent use. Shops and latency models
// share one instead of a package-level generator, so a fixed seed makes a
// whole run reproducible.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand creates a Rand seeded with seed.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))} // #nosec G404 -- simulation only, crypto rand not needed
}

// NewTimeSeeded creates a Rand seeded from the wall clock.
func NewTimeSeeded() *Rand {
	return NewRand(time.Now().UnixNano())
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}

// IntN returns a pseudo-random number in [0, n). It panics if n <= 0.
func (r *Rand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Intn(n)
}

// Int63n returns a pseudo-random number in [0, n). It panics if n <= 0.
func (r *Rand) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Int63n(n)
}
