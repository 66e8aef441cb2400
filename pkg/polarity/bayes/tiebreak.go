package bayes

import (
	"math/rand"
	"sync"
)

// TieBreaker decides the label when both class scores are equal.
type TieBreaker interface {
	Break() Label
}

// TieBreakerFunc adapts a plain function to TieBreaker.
type TieBreakerFunc func() Label

// Break calls f.
func (f TieBreakerFunc) Break() Label { return f() }

// Deterministic always predicts Positive on a tie.
type Deterministic struct{}

// Break returns Positive.
func (Deterministic) Break() Label { return Positive }

// Random predicts Positive with probability 0.5 using an injected source.
type Random struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRandom creates a randomized tie-breaker. The source is owned by the
// tie-breaker from then on.
func NewRandom(src *rand.Rand) *Random {
	return &Random{src: src}
}

// Break flips a fair coin.
func (r *Random) Break() Label {
	r.mu.Lock()
	u := r.src.Float64()
	r.mu.Unlock()

	if u >= 0.5 {
		return Positive
	}
	return Negative
}

// TieBreakerName returns the config name of a tie-breaker: "positive",
// "random", or "custom".
func TieBreakerName(tb TieBreaker) string {
	switch tb.(type) {
	case nil, Deterministic, *Deterministic:
		return "positive"
	case *Random:
		return "random"
	default:
		return "custom"
	}
}
