package bayes

import (
	"fmt"
	"math"
	"strings"

	"github.com/cognicore/polarity/pkg/polarity/internalerr"
)

// UnseenPolicy controls how tokens absent from the vocabulary are scored.
type UnseenPolicy int

const (
	// UnseenSmooth includes unseen tokens with their smoothed probability.
	UnseenSmooth UnseenPolicy = iota
	// UnseenSkip ignores unseen tokens entirely.
	UnseenSkip
)

func (p UnseenPolicy) String() string {
	switch p {
	case UnseenSmooth:
		return "smooth"
	case UnseenSkip:
		return "skip"
	default:
		return fmt.Sprintf("UnseenPolicy(%d)", int(p))
	}
}

// ParseUnseenPolicy parses "smooth" or "skip". The empty string yields the default.
func ParseUnseenPolicy(s string) (UnseenPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "smooth":
		return UnseenSmooth, nil
	case "skip":
		return UnseenSkip, nil
	}
	return 0, fmt.Errorf("unseen policy %q: %w", s, internalerr.ErrInvalidConfig)
}

// Estimator computes additively smoothed conditional likelihoods
//
// P(w|c) = (count_c(w) + α) / (total_c + α·|V|)
type Estimator struct {
	alpha     float64
	vocabSize int
}

// NewEstimator creates an estimator for smoothing α over a vocabulary of size vocabSize
func NewEstimator(alpha float64, vocabSize int) Estimator {
	return Estimator{alpha: alpha, vocabSize: vocabSize}
}

// Likelihood returns P(w|c). With α == 0 an unseen token yields exactly 0;
// a zero denominator (empty class, α == 0) also yields 0 rather than NaN.
func (e Estimator) Likelihood(m *ClassModel, w string) float64 {
	den := float64(m.Total) + e.alpha*float64(e.vocabSize)
	if den == 0 {
		return 0
	}
	return (float64(m.Count(w)) + e.alpha) / den
}

// LogScore accumulates log2(prior) + Σ log2 P(w|c). Zero probabilities
// contribute -Inf.
func (e Estimator) LogScore(prior float64, m *ClassModel, tokens []string) float64 {
	s := math.Log2(prior)
	for _, w := range tokens {
		s += math.Log2(e.Likelihood(m, w))
	}
	return s
}

// LinearScore accumulates prior × Π P(w|c).
func (e Estimator) LinearScore(prior float64, m *ClassModel, tokens []string) float64 {
	s := prior
	for _, w := range tokens {
		s *= e.Likelihood(m, w)
	}
	return s
}
