// Package bayes implements a binary multinomial Naive Bayes classifier over
// bag-of-words documents.
package bayes

import (
	"fmt"
	"math"

	"github.com/cognicore/polarity/pkg/polarity/internalerr"
)

// Label is a predicted or actual class.
type Label int

const (
	Negative Label = iota
	Positive
)

func (l Label) String() string {
	if l == Positive {
		return "positive"
	}
	return "negative"
}

// Options configures training and scoring.
//
// The zero value trains an unsmoothed linear-space model that counts every
// token occurrence, smooths unseen tokens and breaks ties toward Positive.
type Options struct {
	Alpha      float64
	UseLog     bool
	CountMode  CountMode
	TieBreaker TieBreaker // nil means Deterministic
	Unseen     UnseenPolicy
}

// DefaultOptions returns α=10 in log space with multiset counting, smoothing
// of unseen tokens and a randomized tie-break driven by src.
func DefaultOptions(src TieBreaker) Options {
	return Options{
		Alpha:      10,
		UseLog:     true,
		CountMode:  CountMultiset,
		TieBreaker: src,
		Unseen:     UnseenSmooth,
	}
}

// Validate checks the numeric preconditions.
func (o Options) Validate() error {
	if math.IsNaN(o.Alpha) || o.Alpha < 0 {
		return fmt.Errorf("alpha %v must be >= 0: %w", o.Alpha, internalerr.ErrPrecondition)
	}
	return nil
}

// Classifier is a trained model. It is read-only after Train and safe for
// concurrent Classify calls.
type Classifier struct {
	opts      Options
	vocab     Vocabulary
	models    [2]*ClassModel // indexed by Label
	priors    [2]float64
	estimator Estimator
}

// Train builds priors and class models from the training partitions.
func Train(pos, neg [][]string, opts Options) (*Classifier, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	total := len(pos) + len(neg)
	if total == 0 {
		return nil, fmt.Errorf("train: no positive or negative documents: %w", internalerr.ErrEmptyTraining)
	}
	if opts.TieBreaker == nil {
		opts.TieBreaker = Deterministic{}
	}

	vocab, posModel, negModel := BuildCounts(pos, neg, opts.CountMode)

	c := &Classifier{
		opts:      opts,
		vocab:     vocab,
		estimator: NewEstimator(opts.Alpha, vocab.Len()),
	}
	c.models[Positive] = posModel
	c.models[Negative] = negModel
	c.priors[Positive] = float64(len(pos)) / float64(total)
	c.priors[Negative] = 1 - c.priors[Positive]

	return c, nil
}

// Options returns the options the model was trained with.
func (c *Classifier) Options() Options { return c.opts }

// Vocabulary returns the training vocabulary.
func (c *Classifier) Vocabulary() Vocabulary { return c.vocab }

// Model returns the count model for a class.
func (c *Classifier) Model(l Label) *ClassModel { return c.models[l] }

// Prior returns P(class).
func (c *Classifier) Prior(l Label) float64 { return c.priors[l] }

// Likelihood returns the smoothed P(w|class).
func (c *Classifier) Likelihood(w string, l Label) float64 {
	return c.estimator.Likelihood(c.models[l], w)
}

// Score returns the unnormalized posterior of doc under class l: a base-2
// log score in log mode, a plain product otherwise. Only distinct tokens
// count.
func (c *Classifier) Score(doc []string, l Label) float64 {
	return c.score(c.scoringTokens(doc), l)
}

func (c *Classifier) score(tokens []string, l Label) float64 {
	if c.opts.UseLog {
		return c.estimator.LogScore(c.priors[l], c.models[l], tokens)
	}
	return c.estimator.LinearScore(c.priors[l], c.models[l], tokens)
}

// Classify predicts Positive iff score(positive) > score(negative). Equal
// scores, including -Inf against -Inf, go to the tie-breaker.
func (c *Classifier) Classify(doc []string) Label {
	tokens := c.scoringTokens(doc)
	pos := c.score(tokens, Positive)
	neg := c.score(tokens, Negative)

	switch {
	case pos > neg:
		return Positive
	case neg > pos:
		return Negative
	default:
		return c.opts.TieBreaker.Break()
	}
}

func (c *Classifier) scoringTokens(doc []string) []string {
	tokens := distinct(doc)
	if c.opts.Unseen != UnseenSkip {
		return tokens
	}
	kept := tokens[:0]
	for _, w := range tokens {
		if c.vocab.Contains(w) {
			kept = append(kept, w)
		}
	}
	return kept
}
