// Package polarity trains and evaluates a binary Naive Bayes sentiment
// classifier over a sampled review corpus.
package polarity

import (
	"context"
	"fmt"

	"github.com/cognicore/polarity/pkg/polarity/bayes"
	"github.com/cognicore/polarity/pkg/polarity/corpus"
	"github.com/cognicore/polarity/pkg/polarity/store"
)

// Source provides sampled training and test partitions
type Source interface {
	LoadTraining(ctx context.Context, f corpus.Fractions) (corpus.Split, bayes.Vocabulary, error)
	LoadTest(ctx context.Context, f corpus.Fractions) (corpus.Split, error)
}

// Engine is the train+evaluate facade
type Engine struct {
	source  Source
	store   store.Store
	workers int
}

// Options configures an Engine instance
type Options struct {
	Source  Source
	Store   store.Store // optional; runs are not recorded when nil
	Workers int         // concurrent classifiers during evaluation
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	return &Engine{
		source:  opts.Source,
		store:   opts.Store,
		workers: opts.Workers,
	}
}

// Close cleanly shuts down the Engine
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Params selects the hyperparameters and sampling of one run
type Params struct {
	Question int
	Options  bayes.Options
	Train    corpus.Fractions
	Test     corpus.Fractions
}

// Validate rejects out-of-range fractions and negative smoothing
func (p Params) Validate() error {
	if err := p.Options.Validate(); err != nil {
		return err
	}
	if err := p.Train.Validate(); err != nil {
		return err
	}
	return p.Test.Validate()
}

// Result holds the trained model and the run report
type Result struct {
	Run        store.Run
	Classifier *bayes.Classifier
}

// Run samples the corpus, trains on the training partitions and evaluates on
// the test partitions. Preconditions are checked before any loading.
func (e *Engine) Run(ctx context.Context, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	train, vocab, err := e.source.LoadTraining(ctx, p.Train)
	if err != nil {
		return Result{}, fmt.Errorf("load training set: %w", err)
	}
	test, err := e.source.LoadTest(ctx, p.Test)
	if err != nil {
		return Result{}, fmt.Errorf("load test set: %w", err)
	}

	clf, err := bayes.Train(train.Positive, train.Negative, p.Options)
	if err != nil {
		return Result{}, err
	}
	if vocab.Len() != clf.Vocabulary().Len() {
		return Result{}, fmt.Errorf("vocabulary mismatch: source %d, trained %d", vocab.Len(), clf.Vocabulary().Len())
	}

	confusion, err := bayes.Evaluate(ctx, clf, test.Positive, test.Negative, e.workers)
	if err != nil {
		return Result{}, err
	}

	run := store.Run{
		Question:  p.Question,
		Alpha:     p.Options.Alpha,
		UseLog:    p.Options.UseLog,
		CountMode: p.Options.CountMode.String(),
		TieBreak:  bayes.TieBreakerName(p.Options.TieBreaker),
		Unseen:    p.Options.Unseen.String(),
		TrainPos:  len(train.Positive),
		TrainNeg:  len(train.Negative),
		TestPos:   len(test.Positive),
		TestNeg:   len(test.Negative),
		VocabSize: vocab.Len(),
		Confusion: confusion,
	}
	run = store.Prepare(run)

	if e.store != nil {
		if _, err := e.store.SaveRun(ctx, run); err != nil {
			return Result{}, fmt.Errorf("record run: %w", err)
		}
	}

	return Result{Run: run, Classifier: clf}, nil
}
