// Package corpus loads labeled review documents from disk and samples them
// into positive/negative partitions.
package corpus

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/cognicore/polarity/pkg/polarity/bayes"
	"github.com/cognicore/polarity/pkg/polarity/ingest"
	"github.com/cognicore/polarity/pkg/polarity/internalerr"
)

// Split holds the documents of one partition (train or test).
type Split struct {
	Positive [][]string
	Negative [][]string
}

// Len returns the total number of documents.
func (s Split) Len() int {
	return len(s.Positive) + len(s.Negative)
}

// Fractions are per-class sampling probabilities in [0,1].
type Fractions struct {
	Positive float64
	Negative float64
}

// Validate rejects fractions outside [0,1].
func (f Fractions) Validate() error {
	for _, v := range []float64{f.Positive, f.Negative} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("fraction %v outside [0,1]: %w", v, internalerr.ErrPrecondition)
		}
	}
	return nil
}

// Loader reads <Root>/{train,test}/{pos,neg}/*.txt.
type Loader struct {
	Root     string
	Pipeline *ingest.Pipeline
	Rand     *rand.Rand
}

// NewLoader creates a loader sampling with rng.
func NewLoader(root string, pipeline *ingest.Pipeline, rng *rand.Rand) *Loader {
	return &Loader{Root: root, Pipeline: pipeline, Rand: rng}
}

// LoadTraining samples the training partitions and returns them with their
// vocabulary.
func (l *Loader) LoadTraining(ctx context.Context, f Fractions) (Split, bayes.Vocabulary, error) {
	split, err := l.load(ctx, "train", f)
	if err != nil {
		return Split{}, bayes.Vocabulary{}, err
	}
	return split, bayes.NewVocabulary(split.Positive, split.Negative), nil
}

// LoadTest samples the test partitions.
func (l *Loader) LoadTest(ctx context.Context, f Fractions) (Split, error) {
	return l.load(ctx, "test", f)
}

func (l *Loader) load(ctx context.Context, partition string, f Fractions) (Split, error) {
	if err := f.Validate(); err != nil {
		return Split{}, err
	}

	pos, err := l.sampleDir(ctx, filepath.Join(l.Root, partition, "pos"), f.Positive)
	if err != nil {
		return Split{}, err
	}
	neg, err := l.sampleDir(ctx, filepath.Join(l.Root, partition, "neg"), f.Negative)
	if err != nil {
		return Split{}, err
	}

	return Split{Positive: pos, Negative: neg}, nil
}

// sampleDir keeps each file independently with probability fraction. One
// uniform draw is consumed per file, in lexical file order.
func (l *Loader) sampleDir(ctx context.Context, dir string, fraction float64) ([][]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}

	var docs [][]string
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if l.Rand.Float64() >= fraction {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file %s: %w", path, err)
		}
		docs = append(docs, l.Pipeline.Process(string(data)))
	}

	return docs, nil
}
