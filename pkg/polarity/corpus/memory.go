package corpus

import (
	"context"
	"math/rand"

	"github.com/cognicore/polarity/pkg/polarity/bayes"
)

// Memory samples from splits that are already tokenized, such as JSONL
// datasets. It draws the same way Loader does: one uniform draw per document
// in order, kept when below the fraction.
type Memory struct {
	Train Split
	Test  Split
	Rand  *rand.Rand
}

// NewMemory creates an in-memory source sampling with rng.
func NewMemory(train, test Split, rng *rand.Rand) *Memory {
	return &Memory{Train: train, Test: test, Rand: rng}
}

// LoadTraining samples the training split and returns it with its vocabulary.
func (m *Memory) LoadTraining(ctx context.Context, f Fractions) (Split, bayes.Vocabulary, error) {
	split, err := m.sample(ctx, m.Train, f)
	if err != nil {
		return Split{}, bayes.Vocabulary{}, err
	}
	return split, bayes.NewVocabulary(split.Positive, split.Negative), nil
}

// LoadTest samples the test split.
func (m *Memory) LoadTest(ctx context.Context, f Fractions) (Split, error) {
	return m.sample(ctx, m.Test, f)
}

func (m *Memory) sample(ctx context.Context, s Split, f Fractions) (Split, error) {
	if err := f.Validate(); err != nil {
		return Split{}, err
	}
	pos, err := m.sampleDocs(ctx, s.Positive, f.Positive)
	if err != nil {
		return Split{}, err
	}
	neg, err := m.sampleDocs(ctx, s.Negative, f.Negative)
	if err != nil {
		return Split{}, err
	}
	return Split{Positive: pos, Negative: neg}, nil
}

func (m *Memory) sampleDocs(ctx context.Context, docs [][]string, fraction float64) ([][]string, error) {
	var out [][]string
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.Rand.Float64() >= fraction {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}
