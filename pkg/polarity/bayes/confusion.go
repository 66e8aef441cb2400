package bayes

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/polarity/pkg/polarity/internalerr"
)

// Predictor labels a single document.
type Predictor interface {
	Classify(doc []string) Label
}

// ConfusionMatrix tabulates predicted against actual labels.
type ConfusionMatrix struct {
	TruePositive  int
	FalseNegative int
	FalsePositive int
	TrueNegative  int
}

// Add records one prediction.
func (m *ConfusionMatrix) Add(actual, predicted Label) {
	switch {
	case actual == Positive && predicted == Positive:
		m.TruePositive++
	case actual == Positive:
		m.FalseNegative++
	case predicted == Positive:
		m.FalsePositive++
	default:
		m.TrueNegative++
	}
}

// Merge adds the counts of other.
func (m *ConfusionMatrix) Merge(other ConfusionMatrix) {
	m.TruePositive += other.TruePositive
	m.FalseNegative += other.FalseNegative
	m.FalsePositive += other.FalsePositive
	m.TrueNegative += other.TrueNegative
}

// Total returns the number of classified documents.
func (m ConfusionMatrix) Total() int {
	return m.TruePositive + m.FalseNegative + m.FalsePositive + m.TrueNegative
}

// Accuracy is (TP+TN)/total.
func (m ConfusionMatrix) Accuracy() Metric {
	return ratio(m.TruePositive+m.TrueNegative, m.Total())
}

// Precision is TP/(TP+FP).
func (m ConfusionMatrix) Precision() Metric {
	return ratio(m.TruePositive, m.TruePositive+m.FalsePositive)
}

// Recall is TP/(TP+FN).
func (m ConfusionMatrix) Recall() Metric {
	return ratio(m.TruePositive, m.TruePositive+m.FalseNegative)
}

// Metric is a ratio that is undefined when its denominator is zero.
type Metric struct {
	Value   float64
	Defined bool
}

func ratio(num, den int) Metric {
	if den == 0 {
		return Metric{}
	}
	return Metric{Value: float64(num) / float64(den), Defined: true}
}

func (m Metric) String() string {
	if !m.Defined {
		return "Undefined"
	}
	return strconv.FormatFloat(m.Value, 'g', -1, 64)
}

// Evaluate classifies every test document and accumulates a confusion
// matrix. With workers > 1 documents are classified concurrently and the
// per-worker tallies are merged after all workers finish.
func Evaluate(ctx context.Context, p Predictor, testPos, testNeg [][]string, workers int) (ConfusionMatrix, error) {
	if len(testPos)+len(testNeg) == 0 {
		return ConfusionMatrix{}, fmt.Errorf("evaluate: no positive or negative documents: %w", internalerr.ErrEmptyTest)
	}

	type item struct {
		doc    []string
		actual Label
	}
	items := make([]item, 0, len(testPos)+len(testNeg))
	for _, doc := range testPos {
		items = append(items, item{doc, Positive})
	}
	for _, doc := range testNeg {
		items = append(items, item{doc, Negative})
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	partial := make([]ConfusionMatrix, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			local := &partial[w]
			for i := w; i < len(items); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				local.Add(items[i].actual, p.Classify(items[i].doc))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ConfusionMatrix{}, fmt.Errorf("evaluate: %w", err)
	}

	var m ConfusionMatrix
	for _, part := range partial {
		m.Merge(part)
	}
	return m, nil
}
