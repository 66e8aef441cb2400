package bayes

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/cognicore/polarity/pkg/polarity/internalerr"
)

var (
	scenarioPos = [][]string{{"great", "film"}}
	scenarioNeg = [][]string{{"bad", "film"}}
)

func mustTrain(t *testing.T, pos, neg [][]string, opts Options) *Classifier {
	t.Helper()
	c, err := Train(pos, neg, opts)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	return c
}

func TestTrainScenarioA(t *testing.T) {
	for _, useLog := range []bool{true, false} {
		c := mustTrain(t, scenarioPos, scenarioNeg, Options{Alpha: 1, UseLog: useLog})

		if c.Vocabulary().Len() != 3 {
			t.Errorf("Expected vocabulary of 3, got %d", c.Vocabulary().Len())
		}
		if c.Prior(Positive) != 0.5 || c.Prior(Negative) != 0.5 {
			t.Errorf("Expected 0.5/0.5 priors, got %v/%v", c.Prior(Positive), c.Prior(Negative))
		}
		if got := c.Likelihood("great", Positive); math.Abs(got-0.4) > 1e-12 {
			t.Errorf("P(great|pos) = %v, want 0.4", got)
		}
		if got := c.Likelihood("great", Negative); math.Abs(got-0.2) > 1e-12 {
			t.Errorf("P(great|neg) = %v, want 0.2", got)
		}
		if got := c.Classify([]string{"great"}); got != Positive {
			t.Errorf("useLog=%v: classify(great) = %v, want positive", useLog, got)
		}
		if got := c.Classify([]string{"bad"}); got != Negative {
			t.Errorf("useLog=%v: classify(bad) = %v, want negative", useLog, got)
		}
	}
}

func TestTrainScenarioBEmpty(t *testing.T) {
	c, err := Train(nil, [][]string{}, Options{Alpha: 1})
	if !errors.Is(err, internalerr.ErrEmptyTraining) {
		t.Fatalf("Expected ErrEmptyTraining, got %v", err)
	}
	if c != nil {
		t.Error("No model should be produced")
	}
}

func TestTrainRejectsNegativeAlpha(t *testing.T) {
	for _, alpha := range []float64{-0.5, math.NaN()} {
		_, err := Train(scenarioPos, scenarioNeg, Options{Alpha: alpha})
		if !errors.Is(err, internalerr.ErrPrecondition) {
			t.Errorf("alpha=%v: expected ErrPrecondition, got %v", alpha, err)
		}
	}
}

func TestScenarioCPriorOnly(t *testing.T) {
	pos := [][]string{{"great"}, {"fine"}}
	neg := [][]string{{"bad"}}

	for _, useLog := range []bool{true, false} {
		c := mustTrain(t, pos, neg, Options{Alpha: 1, UseLog: useLog, Unseen: UnseenSkip})

		doc := []string{"unknown", "tokens"}
		wantPos, wantNeg := c.Prior(Positive), c.Prior(Negative)
		if useLog {
			wantPos, wantNeg = math.Log2(wantPos), math.Log2(wantNeg)
		}
		if got := c.Score(doc, Positive); got != wantPos {
			t.Errorf("useLog=%v: positive score %v, want bare prior %v", useLog, got, wantPos)
		}
		if got := c.Score(doc, Negative); got != wantNeg {
			t.Errorf("useLog=%v: negative score %v, want bare prior %v", useLog, got, wantNeg)
		}
		if got := c.Classify(doc); got != Positive {
			t.Errorf("Decision should follow the larger prior, got %v", got)
		}
		if got := c.Classify(nil); got != Positive {
			t.Errorf("Empty doc should follow the prior, got %v", got)
		}
	}
}

func TestUnseenSmoothIncludesToken(t *testing.T) {
	smooth := mustTrain(t, scenarioPos, scenarioNeg, Options{Alpha: 1, UseLog: true})
	skip := mustTrain(t, scenarioPos, scenarioNeg, Options{Alpha: 1, UseLog: true, Unseen: UnseenSkip})

	doc := []string{"great", "unknown"}
	if smooth.Score(doc, Positive) >= skip.Score(doc, Positive) {
		t.Error("Smoothing an unseen token should lower the log score")
	}
	want := math.Log2(0.5) + math.Log2(0.4) + math.Log2(0.2)
	if got := smooth.Score(doc, Positive); math.Abs(got-want) > 1e-12 {
		t.Errorf("Smoothed score %v, want %v", got, want)
	}
}

func TestScoreUsesDistinctTokens(t *testing.T) {
	c := mustTrain(t, scenarioPos, scenarioNeg, Options{Alpha: 1, UseLog: true})

	once := c.Score([]string{"great"}, Positive)
	twice := c.Score([]string{"great", "great", "great"}, Positive)
	if once != twice {
		t.Errorf("Repeated tokens should not change the score: %v vs %v", once, twice)
	}
}

func TestAlphaZeroBoundary(t *testing.T) {
	linear := mustTrain(t, scenarioPos, scenarioNeg, Options{Alpha: 0})
	logc := mustTrain(t, scenarioPos, scenarioNeg, Options{Alpha: 0, UseLog: true})

	if got := linear.Likelihood("great", Negative); got != 0 {
		t.Errorf("P(great|neg) with alpha=0 = %v, want 0", got)
	}
	if got := linear.Score([]string{"great"}, Negative); got != 0 {
		t.Errorf("Linear score = %v, want 0", got)
	}
	if got := logc.Score([]string{"great"}, Negative); !math.IsInf(got, -1) {
		t.Errorf("Log score = %v, want -Inf", got)
	}
	if got := logc.Classify([]string{"great"}); got != Positive {
		t.Errorf("Finite score should beat -Inf, got %v", got)
	}
}

func TestEmptyClassAlphaZeroIsNotNaN(t *testing.T) {
	c := mustTrain(t, scenarioPos, [][]string{{}}, Options{Alpha: 0, UseLog: true})

	if got := c.Likelihood("great", Negative); got != 0 {
		t.Errorf("Zero denominator should yield 0, got %v", got)
	}
	if got := c.Score([]string{"great"}, Negative); !math.IsInf(got, -1) {
		t.Errorf("Expected -Inf, got %v", got)
	}
}

func TestNegativeInfinityTie(t *testing.T) {
	doc := []string{"great", "bad"}

	c := mustTrain(t, scenarioPos, scenarioNeg, Options{Alpha: 0, UseLog: true})
	if !math.IsInf(c.Score(doc, Positive), -1) || !math.IsInf(c.Score(doc, Negative), -1) {
		t.Fatal("Both scores should be -Inf")
	}
	if got := c.Classify(doc); got != Positive {
		t.Errorf("Deterministic tie-break should predict positive, got %v", got)
	}

	calls := 0
	c = mustTrain(t, scenarioPos, scenarioNeg, Options{
		Alpha:  0,
		UseLog: true,
		TieBreaker: TieBreakerFunc(func() Label {
			calls++
			return Negative
		}),
	})
	if got := c.Classify(doc); got != Negative {
		t.Errorf("Injected tie-break should decide, got %v", got)
	}
	if calls != 1 {
		t.Errorf("Expected one tie-break call, got %d", calls)
	}
}

func TestNoTieBreakWhenScoresDiffer(t *testing.T) {
	c := mustTrain(t, scenarioPos, scenarioNeg, Options{
		Alpha: 1,
		TieBreaker: TieBreakerFunc(func() Label {
			t.Error("Tie-break should not be consulted")
			return Negative
		}),
	})
	c.Classify([]string{"great"})
}

func TestRandomTieBreakSeeded(t *testing.T) {
	a := NewRandom(rand.New(rand.NewSource(42)))
	b := NewRandom(rand.New(rand.NewSource(42)))

	counts := map[Label]int{}
	for i := 0; i < 1000; i++ {
		la, lb := a.Break(), b.Break()
		if la != lb {
			t.Fatalf("Same seed should give same decisions at step %d", i)
		}
		counts[la]++
	}
	if counts[Positive] < 400 || counts[Negative] < 400 {
		t.Errorf("Expected roughly fair coin, got %v", counts)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := mustTrain(t, [][]string{{"great", "fun"}, {"great"}}, [][]string{{"bad", "dull"}}, Options{Alpha: 0.5, UseLog: true})

	doc := []string{"fun", "dull", "great", "plot"}
	first := c.Classify(doc)
	for i := 0; i < 10; i++ {
		if got := c.Classify(doc); got != first {
			t.Fatalf("Classification changed on call %d", i)
		}
	}
}

func TestTieBreakerName(t *testing.T) {
	tests := []struct {
		tb   TieBreaker
		want string
	}{
		{nil, "positive"},
		{Deterministic{}, "positive"},
		{NewRandom(rand.New(rand.NewSource(1))), "random"},
		{TieBreakerFunc(func() Label { return Positive }), "custom"},
	}
	for _, tt := range tests {
		if got := TieBreakerName(tt.tb); got != tt.want {
			t.Errorf("TieBreakerName(%T) = %q, want %q", tt.tb, got, tt.want)
		}
	}
}
