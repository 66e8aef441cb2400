package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/polarity/pkg/polarity/bayes"
	"github.com/cognicore/polarity/pkg/polarity/internalerr"
	"github.com/cognicore/polarity/pkg/polarity/store"
)

func TestSaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	id, err := s.SaveRun(ctx, store.Run{
		Question:  2,
		Alpha:     10,
		UseLog:    true,
		Confusion: bayes.ConfusionMatrix{TruePositive: 3, TrueNegative: 4},
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected generated ID")
	}

	got, err := s.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Alpha != 10 || !got.UseLog || got.Confusion.TrueNegative != 4 {
		t.Errorf("Unexpected run %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestGetRunNotFound(t *testing.T) {
	_, err := New().GetRun(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListRunsFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	var ids []string
	for i, q := range []int{1, 2, 2, 3, 2} {
		id, err := s.SaveRun(ctx, store.Run{Question: q, Alpha: float64(i)})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	all, _ := s.ListRuns(ctx, 0, 0)
	if len(all) != 5 {
		t.Fatalf("Expected 5 runs, got %d", len(all))
	}
	for i, r := range all {
		if r.ID != ids[i] {
			t.Errorf("Run %d out of order", i)
		}
	}

	q2, _ := s.ListRuns(ctx, 2, 2)
	if len(q2) != 2 || q2[0].Alpha != 1 || q2[1].Alpha != 2 {
		t.Errorf("Unexpected question-2 runs %+v", q2)
	}
}

func TestSaveRunReplaces(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, _ := s.SaveRun(ctx, store.Run{Alpha: 1})
	if _, err := s.SaveRun(ctx, store.Run{ID: id, Alpha: 2}); err != nil {
		t.Fatal(err)
	}

	runs, _ := s.ListRuns(ctx, 0, 0)
	if len(runs) != 1 || runs[0].Alpha != 2 {
		t.Errorf("Expected replaced run, got %+v", runs)
	}
}
