package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/polarity/pkg/polarity/internalerr"
)

func TestRegistryRunsInGivenOrder(t *testing.T) {
	reg := NewRegistry()
	var order []int
	for _, id := range []int{1, 2, 6} {
		if err := reg.Register(id, "q", func(context.Context) error {
			order = append(order, id)
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}

	if err := reg.RunAll(context.Background(), []int{6, 1, 6}); err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	want := []int{6, 1, 6}
	if len(order) != len(want) {
		t.Fatalf("Ran %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestRegistryUnknownIDRunsNothing(t *testing.T) {
	reg := NewRegistry()
	ran := false
	reg.Register(1, "q", func(context.Context) error {
		ran = true
		return nil
	})

	err := reg.RunAll(context.Background(), []int{1, 5})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
	if ran {
		t.Error("No procedure should run when an id is unknown")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	noop := func(context.Context) error { return nil }
	if err := reg.Register(3, "a", noop); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(3, "b", noop); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for duplicate, got %v", err)
	}
	if err := reg.Register(4, "c", nil); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil procedure, got %v", err)
	}
}

func TestRegistryStopsOnError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	second := false
	reg.Register(1, "fails", func(context.Context) error { return boom })
	reg.Register(2, "after", func(context.Context) error {
		second = true
		return nil
	})

	if err := reg.RunAll(context.Background(), []int{1, 2}); !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped procedure error, got %v", err)
	}
	if second {
		t.Error("Procedures after a failure should not run")
	}
}

func TestRegistryEntriesSorted(t *testing.T) {
	reg := NewRegistry()
	noop := func(context.Context) error { return nil }
	for _, id := range []int{6, 1, 3} {
		reg.Register(id, "q", noop)
	}

	entries := reg.Entries()
	if len(entries) != 3 || entries[0].ID != 1 || entries[1].ID != 3 || entries[2].ID != 6 {
		t.Errorf("Unexpected entries %+v", entries)
	}
	if _, ok := reg.Lookup(3); !ok {
		t.Error("Lookup(3) should succeed")
	}
	if _, ok := reg.Lookup(2); ok {
		t.Error("Lookup(2) should fail")
	}
}
