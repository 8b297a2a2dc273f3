package ops

import (
	"testing"
	"time"

	"github.com/hpungsan/promptbin/internal/errors"
)

func TestListEmpty(t *testing.T) {
	st, cfg := setupTest(t)

	out, err := List(st, cfg, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Total != 0 || out.Items == nil {
		t.Errorf("empty list should have non-nil empty items, got %+v", out)
	}
	if out.Sort != "updated_at_desc" {
		t.Errorf("Sort = %q", out.Sort)
	}
}

func TestListOrder(t *testing.T) {
	st, cfg := setupTest(t)
	first := mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "First", Body: "a"})
	time.Sleep(5 * time.Millisecond)
	mustCreate(t, st, cfg, CreateInput{Category: "writing", Title: "Second", Body: "b"})
	time.Sleep(5 * time.Millisecond)

	// Touching the oldest record moves it to the front
	if _, err := Update(st, cfg, UpdateInput{ID: first.ID, Body: strPtr("a2")}); err != nil {
		t.Fatal(err)
	}

	out, err := List(st, cfg, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Total != 2 {
		t.Fatalf("Total = %d, want 2", out.Total)
	}
	if out.Items[0].Title != "First" || out.Items[1].Title != "Second" {
		t.Errorf("order = [%s, %s], want newest update first", out.Items[0].Title, out.Items[1].Title)
	}
}

func TestListCategoryFilter(t *testing.T) {
	st, cfg := setupTest(t)
	mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "A", Body: "a"})
	mustCreate(t, st, cfg, CreateInput{Category: "writing", Title: "B", Body: "b"})

	out, err := List(st, cfg, ListInput{Category: "writing"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Total != 1 || out.Items[0].Category != "writing" {
		t.Errorf("filtered list = %+v", out)
	}

	if _, err := List(st, cfg, ListInput{Category: "misc"}); !errors.Is(err, errors.ErrInvalidCategory) {
		t.Errorf("expected INVALID_CATEGORY, got %v", err)
	}
}
