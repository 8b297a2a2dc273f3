package ops

import (
	"testing"

	"github.com/hpungsan/promptbin/internal/errors"
)

func TestSearchMatchesTitleAndBody(t *testing.T) {
	st, cfg := setupTest(t)
	mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "Review Helper", Body: "check the diff"})
	mustCreate(t, st, cfg, CreateInput{Category: "writing", Title: "Essay", Body: "needs review before sending"})
	mustCreate(t, st, cfg, CreateInput{Category: "analysis", Title: "Summary", Body: "unrelated"})

	out, err := Search(st, cfg, SearchInput{Query: "REVIEW"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if out.Total != 2 {
		t.Errorf("Total = %d, want 2 (title and body matches)", out.Total)
	}
}

func TestSearchNoMatches(t *testing.T) {
	st, cfg := setupTest(t)
	mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "Greeting", Body: "Hello {{name}}"})

	out, err := Search(st, cfg, SearchInput{Query: "zebra"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if out.Total != 0 || len(out.Items) != 0 {
		t.Errorf("expected empty result, got %+v", out)
	}
}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	st, cfg := setupTest(t)
	mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "A", Body: "a"})
	mustCreate(t, st, cfg, CreateInput{Category: "writing", Title: "B", Body: "b"})

	out, err := Search(st, cfg, SearchInput{Query: "  "})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if out.Total != 2 {
		t.Errorf("empty query should list everything, got %d", out.Total)
	}
	if out.Query != "" {
		t.Errorf("Query = %q, want trimmed empty", out.Query)
	}
}

func TestSearchCategoryFilter(t *testing.T) {
	st, cfg := setupTest(t)
	mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "Shared term", Body: "x"})
	mustCreate(t, st, cfg, CreateInput{Category: "writing", Title: "Shared term", Body: "x"})

	out, err := Search(st, cfg, SearchInput{Query: "shared", Category: "coding"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if out.Total != 1 || out.Items[0].Category != "coding" {
		t.Errorf("filtered search = %+v", out)
	}

	if _, err := Search(st, cfg, SearchInput{Query: "shared", Category: "misc"}); !errors.Is(err, errors.ErrInvalidCategory) {
		t.Errorf("expected INVALID_CATEGORY, got %v", err)
	}
}

func TestSearchLimit(t *testing.T) {
	st, cfg := setupTest(t)
	for i := 0; i < 5; i++ {
		mustCreate(t, st, cfg, CreateInput{Category: "coding", Title: "Common", Body: "common body"})
	}

	out, err := Search(st, cfg, SearchInput{Query: "common", Limit: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(out.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(out.Items))
	}
	if out.Total != 5 {
		t.Errorf("Total = %d, want 5 (total before limit)", out.Total)
	}
}
