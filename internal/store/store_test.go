package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/prompt"
)

var testCategories = []string{"coding", "writing", "analysis"}

func setupStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir(), testCategories, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return st
}

func testRecord(id, category, title string) *prompt.Record {
	now := time.Now().UTC()
	return &prompt.Record{
		ID:        id,
		Category:  category,
		Title:     title,
		Body:      "body of " + title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOpenCreatesCategoryDirs(t *testing.T) {
	root := t.TempDir()
	if _, err := Open(root, testCategories, nil); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	for _, category := range testCategories {
		info, err := os.Stat(filepath.Join(root, category))
		if err != nil || !info.IsDir() {
			t.Errorf("category dir %q not created: %v", category, err)
		}
	}
}

func TestWriteRead(t *testing.T) {
	st := setupStore(t)
	rec := testRecord("rec1", "coding", "Greeting")
	rec.Description = "says hello"
	rec.Tags = []string{"greeting", "demo"}

	if err := st.Write(rec); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := st.Read("coding", "rec1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.ID != rec.ID || got.Category != rec.Category || got.Title != rec.Title ||
		got.Body != rec.Body || got.Description != rec.Description {
		t.Errorf("Read returned %+v, want %+v", got, rec)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "greeting" {
		t.Errorf("Tags = %v", got.Tags)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) || !got.UpdatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("timestamps did not survive a write/read cycle")
	}
}

func TestReadMissing(t *testing.T) {
	st := setupStore(t)
	_, err := st.Read("coding", "nope")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestReadMalformed(t *testing.T) {
	st := setupStore(t)
	path := filepath.Join(st.Root(), "coding", "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := st.Read("coding", "bad")
	if !errors.Is(err, errors.ErrMalformedRecord) {
		t.Errorf("expected MALFORMED_RECORD, got %v", err)
	}
}

func TestReadUnknownField(t *testing.T) {
	st := setupStore(t)
	raw := `{"id":"x","category":"coding","title":"T","body":"B",
		"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z",
		"bogus":"field"}`
	path := filepath.Join(st.Root(), "coding", "x.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := st.Read("coding", "x")
	if !errors.Is(err, errors.ErrMalformedRecord) {
		t.Errorf("unknown field should be MALFORMED_RECORD, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	st := setupStore(t)
	rec := testRecord("rec1", "coding", "Greeting")
	if err := st.Write(rec); err != nil {
		t.Fatal(err)
	}

	if err := st.Delete("coding", "rec1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := st.Read("coding", "rec1"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND after delete, got %v", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	st := setupStore(t)
	if err := st.Delete("coding", "nope"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("deleting a missing record should be NOT_FOUND, got %v", err)
	}
}

func TestFindCategory(t *testing.T) {
	st := setupStore(t)
	if err := st.Write(testRecord("rec1", "writing", "Essay")); err != nil {
		t.Fatal(err)
	}

	category, err := st.FindCategory("rec1")
	if err != nil {
		t.Fatalf("FindCategory failed: %v", err)
	}
	if category != "writing" {
		t.Errorf("FindCategory = %q, want writing", category)
	}

	if _, err := st.FindCategory("ghost"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND for unknown id, got %v", err)
	}
}

func TestReadCategorySkipsNonRecords(t *testing.T) {
	st := setupStore(t)
	if err := st.Write(testRecord("rec1", "coding", "Keep")); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(st.Root(), "coding")
	// dotfiles, temp files, and non-json entries are all ignored
	os.WriteFile(filepath.Join(dir, ".rec2.tmp-123"), []byte("partial"), 0o644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("notes"), 0o644)
	os.MkdirAll(filepath.Join(dir, "sub"), 0o755)

	records, err := st.ReadCategory("coding")
	if err != nil {
		t.Fatalf("ReadCategory failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "rec1" {
		t.Errorf("ReadCategory = %d records, want just rec1", len(records))
	}
}

func TestReadAllSortedByUpdatedAt(t *testing.T) {
	st := setupStore(t)
	base := time.Now().UTC()

	old := testRecord("old", "coding", "Old")
	old.UpdatedAt = base.Add(-2 * time.Hour)
	mid := testRecord("mid", "writing", "Mid")
	mid.UpdatedAt = base.Add(-1 * time.Hour)
	newest := testRecord("new", "analysis", "New")
	newest.UpdatedAt = base

	for _, rec := range []*prompt.Record{old, newest, mid} {
		if err := st.Write(rec); err != nil {
			t.Fatal(err)
		}
	}

	records, err := st.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ReadAll returned %d records, want 3", len(records))
	}
	for i, want := range []string{"new", "mid", "old"} {
		if records[i].ID != want {
			t.Errorf("records[%d].ID = %q, want %q", i, records[i].ID, want)
		}
	}
}

func TestReadAllFilter(t *testing.T) {
	st := setupStore(t)
	st.Write(testRecord("a", "coding", "A"))
	st.Write(testRecord("b", "writing", "B"))

	records, err := st.ReadAll("coding")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "a" {
		t.Errorf("filtered ReadAll = %v", records)
	}
}
