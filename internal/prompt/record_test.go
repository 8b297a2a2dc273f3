package prompt

import (
	"testing"
	"time"
)

func validRecord() Record {
	now := time.Now()
	return Record{
		ID:        "01JTESTTESTTESTTESTTESTTES",
		Category:  "coding",
		Title:     "Greeting",
		Body:      "Hello {{name}}",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRecordValidate(t *testing.T) {
	rec := validRecord()
	if err := rec.Validate(); err != nil {
		t.Fatalf("valid record failed validation: %v", err)
	}
}

func TestRecordValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
	}{
		{"id", func(r *Record) { r.ID = "" }},
		{"category", func(r *Record) { r.Category = "" }},
		{"title", func(r *Record) { r.Title = "   " }},
		{"created_at", func(r *Record) { r.CreatedAt = time.Time{} }},
		{"updated_at", func(r *Record) { r.UpdatedAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			if err := rec.Validate(); err == nil {
				t.Errorf("expected validation error for missing %s", tt.name)
			}
		})
	}
}

func TestRecordRef(t *testing.T) {
	rec := validRecord()
	ref := rec.Ref()
	if ref.Category != "coding" || ref.ID != rec.ID {
		t.Errorf("Ref() = %+v", ref)
	}
}
