package ops

import (
	"strings"
	"time"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/prompt"
	"github.com/hpungsan/promptbin/internal/store"
)

// UpdateInput contains parameters for the Update operation.
type UpdateInput struct {
	// Addressing
	Category string
	ID       string

	// Editable fields (nil = don't change)
	Title       *string
	Body        *string
	Description *string
	Tags        *[]string
	NewCategory *string // moves the file when it differs
}

// Update merges the submitted fields into an existing record and rewrites it
// atomically. created_at is preserved; updated_at always advances. A category
// change writes the record to its new directory before removing the old file,
// so a crash in between leaves a readable record rather than none.
func Update(st *store.Store, cfg *config.Config, input UpdateInput) (*prompt.Record, error) {
	if input.Title == nil && input.Body == nil && input.Description == nil &&
		input.Tags == nil && input.NewCategory == nil {
		return nil, errors.NewInvalidRequest("at least one editable field must be provided")
	}

	rec, err := resolve(st, cfg, input.Category, input.ID, "")
	if err != nil {
		return nil, err
	}
	oldCategory := rec.Category

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.NewInvalidRequest("title must not be empty")
		}
		rec.Title = title
	}
	if input.Body != nil {
		if *input.Body == "" {
			return nil, errors.NewInvalidRequest("body must not be empty")
		}
		rec.Body = *input.Body
	}
	if input.Description != nil {
		rec.Description = strings.TrimSpace(*input.Description)
	}
	if input.Tags != nil {
		rec.Tags = cleanTags(*input.Tags)
	}
	if input.NewCategory != nil {
		if !cfg.ValidCategory(*input.NewCategory) {
			return nil, errors.NewInvalidCategory(*input.NewCategory, cfg.Categories)
		}
		rec.Category = *input.NewCategory
	}

	rec.UpdatedAt = time.Now().UTC()

	if err := st.Write(rec); err != nil {
		return nil, err
	}

	if rec.Category != oldCategory {
		if err := st.Delete(oldCategory, rec.ID); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
