package ops

import (
	"strings"
	"time"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/prompt"
	"github.com/hpungsan/promptbin/internal/store"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Category    string // required, must be in the configured set
	Title       string // required
	Body        string // required
	Description string
	Tags        []string
}

// Create validates input, generates a unique id, and writes a new record.
// created_at and updated_at are set to the same instant.
func Create(st *store.Store, cfg *config.Config, input CreateInput) (*prompt.Record, error) {
	if !cfg.ValidCategory(input.Category) {
		return nil, errors.NewInvalidCategory(input.Category, cfg.Categories)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}
	if input.Body == "" {
		return nil, errors.NewInvalidRequest("body is required")
	}

	id, err := newID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now().UTC()
	rec := &prompt.Record{
		ID:          id,
		Category:    input.Category,
		Title:       title,
		Body:        input.Body,
		Description: strings.TrimSpace(input.Description),
		Tags:        cleanTags(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := st.Write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}
