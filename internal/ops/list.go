package ops

import (
	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/prompt"
	"github.com/hpungsan/promptbin/internal/store"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Category string // optional filter; empty = all categories
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []prompt.Record `json:"items"`
	Total int             `json:"total"`
	Sort  string          `json:"sort"` // "updated_at_desc"
}

// List enumerates records, optionally filtered by category, sorted by
// updated_at descending.
func List(st *store.Store, cfg *config.Config, input ListInput) (*ListOutput, error) {
	var (
		records []prompt.Record
		err     error
	)
	if input.Category != "" {
		if !cfg.ValidCategory(input.Category) {
			return nil, errors.NewInvalidCategory(input.Category, cfg.Categories)
		}
		records, err = st.ReadAll(input.Category)
	} else {
		records, err = st.ReadAll()
	}
	if err != nil {
		return nil, err
	}

	if records == nil {
		records = []prompt.Record{}
	}

	return &ListOutput{
		Items: records,
		Total: len(records),
		Sort:  "updated_at_desc",
	}, nil
}
