package ops

import (
	"strings"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/prompt"
	"github.com/hpungsan/promptbin/internal/store"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query    string // empty query behaves like List
	Category string // optional filter
	Limit    int    // 0 = unlimited
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items []prompt.Record `json:"items"`
	Total int             `json:"total"`
	Query string          `json:"query"`
}

// Search performs a case-insensitive substring match over title and body.
// A linear scan over all records: the expected dataset is tens to low
// thousands of files, which does not warrant an index.
func Search(st *store.Store, cfg *config.Config, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)

	if input.Category != "" && !cfg.ValidCategory(input.Category) {
		return nil, errors.NewInvalidCategory(input.Category, cfg.Categories)
	}

	listed, err := List(st, cfg, ListInput{Category: input.Category})
	if err != nil {
		return nil, err
	}

	items := listed.Items
	if query != "" {
		needle := strings.ToLower(query)
		matched := make([]prompt.Record, 0, len(items))
		for _, rec := range items {
			if strings.Contains(strings.ToLower(rec.Title), needle) ||
				strings.Contains(strings.ToLower(rec.Body), needle) {
				matched = append(matched, rec)
			}
		}
		items = matched
	}

	total := len(items)
	if input.Limit > 0 && len(items) > input.Limit {
		items = items[:input.Limit]
	}

	return &SearchOutput{
		Items: items,
		Total: total,
		Query: query,
	}, nil
}
