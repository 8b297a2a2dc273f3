package ops

import (
	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/prompt"
	"github.com/hpungsan/promptbin/internal/store"
)

// GetInput contains parameters for the Get operation. Address by
// (Category, ID), by bare ID, or by sanitized-title Name.
type GetInput struct {
	Category string
	ID       string
	Name     string
}

// Get retrieves a single record.
func Get(st *store.Store, cfg *config.Config, input GetInput) (*prompt.Record, error) {
	return resolve(st, cfg, input.Category, input.ID, input.Name)
}
