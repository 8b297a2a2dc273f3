package ops

import (
	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Category string
	ID       string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted  bool   `json:"deleted"`
	Category string `json:"category"`
	ID       string `json:"id"`
}

// Delete removes a record's file. Deleting a record that does not exist
// returns ErrNotFound; every surface reports the same way.
func Delete(st *store.Store, cfg *config.Config, input DeleteInput) (*DeleteOutput, error) {
	rec, err := resolve(st, cfg, input.Category, input.ID, "")
	if err != nil {
		return nil, err
	}

	if err := st.Delete(rec.Category, rec.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted:  true,
		Category: rec.Category,
		ID:       rec.ID,
	}, nil
}
