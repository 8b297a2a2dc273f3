// Package ops implements the store operations consumed by the CLI, the MCP
// adapter, and the web layer. Each operation validates its input, talks to
// the file store, and returns either a typed output or a *errors.PromptError.
package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/prompt"
	"github.com/hpungsan/promptbin/internal/store"
)

// Search and activity limits
const (
	DefaultSearchLimit = 0 // 0 = unlimited
	MaxRecentActivity  = 10
)

// newID generates a new record ID: a ULID, i.e. a millisecond timestamp plus
// a random suffix, unique and lexicographically ordered by creation time.
func newID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// resolve finds the record addressed by (category, id), by bare id, or by
// sanitized-title name, in that order of preference.
// Rules:
// - category + id → direct lookup (category must be valid)
// - id alone → scan categories for the file
// - name alone → match against sanitized titles across the whole store
func resolve(st *store.Store, cfg *config.Config, category, id, name string) (*prompt.Record, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)

	if id == "" && name == "" {
		return nil, errors.NewInvalidRequest("must specify either id or name")
	}

	if id != "" {
		if category != "" {
			if !cfg.ValidCategory(category) {
				return nil, errors.NewInvalidCategory(category, cfg.Categories)
			}
			return st.Read(category, id)
		}

		found, err := st.FindCategory(id)
		if err != nil {
			return nil, err
		}
		return st.Read(found, id)
	}

	// Name mode: sanitized-title lookup across all categories.
	want := prompt.SanitizeTitle(name)
	if want == "" {
		return nil, errors.NewInvalidRequest("name must not be empty")
	}

	records, err := st.ReadAll()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if prompt.SanitizeTitle(records[i].Title) == want {
			return &records[i], nil
		}
	}
	return nil, errors.NewNotFound(name)
}

// cleanTags trims whitespace and drops empty entries.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
