package prompt

import (
	"strings"
	"time"
)

// Record represents a stored prompt document. One record is exactly one JSON
// file on disk; the pair (Category, ID) is its storage key.
type Record struct {
	// ID is a ULID that uniquely identifies this prompt. Immutable after creation.
	ID string `json:"id"`

	// Category is a member of the configured category set and names the
	// storage directory. Changing it moves the file.
	Category string `json:"category"`

	// Title is a required human-readable title
	Title string `json:"title"`

	// Body is the prompt text. May contain {{name}} placeholders; the store
	// attaches no semantics to them.
	Body string `json:"body"`

	// Description is an optional one-line summary
	Description string `json:"description,omitempty"`

	// Tags is a list of tags for filtering and stats
	Tags []string `json:"tags,omitempty"`

	// CreatedAt is set once at creation
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every mutation
	UpdatedAt time.Time `json:"updated_at"`
}

// Ref identifies a record by its storage key. Share tokens resolve to a Ref.
type Ref struct {
	Category string `json:"category"`
	ID       string `json:"id"`
}

// Ref returns the record's storage key.
func (r *Record) Ref() Ref {
	return Ref{Category: r.Category, ID: r.ID}
}

// Validate checks the shape of a record read from disk or submitted by a
// caller. It deliberately rejects records missing required fields rather than
// passing them through.
func (r *Record) Validate() error {
	if r.ID == "" {
		return errMissingField("id")
	}
	if r.Category == "" {
		return errMissingField("category")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errMissingField("title")
	}
	if r.CreatedAt.IsZero() {
		return errMissingField("created_at")
	}
	if r.UpdatedAt.IsZero() {
		return errMissingField("updated_at")
	}
	return nil
}

type fieldError string

func errMissingField(name string) error {
	return fieldError(name)
}

func (e fieldError) Error() string {
	return "missing or empty required field: " + string(e)
}
