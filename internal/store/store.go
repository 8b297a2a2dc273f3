// Package store implements the file-backed prompt record store. Each record
// is one JSON file at <root>/<category>/<id>.json; the (category, id) pair is
// the storage key. Writes go through a temp file and rename so a partially
// written record is never observable.
package store

import (
	"os"
	"path/filepath"

	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/logger"
)

// Store provides durable CRUD over prompt records with a
// directory-per-category layout. It holds no in-memory state beyond its
// configuration; the filesystem is the source of truth.
type Store struct {
	root       string
	categories []string
	log        logger.Logger
}

// Open creates a Store rooted at root and ensures one directory per category
// exists.
func Open(root string, categories []string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNop()
	}
	for _, category := range categories {
		dir := filepath.Join(root, category)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewStorageIO("mkdir", err)
		}
	}
	log.Debug("store opened",
		logger.String("root", root),
		logger.Int("categories", len(categories)))

	return &Store{
		root:       root,
		categories: categories,
		log:        log,
	}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Categories returns the configured category set.
func (s *Store) Categories() []string {
	return s.categories
}

// path returns the file path for a record.
func (s *Store) path(category, id string) string {
	return filepath.Join(s.root, category, id+".json")
}

// FindCategory locates the category holding the record with the given id by
// scanning all category directories. Returns ErrNotFound if no file exists.
func (s *Store) FindCategory(id string) (string, error) {
	for _, category := range s.categories {
		if _, err := os.Stat(s.path(category, id)); err == nil {
			return category, nil
		}
	}
	return "", errors.NewNotFound(id)
}
