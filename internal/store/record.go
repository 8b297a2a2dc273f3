package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/logger"
	"github.com/hpungsan/promptbin/internal/prompt"
)

// Read loads the record at (category, id). A missing file is ErrNotFound; a
// file that exists but cannot be decoded or fails validation is
// ErrMalformedRecord, surfaced rather than skipped.
func (s *Store) Read(category, id string) (*prompt.Record, error) {
	path := s.path(category, id)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(id)
		}
		return nil, errors.NewStorageIO("read", err)
	}

	return decodeRecord(path, data)
}

// Write persists the record atomically: marshal, write to a temp file in the
// same directory, fsync, then rename over the final path.
func (s *Store) Write(rec *prompt.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.NewInternal(err)
	}
	data = append(data, '\n')

	dir := filepath.Join(s.root, rec.Category)
	tmp, err := os.CreateTemp(dir, "."+rec.ID+".tmp-*")
	if err != nil {
		return errors.NewStorageIO("write", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStorageIO("write", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStorageIO("sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageIO("close", err)
	}

	if err := os.Rename(tmpName, s.path(rec.Category, rec.ID)); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageIO("rename", err)
	}

	s.log.Debug("record written",
		logger.String("category", rec.Category),
		logger.String("id", rec.ID))
	return nil
}

// Delete removes the record file at (category, id). Deleting a record that
// does not exist returns ErrNotFound.
func (s *Store) Delete(category, id string) error {
	err := os.Remove(s.path(category, id))
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewNotFound(id)
		}
		return errors.NewStorageIO("remove", err)
	}

	s.log.Debug("record deleted",
		logger.String("category", category),
		logger.String("id", id))
	return nil
}

// ReadCategory loads every record in one category directory, unsorted.
// Temp files from in-flight writes are ignored; anything else that is not a
// valid record is an error.
func (s *Store) ReadCategory(category string) ([]prompt.Record, error) {
	dir := filepath.Join(s.root, category)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorageIO("readdir", err)
	}

	records := make([]prompt.Record, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewStorageIO("read", err)
		}

		rec, err := decodeRecord(path, data)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// ReadAll loads every record across the given categories (all configured
// categories when none given), sorted by updated_at descending.
func (s *Store) ReadAll(categories ...string) ([]prompt.Record, error) {
	if len(categories) == 0 {
		categories = s.categories
	}

	var records []prompt.Record
	for _, category := range categories {
		recs, err := s.ReadCategory(category)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

// decodeRecord strictly decodes and validates a record file. Unknown fields
// are rejected so silent schema drift shows up as corruption, not data loss.
func decodeRecord(path string, data []byte) (*prompt.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	rec := &prompt.Record{}
	if err := dec.Decode(rec); err != nil {
		return nil, errors.NewMalformedRecord(path, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, errors.NewMalformedRecord(path, err)
	}
	return rec, nil
}
