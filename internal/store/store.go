// Package store owns the canonical ordered collection of catalog records
// and its persistence as a single YAML file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrnerf/paperlist/internal/catalog"
)

// Errors returned by store operations.
var (
	// ErrDuplicateID indicates an insert whose id already exists. The
	// existing record is left untouched.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNotFound indicates an update or delete for an absent id.
	ErrNotFound = errors.New("record not found")

	// ErrCorruptCatalog indicates the persisted file could not be parsed.
	// Operations abort before any write to avoid data loss.
	ErrCorruptCatalog = errors.New("corrupt catalog")
)

// Store is a catalog bound to its persisted file. Every mutating operation
// rewrites the whole collection; the store assumes a single writer.
type Store struct {
	path    string
	records []catalog.Record
}

// Load reads the entire catalog into memory. A missing file is an empty
// catalog, not an error; a file that fails to parse is ErrCorruptCatalog.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{path: path}, nil
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var records []catalog.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %v: %w", path, err, ErrCorruptCatalog)
	}

	return &Store{path: path, records: records}, nil
}

// Path returns the catalog file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// All returns the records in catalog order. The returned slice is shared;
// callers must not mutate it.
func (s *Store) All() []catalog.Record { return s.records }

// Find returns the record with the given id.
func (s *Store) Find(id string) (catalog.Record, bool) {
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return catalog.Record{}, false
}

// Insert appends a record and persists the catalog. Inserting an id that
// already exists fails with ErrDuplicateID; at most one record per id is a
// hard invariant checked before any write.
func (s *Store) Insert(rec catalog.Record) error {
	if _, ok := s.Find(rec.ID); ok {
		return fmt.Errorf("id %q: %w", rec.ID, ErrDuplicateID)
	}
	s.records = append(s.records, rec)
	if err := s.Save(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return err
	}
	return nil
}

// Update replaces the record with the given id wholesale and persists.
func (s *Store) Update(id string, rec catalog.Record) error {
	for i, r := range s.records {
		if r.ID == id {
			old := s.records[i]
			s.records[i] = rec
			if err := s.Save(); err != nil {
				s.records[i] = old
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("id %q: %w", id, ErrNotFound)
}

// Delete removes the record with the given id and persists. The removed
// record is returned so the caller can dispose of its thumbnail artifact.
func (s *Store) Delete(id string) (catalog.Record, error) {
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			if err := s.Save(); err != nil {
				return catalog.Record{}, err
			}
			return r, nil
		}
	}
	return catalog.Record{}, fmt.Errorf("id %q: %w", id, ErrNotFound)
}

// Replace swaps the whole collection. Callers are expected to follow with
// Save; batch passes (backfill) mutate a copy and rewrite once.
func (s *Store) Replace(records []catalog.Record) {
	s.records = records
}

// Search returns records whose title or authors contain the query
// (case-insensitive), or whose tags match it. An empty query matches
// everything; tagQuery, when set, additionally filters by tag substring.
func (s *Store) Search(query, tagQuery string) []catalog.Record {
	q := strings.ToLower(query)
	tq := strings.ToLower(tagQuery)

	var out []catalog.Record
	for _, r := range s.records {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Title), q) &&
			!strings.Contains(strings.ToLower(r.Authors), q) &&
			!tagsMatch(r.Tags, q) {
			continue
		}
		if tq != "" && !tagsMatch(r.Tags, tq) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func tagsMatch(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Save rewrites the whole catalog atomically (temp file + rename).
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	records := s.records
	if records == nil {
		// An empty catalog persists as [], not null.
		records = []catalog.Record{}
	}

	enc := yaml.NewEncoder(tmp)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing catalog: %w", err)
	}
	success = true
	return nil
}
