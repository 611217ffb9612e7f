// Package jsonstore persists a resource collection as a single JSON array
// on disk. Every write rewrites the whole file; a per-collection mutex
// serializes writers and a temp-file-then-rename keeps a crashed write
// from truncating the collection.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection is a file-backed record store. ID extracts the record's
// identifier in its canonical string form; numeric-id resources format
// their id through it so comparisons stay consistent everywhere.
type Collection[T any] struct {
	path string
	id   func(T) string
	mu   sync.Mutex
}

// NewCollection opens (or initializes) the collection file at path.
// An absent file is created holding an empty array.
func NewCollection[T any](path string, id func(T) string) (*Collection[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("failed to initialize collection file: %w", err)
		}
	}
	return &Collection[T]{path: path, id: id}, nil
}

// List returns every record in file order.
func (c *Collection[T]) List() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, bool, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return zero, false, err
	}
	for _, r := range records {
		if c.id(r) == id {
			return r, true, nil
		}
	}
	return zero, false, nil
}

// Insert appends a record. Ids must be unique within the collection.
func (c *Collection[T]) Insert(record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return err
	}
	for _, r := range records {
		if c.id(r) == c.id(record) {
			return fmt.Errorf("duplicate id %q", c.id(record))
		}
	}
	return c.write(append(records, record))
}

// Replace applies mutate to the record with the given id and persists
// the collection. Returns the updated record, or found=false when the
// id does not exist.
func (c *Collection[T]) Replace(id string, mutate func(*T)) (T, bool, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return zero, false, err
	}
	for i := range records {
		if c.id(records[i]) == id {
			mutate(&records[i])
			if err := c.write(records); err != nil {
				return zero, false, err
			}
			return records[i], true, nil
		}
	}
	return zero, false, nil
}

// Delete removes the record with the given id, returning the removed
// record so callers can release its attachments.
func (c *Collection[T]) Delete(id string) (T, bool, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return zero, false, err
	}
	for i := range records {
		if c.id(records[i]) == id {
			removed := records[i]
			records = append(records[:i], records[i+1:]...)
			if err := c.write(records); err != nil {
				return zero, false, err
			}
			return removed, true, nil
		}
	}
	return zero, false, nil
}

func (c *Collection[T]) read() ([]T, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}
	if len(raw) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse collection file %s: %w", c.path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) write(records []T) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".collection-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, c.path)
}
