package db

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorrupt is returned when a stored collection is not valid JSON
var ErrCorrupt = errors.New("stored collection is corrupt")

// Collection persists a whole slice as one JSON array under a single key.
// Every Save overwrites the previous value.
type Collection[T any] struct {
	db  *DB
	key string
}

// NewCollection binds a collection to key
func NewCollection[T any](db *DB, key string) *Collection[T] {
	return &Collection[T]{db: db, key: key}
}

// Load reads the collection. A missing key yields an empty collection.
func (c *Collection[T]) Load() ([]T, error) {
	raw, err := c.db.Get(c.key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", ErrCorrupt, c.key, err)
	}
	if items == nil {
		// "null" is what an unset browser store returned
		items = []T{}
	}
	return items, nil
}

// Save replaces the stored collection with items
func (c *Collection[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", c.key, err)
	}
	return c.db.Set(c.key, string(data))
}
