package library

import "sync"

// Repository loads and saves a whole collection.
// Save always replaces what was stored before.
type Repository[T any] interface {
	Load() ([]T, error)
	Save(items []T) error
}

// MemoryRepository is an in-memory Repository, used by tests and as a
// fallback when no database is configured.
type MemoryRepository[T any] struct {
	mu      sync.Mutex
	items   []T
	LoadErr error
	SaveErr error
	Saves   int
}

// NewMemoryRepository creates a repository pre-filled with items
func NewMemoryRepository[T any](items ...T) *MemoryRepository[T] {
	return &MemoryRepository[T]{items: items}
}

func (r *MemoryRepository[T]) Load() ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *MemoryRepository[T]) Save(items []T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.items = make([]T, len(items))
	copy(r.items, items)
	r.Saves++
	return nil
}

// Items returns what was last saved
func (r *MemoryRepository[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}
