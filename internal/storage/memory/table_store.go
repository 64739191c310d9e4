package memory

import (
	"context"
	"sort"
	"sync"

	"sentiment-lab/internal/storage"
	"sentiment-lab/internal/table"
)

// TableStore is an in-memory implementation of storage.TableStore.
type TableStore struct {
	mu   sync.RWMutex
	data map[string]*table.Table // keyed by table name
}

// NewTableStore creates a new in-memory table store.
func NewTableStore() *TableStore {
	return &TableStore{
		data: make(map[string]*table.Table),
	}
}

// Put registers a table. Returns ErrDuplicateKey if name exists.
func (s *TableStore) Put(_ context.Context, name string, t *table.Table) error {
	if name == "" || t == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[name]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	s.data[name] = t.Clone()
	return nil
}

// LoadTable returns a copy of the named table. Returns ErrNotFound if not exists.
func (s *TableStore) LoadTable(_ context.Context, name string) (*table.Table, error) {
	if name == "" {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[name]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return t.Clone(), nil
}

// ListTables returns registered table names, sorted.
func (s *TableStore) ListTables(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

var _ storage.TableStore = (*TableStore)(nil)
