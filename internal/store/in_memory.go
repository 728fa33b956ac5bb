package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// InMemoryStore implements Store using an in-memory map.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewInMemoryStore creates a store holding copies of the given records.
// Records are keyed by the string form of their id.
func NewInMemoryStore(records ...Record) *InMemoryStore {
	s := &InMemoryStore{
		records: make(map[string]Record, len(records)),
	}
	for _, r := range records {
		s.records[fmt.Sprint(r[FieldID])] = copyRecord(r)
	}
	return s
}

// FetchAll returns copies of all records ordered by id.
func (s *InMemoryStore) FetchAll(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]Record, 0, len(keys))
	for _, k := range keys {
		list = append(list, copyRecord(s.records[k]))
	}
	return list, nil
}

// UpdateStock sets the stock of the record with the given id.
// Returns false if no record exists with that id.
func (s *InMemoryStore) UpdateStock(_ context.Context, id string, stock int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return false, nil
	}
	r[FieldStock] = stock
	return true, nil
}

func copyRecord(r Record) Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
