package store

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore keeps documents in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

func (s *MemoryStore) Fetch(ctx context.Context, venueID string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[venueID]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

// Put stores doc. TableList is immutable, so no deep copy is needed.
func (s *MemoryStore) Put(ctx context.Context, venueID string, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[venueID] = doc
	return nil
}

// Venues returns the stored venue ids, sorted.
func (s *MemoryStore) Venues() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.docs))
}

var _ Store = (*MemoryStore)(nil)
