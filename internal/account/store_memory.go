package account

import (
	"context"
	"sync"

	"tokenbound/pkg/domain"
	"tokenbound/pkg/platform/sentinel"
)

// InMemoryStore keeps account records in a map. Insert-if-absent is atomic
// under the store mutex, which is what preserves at-most-one creation when
// callers race.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[domain.Key]Record
}

// NewInMemoryStore constructs an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[domain.Key]Record)}
}

func (s *InMemoryStore) CreateIfAbsent(_ context.Context, record Record) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[record.Key]; ok {
		return existing, false, nil
	}
	s.records[record.Key] = record
	return record, true, nil
}

func (s *InMemoryStore) Find(_ context.Context, key domain.Key) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		return Record{}, sentinel.ErrNotFound
	}
	return record, nil
}
