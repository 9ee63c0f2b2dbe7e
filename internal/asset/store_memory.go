package asset

import (
	"context"
	"sync"

	"tokenbound/pkg/domain"
	"tokenbound/pkg/platform/sentinel"
)

// InMemoryStore keeps asset records in maps guarded by one mutex; the
// byAccount index stays consistent with the primary map because both are
// written under the same lock.
type InMemoryStore struct {
	mu        sync.RWMutex
	records   map[domain.Key]Record
	byAccount map[domain.Address]domain.Key
}

// NewInMemoryStore constructs an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records:   make(map[domain.Key]Record),
		byAccount: make(map[domain.Address]domain.Key),
	}
}

func (s *InMemoryStore) CreateIfAbsent(_ context.Context, record Record) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[record.Key]; ok {
		return existing, false, nil
	}
	s.records[record.Key] = record
	s.byAccount[record.AccountID] = record.Key
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

func (s *InMemoryStore) FindByAccount(_ context.Context, accountID domain.Address) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.byAccount[accountID]
	if !ok {
		return Record{}, sentinel.ErrNotFound
	}
	return s.records[key], nil
}
