package events

import (
	"context"
	"sync"

	"tokenbound/pkg/domain"
)

// MemorySink keeps published events in memory. Used by tests asserting
// exactly-once emission and as the local sink when no broker is configured.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemorySink constructs an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// All returns a copy of every published event, in publish order.
func (s *MemorySink) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}

// ByKind returns published events of one kind, in publish order.
func (s *MemorySink) ByKind(kind Kind) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// ByKey returns published events for one derivation key, in publish order.
func (s *MemorySink) ByKey(key domain.Key) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.Key() == key {
			out = append(out, e)
		}
	}
	return out
}
