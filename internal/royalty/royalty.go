// Package royalty holds the royalty collaborator's configuration surface.
// The snapshot interval gates how often royalty state windows roll over; it
// is opaque external state to the registries, which never read it.
package royalty

import (
	"context"
	"log/slog"
	"sync"
	"time"

	dErrors "tokenbound/pkg/domainerrors"
)

// Service stores the admin-settable snapshot interval. Safe for concurrent
// use.
type Service struct {
	mu       sync.RWMutex
	interval time.Duration
	logger   *slog.Logger
}

// NewService constructs the royalty configuration surface with the given
// initial interval.
func NewService(initial time.Duration, logger *slog.Logger) *Service {
	return &Service{interval: initial, logger: logger}
}

// SnapshotInterval returns the current snapshot interval.
func (s *Service) SnapshotInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interval
}

// SetSnapshotInterval updates the snapshot interval.
//
// Errors: CodeInvariantViolation when interval is not positive.
func (s *Service) SetSnapshotInterval(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "snapshot interval must be positive")
	}
	s.mu.Lock()
	s.interval = interval
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "royalty snapshot interval updated", "interval", interval.String())
	return nil
}
