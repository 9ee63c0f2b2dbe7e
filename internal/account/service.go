// Package account owns the mapping from derivation keys to token-bound
// accounts. Accounts are created on first request and returned unchanged on
// every repeat; exactly one creation is ever observable per key.
package account

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"tokenbound/internal/account/metrics"
	"tokenbound/internal/derive"
	"tokenbound/pkg/domain"
	dErrors "tokenbound/pkg/domainerrors"
	"tokenbound/pkg/platform/events"
	"tokenbound/pkg/requestcontext"
)

// Service is the account registry. Safe for concurrent use.
type Service struct {
	deriver   *derive.Deriver
	store     Store
	publisher *events.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	group     singleflight.Group
}

// NewService constructs the account registry. metrics may be nil in tests.
func NewService(deriver *derive.Deriver, store Store, publisher *events.Publisher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		deriver:   deriver,
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
	}
}

// DeriveAddress previews the account address for key without side effects.
func (s *Service) DeriveAddress(key domain.Key) domain.Address {
	return s.deriver.DeriveAddress(key)
}

// GetOrCreate returns the account record for key, creating it on first
// request. Concurrent callers for the same key are coalesced; whichever call
// reaches the store first performs the creation and emits the creation and
// account-registration events, every other call observes the existing record.
//
// Errors: CodeInvalidInput for a malformed key, CodeCreationFailed when the
// store rejects the insert (no partial state persists; retry is safe).
func (s *Service) GetOrCreate(ctx context.Context, key domain.Key) (Record, error) {
	start := time.Now()
	if s.metrics != nil {
		defer s.metrics.ObserveGetOrCreate(start)
	}
	if err := key.Validate(); err != nil {
		return Record{}, err
	}

	// Fast path: already created. The store is the authority; the derived
	// address makes the lookup race-free because the record contents are a
	// pure function of the key.
	if existing, err := s.store.Find(ctx, key); err == nil {
		if s.metrics != nil {
			s.metrics.GetOrCreateHits.Inc()
		}
		return existing, nil
	}

	result, err, _ := s.group.Do(key.String(), func() (any, error) {
		return s.create(ctx, key)
	})
	if err != nil {
		return Record{}, err
	}
	return result.(Record), nil
}

func (s *Service) create(ctx context.Context, key domain.Key) (Record, error) {
	record := Record{
		Key:              key,
		AccountID:        s.deriver.DeriveAddress(key),
		ImplementationID: s.deriver.ImplementationID(),
		Salt:             s.deriver.Salt(),
		CreatedAt:        requestcontext.Now(ctx),
	}
	stored, created, err := s.store.CreateIfAbsent(ctx, record)
	if err != nil {
		if s.metrics != nil {
			s.metrics.CreationFailures.Inc()
		}
		return Record{}, dErrors.Wrap(dErrors.CodeCreationFailed, "account materialization failed", err).WithKey(key)
	}
	if !created {
		if s.metrics != nil {
			s.metrics.GetOrCreateHits.Inc()
		}
		return stored, nil
	}

	if s.metrics != nil {
		s.metrics.AccountsCreated.Inc()
	}
	s.logger.InfoContext(ctx, "account created",
		"key", key.String(),
		"account_id", stored.AccountID.String(),
	)
	s.emit(ctx, events.Event{
		Kind:             events.KindAccountCreated,
		AccountID:        stored.AccountID,
		ImplementationID: stored.ImplementationID,
		Salt:             stored.Salt.String(),
		ChainID:          key.ChainID,
		TokenContract:    key.TokenContract,
		TokenID:          key.TokenID,
	})
	s.emit(ctx, events.Event{
		Kind:             events.KindAccountRegistered,
		AccountID:        stored.AccountID,
		ImplementationID: stored.ImplementationID,
		ChainID:          key.ChainID,
		TokenContract:    key.TokenContract,
		TokenID:          key.TokenID,
	})
	return stored, nil
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "emit event failed",
			"kind", string(event.Kind),
			"key", event.Key().String(),
			"error", err,
		)
	}
}
