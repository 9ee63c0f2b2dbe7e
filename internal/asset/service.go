// Package asset owns the IP asset registry: marking a token as a registered
// asset tied to its token-bound account. Registration is idempotent and
// event-verified; downstream modules (licensing, royalty) read registration
// state only through this service's lookups.
package asset

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tokenbound/internal/account"
	"tokenbound/internal/asset/metrics"
	"tokenbound/pkg/domain"
	dErrors "tokenbound/pkg/domainerrors"
	"tokenbound/pkg/platform/events"
	"tokenbound/pkg/platform/sentinel"
	"tokenbound/pkg/requestcontext"
)

// Service is the asset registry. Safe for concurrent use.
type Service struct {
	accounts  *account.Service
	store     Store
	ownership OwnershipVerifier
	naming    Naming
	publisher *events.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewService constructs the asset registry. metrics may be nil in tests.
func NewService(
	accounts *account.Service,
	store Store,
	ownership OwnershipVerifier,
	naming Naming,
	publisher *events.Publisher,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		accounts:  accounts,
		store:     store,
		ownership: ownership,
		naming:    naming,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
	}
}

// Register binds the token identified by key to its deterministic account
// and records it as a registered asset. The record's AccountID is both the
// account id and the asset id; created reports whether this call performed
// the first registration.
//
// First registration of a key creates the account (emitting the account
// events) and the asset record (emitting the asset registration event).
// Re-registration of an already-registered key is a no-op returning the
// existing account id, with no new events — including when the second caller
// differs from the first, as long as it is still authorized.
//
// Errors: CodeInvalidInput for malformed keys, CodeUnauthorized when caller
// does not own the token, CodeCreationFailed when account materialization
// fails. No state changes on any error.
func (s *Service) Register(ctx context.Context, key domain.Key, caller domain.Address) (Record, bool, error) {
	start := time.Now()
	if s.metrics != nil {
		defer s.metrics.ObserveRegister(start)
	}
	if err := key.Validate(); err != nil {
		return Record{}, false, err
	}

	owner, err := s.ownership.OwnerOf(ctx, key)
	if err != nil {
		return Record{}, false, dErrors.Wrap(dErrors.CodeUnavailable, "ownership lookup failed", err).WithKey(key)
	}
	if owner != caller {
		if s.metrics != nil {
			s.metrics.UnauthorizedAttempts.Inc()
		}
		return Record{}, false, dErrors.New(dErrors.CodeUnauthorized, "caller does not own token").WithKey(key)
	}

	accountRecord, err := s.accounts.GetOrCreate(ctx, key)
	if err != nil {
		return Record{}, false, err
	}

	registeredAt := requestcontext.Now(ctx)
	record := Record{
		Key:          key,
		AccountID:    accountRecord.AccountID,
		Name:         s.naming.Name(key),
		URI:          s.naming.URI(key),
		RegisteredAt: registeredAt,
		Registered:   true,
	}
	stored, created, err := s.store.CreateIfAbsent(ctx, record)
	if err != nil {
		return Record{}, false, dErrors.Wrap(dErrors.CodeCreationFailed, "asset registration failed", err).WithKey(key)
	}
	if !created {
		if s.metrics != nil {
			s.metrics.DuplicateRegistrations.Inc()
		}
		return stored, false, nil
	}

	if s.metrics != nil {
		s.metrics.AssetsRegistered.Inc()
	}
	s.logger.InfoContext(ctx, "asset registered",
		"key", key.String(),
		"asset_id", stored.AccountID.String(),
		"name", stored.Name,
	)
	if err := s.publisher.Emit(ctx, events.Event{
		Kind:          events.KindAssetRegistered,
		AccountID:     stored.AccountID,
		ChainID:       key.ChainID,
		TokenContract: key.TokenContract,
		TokenID:       key.TokenID,
		Name:          stored.Name,
		URI:           stored.URI,
		RegisteredAt:  stored.RegisteredAt,
	}); err != nil {
		s.logger.ErrorContext(ctx, "emit event failed",
			"kind", string(events.KindAssetRegistered),
			"key", key.String(),
			"error", err,
		)
	}
	return stored, true, nil
}

// Lookup returns the asset record for key.
//
// Errors: CodeNotFound when the key was never registered.
func (s *Service) Lookup(ctx context.Context, key domain.Key) (Record, error) {
	record, err := s.store.Find(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Record{}, dErrors.New(dErrors.CodeNotFound, "asset not registered").WithKey(key)
		}
		return Record{}, dErrors.Wrap(dErrors.CodeUnavailable, "asset lookup failed", err).WithKey(key)
	}
	return record, nil
}

// IsRegistered reports whether assetID names a registered asset. This is the
// read-only capability check cross-module consumers use before acting.
func (s *Service) IsRegistered(ctx context.Context, assetID domain.Address) (bool, error) {
	record, err := s.store.FindByAccount(ctx, assetID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(dErrors.CodeUnavailable, "asset lookup failed", err)
	}
	return record.Registered, nil
}

// DeriveAddress previews the account address for key without side effects.
// Exposed for pre-registration labeling and auditing.
func (s *Service) DeriveAddress(key domain.Key) domain.Address {
	return s.accounts.DeriveAddress(key)
}
