package asset

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"tokenbound/pkg/domain"
)

// Store persists asset records. Only the asset registry writes; cross-module
// consumers read through the service's lookup methods.
type Store interface {
	// CreateIfAbsent inserts record unless a record for its key already
	// exists. Returns the stored record and whether this call created it.
	CreateIfAbsent(ctx context.Context, record Record) (Record, bool, error)

	// Find returns the record for key, or sentinel.ErrNotFound.
	Find(ctx context.Context, key domain.Key) (Record, error)

	// FindByAccount returns the record whose backing account is accountID,
	// or sentinel.ErrNotFound. The account id doubles as the asset id.
	FindByAccount(ctx context.Context, accountID domain.Address) (Record, error)
}

// OwnershipVerifier answers who owns a token. Implemented by the external
// token collaborator; the registry only compares the answer to the caller.
type OwnershipVerifier interface {
	OwnerOf(ctx context.Context, key domain.Key) (domain.Address, error)
}
