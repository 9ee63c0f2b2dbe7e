package account

import (
	"context"

	"tokenbound/pkg/domain"
)

// Store persists account records. Mutation happens only through
// CreateIfAbsent so the at-most-one-record invariant lives in one place.
type Store interface {
	// CreateIfAbsent inserts record unless a record for its key already
	// exists. It returns the stored record (the new one or the prior one)
	// and whether this call created it. First writer wins under
	// concurrent calls for the same key.
	CreateIfAbsent(ctx context.Context, record Record) (Record, bool, error)

	// Find returns the record for key, or sentinel.ErrNotFound.
	Find(ctx context.Context, key domain.Key) (Record, error)
}
