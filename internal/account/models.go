package account

import (
	"time"

	"tokenbound/internal/derive"
	"tokenbound/pkg/domain"
)

// Record is the account registry's row for one derivation key. Created
// exactly once per key and never mutated; the AccountID is derived from the
// key, not chosen, so collisions are precluded by construction.
type Record struct {
	Key              domain.Key
	AccountID        domain.Address
	ImplementationID domain.Address
	Salt             derive.Salt
	CreatedAt        time.Time
}
