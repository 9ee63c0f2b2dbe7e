package asset

import (
	"time"

	"tokenbound/pkg/domain"
)

// Record marks one token as a registered IP asset. Created on first
// successful registration; Registered flips to true exactly once and is
// never reset. Name and URI are derived from the key at registration time,
// never caller-supplied, so re-deriving them always reproduces the stored
// values.
type Record struct {
	Key          domain.Key
	AccountID    domain.Address
	Name         string
	URI          string
	RegisteredAt time.Time
	Registered   bool
}
