// Package events defines the registry event stream. Registries emit events
// through a Publisher; sinks fan them out to listeners. Keep the event shape
// transport-agnostic so sinks (memory, Kafka) can serialize as they need.
package events

import (
	"time"

	"github.com/google/uuid"

	"tokenbound/pkg/domain"
)

// Kind names an observable registry event.
type Kind string

const (
	// KindAccountCreated is emitted at most once per key, when the backing
	// account is materialized.
	KindAccountCreated Kind = "account.created"

	// KindAccountRegistered is emitted at most once per key, alongside the
	// creation event, announcing the account at the account-registry layer.
	KindAccountRegistered Kind = "account.registered"

	// KindAssetRegistered is emitted at most once per key, on first
	// successful asset registration.
	KindAssetRegistered Kind = "asset.registered"
)

// Event carries one registry occurrence. Fields beyond ID/Kind/Timestamp are
// populated per kind; unset ones marshal as empty.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`

	AccountID        domain.Address `json:"account_id"`
	ImplementationID domain.Address `json:"implementation_id,omitempty"`
	Salt             string         `json:"salt,omitempty"`

	ChainID       int64          `json:"chain_id"`
	TokenContract domain.Address `json:"token_contract"`
	TokenID       uint64         `json:"token_id"`

	// Asset registration fields.
	Name         string    `json:"name,omitempty"`
	URI          string    `json:"uri,omitempty"`
	RegisteredAt time.Time `json:"registered_at,omitzero"`
}

// Key returns the derivation key the event concerns. Used as the partition
// key so all events for one asset stay ordered.
func (e Event) Key() domain.Key {
	return domain.Key{ChainID: e.ChainID, TokenContract: e.TokenContract, TokenID: e.TokenID}
}
