// Package chain holds the clients for on-chain collaborators the registries
// depend on: token ownership lookups and the licensing module. Mock
// implementations use deterministic data and a configurable latency to mimic
// real-world calls.
package chain

import (
	"context"
	"time"

	"golang.org/x/crypto/sha3"

	"tokenbound/pkg/domain"
)

// MockOwnershipClient answers ownership lookups deterministically: unless a
// FixedOwner is set, the owner of a token is a pseudo-address hashed from the
// token key, so callers in demos and tests can compute who to register as.
type MockOwnershipClient struct {
	Latency    time.Duration
	FixedOwner domain.Address
}

func (c MockOwnershipClient) OwnerOf(_ context.Context, key domain.Key) (domain.Address, error) {
	time.Sleep(c.Latency)
	if !c.FixedOwner.IsZero() {
		return c.FixedOwner, nil
	}
	return MockOwner(key), nil
}

// MockOwner is the deterministic owner the mock client reports for a key.
func MockOwner(key domain.Key) domain.Address {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte("mock-owner:"))
	h.Write([]byte(key.String()))
	return domain.BytesToAddress(h.Sum(nil))
}

// MockLicensingClient accepts every derivative registration after the
// configured latency. Flag controls deterministic rejection for tests.
type MockLicensingClient struct {
	Latency time.Duration
	Err     error
}

func (c MockLicensingClient) RegisterDerivative(_ context.Context, _ domain.Address, _ []uint64, _ []byte, _ domain.Address) error {
	time.Sleep(c.Latency)
	return c.Err
}
