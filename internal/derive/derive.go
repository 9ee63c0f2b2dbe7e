// Package derive computes deterministic account addresses for derivation
// keys. The derivation is a pure function: the same (registry,
// implementation, salt, chain, contract, token) inputs always produce the
// same address, so callers can predict an account's address before it is
// created and registries can detect "already created" from the key alone.
package derive

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"tokenbound/pkg/domain"
)

// SaltLength is the byte length of the derivation salt.
const SaltLength = 32

// Salt is the fixed derivation salt mixed into every address.
type Salt [SaltLength]byte

// DefaultSalt is the deployment-wide salt constant. Changing it changes
// every derived address, so it is fixed for the system's lifetime.
var DefaultSalt = Salt{
	0x74, 0x6f, 0x6b, 0x65, 0x6e, 0x62, 0x6f, 0x75,
	0x6e, 0x64, 0x2d, 0x61, 0x63, 0x63, 0x6f, 0x75,
	0x6e, 0x74, 0x2d, 0x73, 0x61, 0x6c, 0x74, 0x2d,
	0x76, 0x31, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// ParseSalt is the inverse of Salt.String.
func ParseSalt(s string) (Salt, error) {
	raw := strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) != SaltLength {
		return Salt{}, fmt.Errorf("salt must be %d hex bytes", SaltLength)
	}
	var salt Salt
	copy(salt[:], b)
	return salt, nil
}

// String returns the salt as 0x-prefixed hex.
func (s Salt) String() string {
	return "0x" + hex.EncodeToString(s[:])
}

// Deriver computes account addresses for one (registry, implementation,
// salt) deployment. Stateless and safe for concurrent use.
type Deriver struct {
	registryID       domain.Address
	implementationID domain.Address
	salt             Salt
}

// New constructs a Deriver bound to the given deployment identities.
func New(registryID, implementationID domain.Address, salt Salt) *Deriver {
	return &Deriver{
		registryID:       registryID,
		implementationID: implementationID,
		salt:             salt,
	}
}

// ImplementationID returns the account implementation identity addresses are
// derived against.
func (d *Deriver) ImplementationID() domain.Address {
	return d.implementationID
}

// Salt returns the deployment salt.
func (d *Deriver) Salt() Salt {
	return d.salt
}

// DeriveAddress returns the account address for key. Pure and side-effect
// free; the address is the trailing 20 bytes of a keccak-256 digest over the
// length-prefixed derivation fields, so distinct inputs cannot collide by
// framing ambiguity.
func (d *Deriver) DeriveAddress(key domain.Key) domain.Address {
	h := sha3.NewLegacyKeccak256()
	writeFramed(h, d.registryID.Bytes())
	writeFramed(h, d.implementationID.Bytes())
	writeFramed(h, d.salt[:])
	writeFramed(h, beInt64(key.ChainID))
	writeFramed(h, key.TokenContract.Bytes())
	writeFramed(h, beUint64(key.TokenID))
	return domain.BytesToAddress(h.Sum(nil))
}

func writeFramed(h interface{ Write([]byte) (int, error) }, field []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(field)))
	_, _ = h.Write(length[:])
	_, _ = h.Write(field)
}

func beInt64(v int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return b[:]
}

func beUint64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}
