package domain

import (
	"fmt"
	"strconv"
	"strings"

	dErrors "tokenbound/pkg/domainerrors"
)

// Key is the derivation key: the (chain, token contract, token id) tuple that
// identifies one logical asset for the system's lifetime. Immutable once
// formed; two keys are equal iff all three fields are equal.
type Key struct {
	ChainID       int64
	TokenContract Address
	TokenID       uint64
}

// NewKey constructs a Key from external input, enforcing well-formedness.
//
// Errors: returns CodeInvalidInput when the chain id is not positive or the
// token contract is the zero address.
func NewKey(chainID int64, tokenContract Address, tokenID uint64) (Key, error) {
	if chainID <= 0 {
		return Key{}, dErrors.New(dErrors.CodeInvalidInput, "chain id must be positive")
	}
	if tokenContract.IsZero() {
		return Key{}, dErrors.New(dErrors.CodeInvalidInput, "token contract cannot be the zero address")
	}
	return Key{ChainID: chainID, TokenContract: tokenContract, TokenID: tokenID}, nil
}

// Validate re-checks the well-formedness rules on an already-formed key.
func (k Key) Validate() error {
	_, err := NewKey(k.ChainID, k.TokenContract, k.TokenID)
	return err
}

// String returns the canonical "chain/contract/token" form. This is the value
// used for map keys, request coalescing, and cache keys.
func (k Key) String() string {
	return fmt.Sprintf("%d/%s/%d", k.ChainID, k.TokenContract, k.TokenID)
}

// ParseKey is the inverse of String.
func ParseKey(s string) (Key, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 3 {
		return Key{}, dErrors.New(dErrors.CodeInvalidInput, "key must have chain/contract/token form")
	}
	chainID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Key{}, dErrors.New(dErrors.CodeInvalidInput, "invalid chain id")
	}
	contract, err := ParseAddress(parts[1])
	if err != nil {
		return Key{}, err
	}
	tokenID, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return Key{}, dErrors.New(dErrors.CodeInvalidInput, "invalid token id")
	}
	return NewKey(chainID, contract, tokenID)
}
