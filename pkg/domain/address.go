package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	dErrors "tokenbound/pkg/domainerrors"
)

// AddressLength is the byte length of account and token contract identifiers.
const AddressLength = 20

// Address identifies an account or token contract. The zero value is not a
// valid token contract; construct via ParseAddress at trust boundaries.
type Address [AddressLength]byte

// ParseAddress constructs an Address from external input.
//
// Accepts 40 hex characters with an optional 0x prefix, case-insensitive.
// Errors: returns CodeInvalidInput for anything else.
func ParseAddress(s string) (Address, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != AddressLength*2 {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("address must be %d hex characters", AddressLength*2))
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address is not valid hex")
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// BytesToAddress truncates or left-pads b to AddressLength, keeping the
// rightmost bytes. Used when deriving addresses from hash output.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// IsZero reports whether the address is the all-zero value.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte {
	return a[:]
}

// String returns the canonical 0x-prefixed lowercase hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler so addresses render as hex in
// JSON payloads and event streams.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
