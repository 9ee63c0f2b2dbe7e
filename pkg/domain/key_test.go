package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tokenbound/pkg/domainerrors"
)

func mustAddress(t *testing.T, s string) Address {
	t.Helper()
	a, err := ParseAddress(s)
	require.NoError(t, err)
	return a
}

func TestNewKey(t *testing.T) {
	contract := mustAddress(t, "0x00000000000000000000000000000000000000aa")

	t.Run("accepts well-formed tuple", func(t *testing.T) {
		k, err := NewKey(1, contract, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1), k.ChainID)
		assert.Equal(t, uint64(42), k.TokenID)
	})

	t.Run("token id zero is valid", func(t *testing.T) {
		_, err := NewKey(1, contract, 0)
		assert.NoError(t, err)
	})

	t.Run("rejects non-positive chain id", func(t *testing.T) {
		for _, chainID := range []int64{0, -1} {
			_, err := NewKey(chainID, contract, 42)
			require.Error(t, err)
			assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
		}
	})

	t.Run("rejects zero token contract", func(t *testing.T) {
		_, err := NewKey(1, Address{}, 42)
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})
}

func TestKeyStringRoundTrip(t *testing.T) {
	contract := mustAddress(t, "0x00000000000000000000000000000000000000aa")
	k, err := NewKey(137, contract, 9001)
	require.NoError(t, err)

	assert.Equal(t, "137/0x00000000000000000000000000000000000000aa/9001", k.String())

	back, err := ParseKey(k.String())
	require.NoError(t, err)
	assert.Equal(t, k, back)
}

func TestParseKey_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing parts": "1/0x00000000000000000000000000000000000000aa",
		"bad chain":     "x/0x00000000000000000000000000000000000000aa/1",
		"bad contract":  "1/nothex/1",
		"bad token":     "1/0x00000000000000000000000000000000000000aa/-1",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseKey(input)
			require.Error(t, err)
			assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
		})
	}
}

func TestKeyEquality(t *testing.T) {
	contract := mustAddress(t, "0x00000000000000000000000000000000000000aa")
	a, err := NewKey(1, contract, 42)
	require.NoError(t, err)
	b, err := NewKey(1, contract, 42)
	require.NoError(t, err)
	c, err := NewKey(1, contract, 43)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
