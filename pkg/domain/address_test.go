package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tokenbound/pkg/domainerrors"
)

func TestParseAddress(t *testing.T) {
	t.Run("accepts 0x-prefixed hex", func(t *testing.T) {
		a, err := ParseAddress("0x00000000000000000000000000000000000000aa")
		require.NoError(t, err)
		assert.Equal(t, "0x00000000000000000000000000000000000000aa", a.String())
	})

	t.Run("accepts bare hex", func(t *testing.T) {
		a, err := ParseAddress("00000000000000000000000000000000000000aa")
		require.NoError(t, err)
		assert.Equal(t, byte(0xaa), a[AddressLength-1])
	})

	t.Run("normalizes to lowercase", func(t *testing.T) {
		a, err := ParseAddress("0x00000000000000000000000000000000000000AA")
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower("0x00000000000000000000000000000000000000AA"), a.String())
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ParseAddress("0xabcd")
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})

	t.Run("rejects non-hex", func(t *testing.T) {
		_, err := ParseAddress("0x00000000000000000000000000000000000000zz")
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})
}

func TestBytesToAddress(t *testing.T) {
	t.Run("keeps rightmost bytes of long input", func(t *testing.T) {
		b := make([]byte, 32)
		b[31] = 0x01
		b[11] = 0xff // byte 0 of the trailing 20
		a := BytesToAddress(b)
		assert.Equal(t, byte(0xff), a[0])
		assert.Equal(t, byte(0x01), a[AddressLength-1])
	})

	t.Run("left-pads short input", func(t *testing.T) {
		a := BytesToAddress([]byte{0xbe, 0xef})
		assert.Equal(t, byte(0xbe), a[AddressLength-2])
		assert.Equal(t, byte(0xef), a[AddressLength-1])
		assert.True(t, a[0] == 0)
	})
}

func TestAddressJSONRoundTrip(t *testing.T) {
	a, err := ParseAddress("0x00000000000000000000000000000000000000cc")
	require.NoError(t, err)

	raw, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"`+a.String()+`"`, string(raw))

	var back Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, a, back)
}

func TestAddressIsZero(t *testing.T) {
	var zero Address
	assert.True(t, zero.IsZero())

	a, err := ParseAddress("0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.False(t, a.IsZero())
}
