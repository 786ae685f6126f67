package sha1hex_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlebeau-guideline/okon/btree"
	"github.com/jlebeau-guideline/okon/sha1hex"
)

func TestEncodeProducesUppercase(t *testing.T) {
	var key btree.Key
	key[0] = 0xab
	key[1] = 0xcd
	key[19] = 0xef

	got := sha1hex.Encode(key)

	assert.Len(t, got, sha1hex.TextLen)
	assert.Equal(t, got, strings.ToUpper(got))
	assert.Equal(t, "ABCD0000000000000000000000000000000000EF", got)
}

func TestDecodeIsCaseInsensitive(t *testing.T) {
	upper := "ABCDEF0123456789ABCDEF0123456789ABCDEF01"
	lower := "abcdef0123456789abcdef0123456789abcdef01"
	mixed := "AbCdEf0123456789aBcDeF0123456789ABCdef01"

	keyUpper, err := sha1hex.Decode(upper)
	require.NoError(t, err)
	keyLower, err := sha1hex.Decode(lower)
	require.NoError(t, err)
	keyMixed, err := sha1hex.Decode(mixed)
	require.NoError(t, err)

	assert.Equal(t, keyUpper, keyLower)
	assert.Equal(t, keyUpper, keyMixed)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var key btree.Key
	for i := range key {
		key[i] = byte(i * 7)
	}

	text := sha1hex.Encode(key)
	decoded, err := sha1hex.Decode(text)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestDecodeEncodeRoundTripUppercases(t *testing.T) {
	lower := "abcdef0123456789abcdef0123456789abcdef01"

	key, err := sha1hex.Decode(lower)
	require.NoError(t, err)

	assert.Equal(t, "ABCDEF0123456789ABCDEF0123456789ABCDEF01", sha1hex.Encode(key))
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := sha1hex.Decode("abcd")
	assert.ErrorIs(t, err, sha1hex.ErrInvalidHex)
}

func TestDecodeRejectsInvalidCharacters(t *testing.T) {
	bad := "ZZCDEF0123456789ABCDEF0123456789ABCDEF01"
	_, err := sha1hex.Decode(bad)
	assert.ErrorIs(t, err, sha1hex.ErrInvalidHex)
}
