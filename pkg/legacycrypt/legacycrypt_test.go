package legacycrypt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestNewCodecRejectsBadKeys(t *testing.T) {
	_, err := NewCodec("")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewCodec("deadbeef")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewCodec(strings.Repeat("zz", 32))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = NewCodec(testKey)
	assert.NoError(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	for _, plain := range []string{"", "a", "sixteen-byte-msg", "a longer password with spaces and ünïcödé"} {
		value, err := codec.Encrypt(plain)
		require.NoError(t, err)
		assert.True(t, IsLegacyValue(value))

		out, err := codec.Decrypt(value)
		require.NoError(t, err)
		assert.Equal(t, plain, out)
	}
}

func TestEncryptUsesFreshIV(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	first, err := codec.Encrypt("same input")
	require.NoError(t, err)
	second, err := codec.Encrypt("same input")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCompare(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	stored, err := codec.Encrypt("secret")
	require.NoError(t, err)

	assert.True(t, codec.Compare(stored, "secret"))
	assert.False(t, codec.Compare(stored, "not-secret"))

	// malformed stored values compare false, never panic or error
	assert.False(t, codec.Compare("", "secret"))
	assert.False(t, codec.Compare("no-separator", "secret"))
	assert.False(t, codec.Compare("abcd:ef01", "secret"))
	assert.False(t, codec.Compare(strings.Repeat("00", 16)+":zz", "secret"))
	assert.False(t, codec.Compare("$2a$10$abcdefghijklmnopqrstuv", "secret"))
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	for _, value := range []string{
		"",
		"nocolon",
		"short:abcd",
		strings.Repeat("00", 16) + ":",
		strings.Repeat("00", 16) + ":00",
	} {
		_, err := codec.Decrypt(value)
		assert.ErrorIs(t, err, ErrInvalidFormat, "value %q", value)
	}
}

func TestIsLegacyValue(t *testing.T) {
	assert.True(t, IsLegacyValue(strings.Repeat("00", 16)+":deadbeef"))
	assert.False(t, IsLegacyValue("$2a$10$abcdefghijklmnopqrstuv"))
	assert.False(t, IsLegacyValue("plain"))
	assert.False(t, IsLegacyValue("short:deadbeef"))
}
