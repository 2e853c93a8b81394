package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecryptRoundTrip(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret access token"), testKey)
	require.NoError(t, err)
	assert.NotEqual(t, "secret access token", encrypted)

	decrypted, err := Decrypt(encrypted, testKey)
	require.NoError(t, err)
	assert.Equal(t, "secret access token", decrypted)
}

func TestEncryptProducesUniqueCiphertexts(t *testing.T) {
	first, err := Encrypt([]byte("same plaintext"), testKey)
	require.NoError(t, err)
	second, err := Encrypt([]byte("same plaintext"), testKey)
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "nonce must differ per encryption")
}

func TestDecryptWrongKey(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), testKey)
	require.NoError(t, err)

	wrongKey := []byte("fedcba9876543210fedcba9876543210")
	_, err = Decrypt(encrypted, wrongKey)
	assert.Error(t, err)
}

func TestDecryptGarbage(t *testing.T) {
	_, err := Decrypt("not base64 at all!!!", testKey)
	assert.Error(t, err)
}

func TestGenerateRandomKey(t *testing.T) {
	key, err := GenerateRandomKey(16)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	other, err := GenerateRandomKey(16)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}
