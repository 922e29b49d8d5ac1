package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher(t *testing.T) {
	cipher, err := NewCipher("a-long-enough-vault-secret")
	require.NoError(t, err)

	t.Run("round-trips a secret", func(t *testing.T) {
		encrypted, err := cipher.Encrypt("hunter2")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter2", encrypted)

		decrypted, err := cipher.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, "hunter2", decrypted)
	})

	t.Run("produces a different ciphertext per call", func(t *testing.T) {
		first, err := cipher.Encrypt("same input")
		require.NoError(t, err)
		second, err := cipher.Encrypt("same input")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("rejects tampered ciphertext", func(t *testing.T) {
		encrypted, err := cipher.Encrypt("hunter2")
		require.NoError(t, err)

		tampered := []byte(encrypted)
		tampered[len(tampered)-5] ^= 1

		_, err = cipher.Decrypt(string(tampered))
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		_, err := cipher.Decrypt("not base64 at all!!!")
		assert.ErrorIs(t, err, ErrInvalidCiphertext)

		_, err = cipher.Decrypt("c2hvcnQ=")
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	})

	t.Run("a different secret cannot decrypt", func(t *testing.T) {
		other, err := NewCipher("a-completely-different-secret")
		require.NoError(t, err)

		encrypted, err := cipher.Encrypt("hunter2")
		require.NoError(t, err)

		_, err = other.Decrypt(encrypted)
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	})
}

func TestNewCipher_EmptySecret(t *testing.T) {
	_, err := NewCipher("")
	assert.Error(t, err)
}
