package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("s3cret-passphrase")
	require.NoError(t, err)
	require.Contains(t, encoded, ".")

	assert.NoError(t, VerifyPassword("s3cret-passphrase", encoded))
	assert.Error(t, VerifyPassword("wrong-password", encoded))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	// Random salt: same input never hashes the same twice.
	assert.NotEqual(t, first, second)
	assert.NoError(t, VerifyPassword("same-password", first))
	assert.NoError(t, VerifyPassword("same-password", second))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedEncoding(t *testing.T) {
	assert.Error(t, VerifyPassword("anything", "no-dot-separator"))
	assert.Error(t, VerifyPassword("anything", "not!base64.hash"))
	assert.Error(t, VerifyPassword("anything", strings.Repeat(".", 3)))
}
