package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := SignToken(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["uid"])
	assert.Equal(t, "user@example.com", claims["user"])
	assert.NotNil(t, claims["exp"])
}

func TestSignToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := SignToken(1, "user@example.com")
	assert.Error(t, err)
}

func TestSignToken_RejectedWithWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "correct-secret")

	tokenString, err := SignToken(1, "user@example.com")
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte("other-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	assert.Error(t, err)
}
