package utils

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", "user-123", "staff", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-123", claims["sub"])
	assert.Equal(t, "staff", claims["role"])
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	tok, err := NewAccessToken("secret", "user-123", "admin", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

func TestRefreshToken_HashIsDeterministic(t *testing.T) {
	ref, err := NewRefreshToken(7)
	require.NoError(t, err)
	require.NotEmpty(t, ref.Raw)

	assert.Equal(t, HashRefreshRaw(ref.Raw), HashRefreshRaw(ref.Raw))

	other, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, HashRefreshRaw(ref.Raw), HashRefreshRaw(other.Raw))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestNewTicketCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := NewTicketCode()
		assert.True(t, strings.HasPrefix(code, "TICKET-"))
		assert.False(t, seen[code])
		seen[code] = true
	}
}
