package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiryHint(t *testing.T) {
	exp := time.Now().Add(1 * time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"sub": "u1",
	}).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	got, ok := tokenExpiryHint(signed)
	require.True(t, ok)
	require.True(t, got.Equal(exp))
}

func TestTokenExpiryHintWithoutExpClaim(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
	}).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	_, ok := tokenExpiryHint(signed)
	require.False(t, ok)
}

// Tokens are opaque to the client; a non-JWT value simply yields no hint.
func TestTokenExpiryHintOpaqueToken(t *testing.T) {
	_, ok := tokenExpiryHint("abc")
	require.False(t, ok)
}
