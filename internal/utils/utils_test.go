package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("test-secret", 42, "ADMIN", 5)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(5*time.Minute), at.Exp, 2*time.Second)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "ADMIN", claims["role"])
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)
	assert.Equal(t, HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw))
	assert.Len(t, HashRefreshRaw(rt.Raw), 64)
}
