package jwt

import (
	"testing"
	"time"

	"medassist/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(secret string, access time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  access,
		RefreshExpiry: time.Hour,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := newTestService("secret", 15*time.Minute)
	userID := uuid.New()

	token, tokenID, err := s.GenerateAccessToken(userID, "doc@example.com", 2)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "doc@example.com", claims.Email)
	assert.Equal(t, 2, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)

	refresh, refreshID, err := s.GenerateRefreshToken(userID, "doc@example.com", 2)
	require.NoError(t, err)
	assert.NotEqual(t, tokenID, refreshID)

	claims, err = s.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, _, err := newTestService("one", time.Minute).GenerateAccessToken(uuid.New(), "a@b.c", 1)
	require.NoError(t, err)

	_, err = newTestService("two", time.Minute).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	s := newTestService("secret", -time.Minute)
	token, _, err := s.GenerateAccessToken(uuid.New(), "a@b.c", 1)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}
