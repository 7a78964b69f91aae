package services

import (
	"context"
	"testing"
	"time"

	"estatehub/config"
	"estatehub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour})

	token, err := auth.IssueToken(ctx, &models.User{BaseModel: models.BaseModel{ID: 42}})
	require.NoError(t, err)

	userID, err := auth.ParseToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour})
	other := NewAuthService(config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
	expired := NewAuthService(config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Minute})

	foreign, err := other.IssueToken(ctx, &models.User{BaseModel: models.BaseModel{ID: 1}})
	require.NoError(t, err)

	stale, err := expired.IssueToken(ctx, &models.User{BaseModel: models.BaseModel{ID: 1}})
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    TOKEN_ISSUER,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not-a-token",
		"wrong secret":   foreign,
		"expired":        stale,
		"none algorithm": noneAlg,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.ParseToken(ctx, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
