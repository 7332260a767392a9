package auth

import (
	"testing"
	"time"

	"github.com/ecomercado/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "ecomercado-test",
	})
}

func TestIssuePair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.IssuePair(userID, "ana@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.IssuePair(userID, "ana@example.com")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token rejected as access", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-different-secret",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "ecomercado-test",
		})
		_, err := other.ValidateAccessToken(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestVerifyRefresh(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.IssuePair(userID, "ana@example.com")
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		gotID, gotEmail, err := svc.VerifyRefresh(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, "ana@example.com", gotEmail)
	})

	t.Run("access token rejected as refresh", func(t *testing.T) {
		_, _, err := svc.VerifyRefresh(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "ecomercado-test",
	})

	pair, err := svc.IssuePair(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshSecretFallback(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "only-one-secret",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "ecomercado-test",
	})

	pair, err := svc.IssuePair(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	_, _, err = svc.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)
}
