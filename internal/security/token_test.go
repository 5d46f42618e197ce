package security_test

import (
	"testing"
	"time"

	"estatehub-backend/internal/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := security.NewTokenManager("test-secret", time.Minute, time.Hour)

	access, err := tm.GenerateAccessToken(42, "tenant@example.com", "tenant")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "tenant", claims.Role)
	assert.Equal(t, security.TokenTypeAccess, claims.Type)
	assert.NotEmpty(t, claims.ID)

	refresh, err := tm.GenerateRefreshToken(42, "tenant@example.com", "tenant")
	require.NoError(t, err)
	refreshClaims, err := tm.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, security.TokenTypeRefresh, refreshClaims.Type)
	assert.NotEqual(t, claims.ID, refreshClaims.ID)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := security.NewTokenManager("test-secret", time.Minute, time.Hour)

	t.Run("WrongSecret", func(t *testing.T) {
		other := security.NewTokenManager("other-secret", time.Minute, time.Hour)
		token, err := other.GenerateAccessToken(1, "a@example.com", "owner")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		claims := security.UserClaims{
			UserID: 1,
			Type:   security.TokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "estatehub-auth",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
