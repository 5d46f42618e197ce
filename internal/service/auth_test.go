package service_test

import (
	"context"
	"testing"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/repository"
	"estatehub-backend/internal/security"
	"estatehub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashedUser(t *testing.T, password string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := tenantUser()
	u.PasswordHash = string(hash)
	return u
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("secret", time.Minute, time.Hour)

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, new(MockRevokedTokenRepo), tokens)
		users.On("GetByEmail", mock.Anything, "tenant@example.com").Return(hashedUser(t, "hunter2"), nil)

		pair, user, err := svc.Login(ctx, " tenant@example.com ", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, int32(3), user.ID)

		claims, err := tokens.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "tenant", claims.Role)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, new(MockRevokedTokenRepo), tokens)
		users.On("GetByEmail", mock.Anything, "tenant@example.com").Return(hashedUser(t, "hunter2"), nil)

		_, _, err := svc.Login(ctx, "tenant@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, new(MockRevokedTokenRepo), tokens)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody@example.com", "x")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("secret", time.Minute, time.Hour)

	t.Run("RotatesToken", func(t *testing.T) {
		users := new(MockUserRepo)
		revoked := new(MockRevokedTokenRepo)
		svc := service.NewAuthService(users, revoked, tokens)

		refresh, err := tokens.GenerateRefreshToken(3, "tenant@example.com", "tenant")
		require.NoError(t, err)
		claims, err := tokens.ValidateToken(refresh)
		require.NoError(t, err)

		revoked.On("IsRevoked", mock.Anything, claims.ID).Return(false, nil)
		users.On("GetByID", mock.Anything, int32(3)).Return(tenantUser(), nil)
		revoked.On("Revoke", mock.Anything, claims.ID, int32(3), mock.AnythingOfType("time.Time")).Return(nil)

		pair, err := svc.Refresh(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		revoked.AssertExpectations(t)
	})

	t.Run("RevokedToken", func(t *testing.T) {
		revoked := new(MockRevokedTokenRepo)
		svc := service.NewAuthService(new(MockUserRepo), revoked, tokens)

		refresh, err := tokens.GenerateRefreshToken(3, "tenant@example.com", "tenant")
		require.NoError(t, err)
		revoked.On("IsRevoked", mock.Anything, mock.Anything).Return(true, nil)

		_, err = svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), new(MockRevokedTokenRepo), tokens)

		access, err := tokens.GenerateAccessToken(3, "tenant@example.com", "tenant")
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("secret", time.Minute, time.Hour)
	revoked := new(MockRevokedTokenRepo)
	svc := service.NewAuthService(new(MockUserRepo), revoked, tokens)

	access, err := tokens.GenerateAccessToken(3, "tenant@example.com", "tenant")
	require.NoError(t, err)
	accessClaims, err := tokens.ValidateToken(access)
	require.NoError(t, err)
	refresh, err := tokens.GenerateRefreshToken(3, "tenant@example.com", "tenant")
	require.NoError(t, err)
	refreshClaims, err := tokens.ValidateToken(refresh)
	require.NoError(t, err)
	foreign, err := tokens.GenerateRefreshToken(4, "buyer@example.com", "buyer")
	require.NoError(t, err)

	revoked.On("Revoke", mock.Anything, accessClaims.ID, int32(3), mock.Anything).Return(nil)
	revoked.On("Revoke", mock.Anything, refreshClaims.ID, int32(3), mock.Anything).Return(nil)

	assert.NoError(t, svc.Logout(ctx, accessClaims, refresh))
	assert.NoError(t, svc.Logout(ctx, accessClaims, foreign))
	revoked.AssertNumberOfCalls(t, "Revoke", 3)
}
