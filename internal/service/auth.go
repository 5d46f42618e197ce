package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
	"estatehub-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type authService struct {
	userRepo    repository.UserRepository
	revokedRepo repository.RevokedTokenRepository
	tokens      security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, revokedRepo repository.RevokedTokenRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo:    userRepo,
		revokedRepo: revokedRepo,
		tokens:      tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error) {
	logger.EnterMethod(ctx, "authService.Login", "email", email)

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, err
		}
		logger.ExitMethodWithError(ctx, "authService.Login", ErrInvalidCredentials, "reason", "unknown email")
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.ExitMethodWithError(ctx, "authService.Login", ErrInvalidCredentials, "userID", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.generateTokens(user)
	if err != nil {
		return nil, nil, err
	}
	logger.ExitMethod(ctx, "authService.Login", "userID", user.ID, "role", user.Role)
	return pair, user, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != security.TokenTypeRefresh {
		return nil, security.ErrWrongTokenType
	}
	revoked, err := s.revokedRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, security.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, security.ErrInvalidToken
		}
		return nil, err
	}
	if err := s.revokedRepo.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAtTime()); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	return s.generateTokens(user)
}

// Logout revokes the access token used for the call and, when given, the
// caller's refresh token.
func (s *authService) Logout(ctx context.Context, access *security.UserClaims, refreshToken string) error {
	if err := s.revokedRepo.Revoke(ctx, access.ID, access.UserID, access.ExpiresAtTime()); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil || claims.Type != security.TokenTypeRefresh || claims.UserID != access.UserID {
		logger.Debug("Ignoring unusable refresh token on logout", "userID", access.UserID)
		return nil
	}
	if err := s.revokedRepo.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAtTime()); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.revokedRepo.IsRevoked(ctx, jti)
}

func (s *authService) generateTokens(user *domain.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
