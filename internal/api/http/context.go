package http

import (
	"context"
	"errors"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/security"
)

type claimsKey struct{}

var errNoCaller = errors.New("caller is not authenticated")

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the token claims injected by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*security.UserClaims)
	return claims, ok && claims != nil
}

// CallerFromContext returns the authenticated user and role.
func CallerFromContext(ctx context.Context) (domain.Caller, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return domain.Caller{}, errNoCaller
	}
	return domain.Caller{UserID: claims.UserID, Role: domain.UserRole(claims.Role)}, nil
}
