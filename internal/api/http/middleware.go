package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"estatehub-backend/internal/config"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthMiddleware struct {
	tokenManager security.TokenManager
	revocations  RevocationChecker
}

func NewAuthMiddleware(tm security.TokenManager, revocations RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, revocations: revocations}
}

// Handler authenticates requests according to the security level of the
// matched route.
func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := ""
		if current := mux.CurrentRoute(r); current != nil {
			route = current.GetName()
		}
		level := config.GetSecurityLevel(route)

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := extractToken(r)
		if !ok {
			writeErrorKind(w, http.StatusUnauthorized, "unauthorized", "authorization token is not provided")
			return
		}

		claims, err := a.tokenManager.ValidateToken(token)
		if err != nil {
			writeErrorKind(w, http.StatusUnauthorized, "unauthorized", "invalid token: "+err.Error())
			return
		}

		if msg := checkSecurityLevel(level, claims); msg != "" {
			writeErrorKind(w, http.StatusForbidden, "forbidden", msg)
			return
		}

		revoked, err := a.revocations.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if revoked {
			writeErrorKind(w, http.StatusUnauthorized, "unauthorized", "token has been revoked")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func extractToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:]), true
	}
	return "", false
}

func checkSecurityLevel(level config.SecurityLevel, claims *security.UserClaims) string {
	switch level {
	case config.SecurityAccess:
		if claims.Type != security.TokenTypeAccess {
			return "access token required"
		}
	case config.SecurityRefresh:
		if claims.Type != security.TokenTypeRefresh {
			return "refresh token required"
		}
	}
	return ""
}

// RequestID tags each request with an id, reusing the client's when given.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one line per request.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.FromContext(r.Context()).Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
