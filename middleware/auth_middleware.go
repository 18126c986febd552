package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cafeops/drinkshop/auth0"
	"github.com/cafeops/drinkshop/services"
	"github.com/cafeops/drinkshop/utils"
)

// TokenVerifier defines the interface for validating bearer tokens
type TokenVerifier interface {
	// Verify validates a token and returns the decoded claim set
	Verify(ctx context.Context, token string) (*auth0.Claims, error)
}

// AuthMiddleware guards protected endpoints: it extracts the bearer token,
// verifies it, and checks the required permission before the wrapped handler
// runs.
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequirePermission returns middleware that runs the full guard for one
// permission string. Extraction and verification failures collapse to a
// plain 401; permission-gate failures keep their own status and description.
// On success the decoded claims are placed in the request context.
func (m *AuthMiddleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := chimw.GetReqID(ctx)

			token, err := ExtractBearerToken(r)
			if err != nil {
				m.logger.Warn("bearer token extraction failed",
					zap.String("request_id", requestID),
					zap.Error(err))
				_ = utils.WriteError(w, services.ErrUnauthorized.Status, services.ErrUnauthorized.Message)
				return
			}

			claims, err := m.verifier.Verify(ctx, token)
			if err != nil {
				m.logger.Warn("token verification failed",
					zap.String("request_id", requestID),
					zap.Error(err))
				_ = utils.WriteError(w, services.ErrUnauthorized.Status, services.ErrUnauthorized.Message)
				return
			}

			if err := auth0.CheckPermission(permission, claims); err != nil {
				var authErr *auth0.AuthError
				if !errors.As(err, &authErr) {
					authErr = auth0.ErrPermissionNotFound
				}
				m.logger.Warn("permission check failed",
					zap.String("request_id", requestID),
					zap.String("permission", permission),
					zap.String("code", authErr.Code))
				_ = utils.WriteError(w, authErr.Status, authErr.Description)
				return
			}

			m.logger.Debug("authorization successful",
				zap.String("request_id", requestID),
				zap.String("permission", permission),
				zap.String("sub", claims.Subject))

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

// ExtractBearerToken pulls the raw token out of the Authorization header.
// The header must be exactly "Bearer <token>", scheme case-insensitive.
func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth0.ErrHeaderMissing
	}

	parts := strings.Fields(header)
	if len(parts) == 0 {
		return "", auth0.ErrHeaderMissing
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return "", auth0.ErrNotBearer
	}
	if len(parts) == 1 {
		return "", auth0.ErrTokenMissing
	}
	if len(parts) > 2 {
		return "", auth0.ErrHeaderParts
	}

	return parts[1], nil
}
