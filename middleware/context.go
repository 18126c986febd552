package middleware

import (
	"context"

	"github.com/cafeops/drinkshop/auth0"
)

// Context key type to avoid collisions
type contextKey string

// ClaimsKey is the context key for the decoded token claims
const ClaimsKey contextKey = "claims"

// WithClaims adds decoded token claims to the context
func WithClaims(ctx context.Context, claims *auth0.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaimsFromContext retrieves decoded token claims from context
func GetClaimsFromContext(ctx context.Context) *auth0.Claims {
	if val := ctx.Value(ClaimsKey); val != nil {
		if claims, ok := val.(*auth0.Claims); ok {
			return claims
		}
	}
	return nil
}
