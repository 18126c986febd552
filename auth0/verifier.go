package auth0

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims represents the decoded payload of a verified token. Permissions is
// nil when the claim is absent, which is distinct from an empty list.
type Claims struct {
	jwt.RegisteredClaims
	Permissions []string `json:"permissions"`
}

// HasPermission reports whether the permission list contains the given
// permission string
func (c *Claims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CheckPermission validates that the required permission is present in the
// claim set. A missing permissions claim is a 400, an unsatisfied permission
// a 401.
func CheckPermission(permission string, claims *Claims) error {
	if claims.Permissions == nil {
		return ErrNoPermissionsClaim
	}
	if !claims.HasPermission(permission) {
		return ErrPermissionNotFound
	}
	return nil
}

// Verifier validates bearer tokens issued by the identity provider against
// its published key set
type Verifier struct {
	domain     string
	audience   string
	issuer     string
	jwksURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds configuration for the Verifier
type Config struct {
	// Domain is the identity provider domain, e.g. "tenant.au.auth0.com"
	Domain string

	// Audience is the expected "aud" claim
	Audience string

	// JWKSURL overrides the well-known key set URL (used in tests)
	JWKSURL string

	// HTTPTimeout bounds the key set fetch
	HTTPTimeout time.Duration
}

// NewVerifier creates a new token verifier
func NewVerifier(cfg Config, logger *zap.Logger) *Verifier {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}

	jwksURL := cfg.JWKSURL
	if jwksURL == "" {
		jwksURL = fmt.Sprintf("https://%s/.well-known/jwks.json", cfg.Domain)
	}

	return &Verifier{
		domain:   cfg.Domain,
		audience: cfg.Audience,
		issuer:   fmt.Sprintf("https://%s/", cfg.Domain),
		jwksURL:  jwksURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// Verify validates a token's signature, issuer, audience and expiry, and
// returns the decoded claim set unchanged. All failures are *AuthError
// values carrying the status the failure maps to.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.keyFunc(ctx),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		var authErr *AuthError
		switch {
		case errors.As(err, &authErr):
			return nil, authErr
		case errors.Is(err, jwt.ErrTokenExpired):
			v.logger.Debug("token expired")
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer):
			v.logger.Debug("claim mismatch", zap.Error(err))
			return nil, ErrInvalidClaims
		default:
			v.logger.Debug("token verification failed", zap.Error(err))
			return nil, ErrUnparseable
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrUnparseable
	}

	return claims, nil
}

// keyFunc resolves the verification key for a token: it reads the key id
// from the unverified token header and looks it up in a freshly fetched
// key set.
func (v *Verifier) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, ErrKidMissing
		}

		keySet, err := v.FetchKeySet(ctx)
		if err != nil {
			// an unreachable key service means "cannot authenticate",
			// never a server error
			v.logger.Warn("key set fetch failed", zap.Error(err))
			return nil, ErrUnparseable
		}

		key, found := keySet.Key(kid)
		if !found {
			return nil, ErrKeyNotFound
		}

		return key.RSAPublicKey()
	}
}
