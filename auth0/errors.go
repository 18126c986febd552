package auth0

import "net/http"

// Error codes surfaced in the error envelope, matching the identity
// provider's conventions.
const (
	CodeHeaderMissing = "authorization_header_missing"
	CodeInvalidHeader = "invalid_header"
	CodeInvalidClaims = "invalid_claims"
	CodeTokenExpired  = "token_expired"
	CodeUnauthorized  = "unauthorized"
)

// AuthError is a standardized way to communicate auth failure modes.
// It carries the HTTP status the failure maps to; the guard middleware
// decides whether the status and description survive to the client.
type AuthError struct {
	Code        string
	Description string
	Status      int
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.Description
}

// NewAuthError creates a new AuthError
func NewAuthError(code, description string, status int) *AuthError {
	return &AuthError{
		Code:        code,
		Description: description,
		Status:      status,
	}
}

var (
	// ErrHeaderMissing is returned when the Authorization header is absent
	ErrHeaderMissing = NewAuthError(CodeHeaderMissing, "Authorization header is expected.", http.StatusUnauthorized)

	// ErrNotBearer is returned when the header scheme is not Bearer
	ErrNotBearer = NewAuthError(CodeInvalidHeader, `Authorization header must start with "Bearer".`, http.StatusUnauthorized)

	// ErrTokenMissing is returned when the header has a scheme but no token
	ErrTokenMissing = NewAuthError(CodeInvalidHeader, "Token not found.", http.StatusUnauthorized)

	// ErrHeaderParts is returned when the header splits into more than two parts
	ErrHeaderParts = NewAuthError(CodeInvalidHeader, "Authorization header must be bearer token.", http.StatusUnauthorized)

	// ErrKidMissing is returned when the token header carries no key id
	ErrKidMissing = NewAuthError(CodeInvalidHeader, "Authorization malformed.", http.StatusUnauthorized)

	// ErrKeyNotFound is returned when no key in the key set matches the token's key id
	ErrKeyNotFound = NewAuthError(CodeInvalidHeader, "Unable to find the appropriate key.", http.StatusBadRequest)

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = NewAuthError(CodeTokenExpired, "Token expired.", http.StatusUnauthorized)

	// ErrInvalidClaims is returned on an audience or issuer mismatch
	ErrInvalidClaims = NewAuthError(CodeInvalidClaims, "Incorrect claims. Please, check the audience and issuer.", http.StatusUnauthorized)

	// ErrUnparseable is returned on any other parse or verification failure
	ErrUnparseable = NewAuthError(CodeInvalidHeader, "Unable to parse authentication token.", http.StatusBadRequest)

	// ErrNoPermissionsClaim is returned when the claim set has no permissions list
	ErrNoPermissionsClaim = NewAuthError(CodeInvalidClaims, "Permissions not included in JWT.", http.StatusBadRequest)

	// ErrPermissionNotFound is returned when the required permission is absent
	ErrPermissionNotFound = NewAuthError(CodeUnauthorized, "Permission not found.", http.StatusUnauthorized)
)
