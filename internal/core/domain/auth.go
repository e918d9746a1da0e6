package domain

import (
	"errors"
	"time"
)

// SessionTTL is the fixed validity window of an issued credential.
const SessionTTL = 24 * time.Hour

var (
	// ErrTokenSigning indicates a credential could not be produced
	// (missing or unusable secret, malformed payload).
	ErrTokenSigning = errors.New("token signing failed")

	// ErrTokenInvalid covers every verification failure: missing, malformed,
	// expired, or tampered tokens all collapse into this one error so a
	// caller cannot tell an expired credential from a forged one.
	ErrTokenInvalid = errors.New("invalid token")

	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// TokenClaims is the decoded payload of a verified credential.
type TokenClaims struct {
	UserID    string
	Username  string
	Role      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
