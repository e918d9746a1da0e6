package ports

import "github.com/smallerp/erp-gateway/internal/core/domain"

// TokenService issues and verifies the signed session credential.
type TokenService interface {
	// Issue signs a credential for the given identity. The expiration is
	// always issued-at plus the fixed session TTL.
	Issue(userID, username, role string) (string, error)

	// Verify checks signature and expiration and returns the decoded
	// payload. Every failure mode returns domain.ErrTokenInvalid.
	Verify(token string) (*domain.TokenClaims, error)
}
