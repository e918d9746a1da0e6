package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smallerp/erp-gateway/internal/core/domain"
)

// sessionClaims is the wire shape of the credential payload.
type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed session credentials.
// It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger

	// now is swapped out in tests to simulate clock movement.
	now func() time.Time
}

func NewTokenService(secret string, ttl time.Duration, log zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = domain.SessionTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

// Issue signs a credential for the given identity. Expiration is always
// issued-at plus the configured TTL. The jti claim makes two issuances for
// the same identity distinct even within the same second.
func (s *TokenService) Issue(userID, username, role string) (string, error) {
	if len(s.secret) == 0 {
		s.log.Error().Msg("token issue attempted without a signing secret")
		return "", domain.ErrTokenSigning
	}
	if userID == "" || username == "" || !domain.ValidRole(role) {
		return "", fmt.Errorf("%w: incomplete identity payload", domain.ErrTokenSigning)
	}

	now := s.now().UTC()
	claims := sessionClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.log.Error().Err(err).Msg("token signing failed")
		return "", fmt.Errorf("%w: %v", domain.ErrTokenSigning, err)
	}
	return signed, nil
}

// Verify checks signature and expiration and returns the decoded payload.
// Missing, malformed, expired, and tampered tokens all come back as the one
// domain.ErrTokenInvalid; callers never learn which check failed.
func (s *TokenService) Verify(token string) (*domain.TokenClaims, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	if claims.Subject == "" || claims.Username == "" || !domain.ValidRole(claims.Role) {
		return nil, domain.ErrTokenInvalid
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.TokenClaims{
		UserID:    claims.Subject,
		Username:  claims.Username,
		Role:      claims.Role,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// TTL returns the fixed credential lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
