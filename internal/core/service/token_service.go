package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/solosphere/jobs-api/internal/core/domain"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

// DefaultTokenTTL is the lifetime of a session token.
const DefaultTokenTTL = 365 * 24 * time.Hour

// Claims is the payload of a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 session tokens. It keeps no state of
// its own; revocation is only possible when a denylist is supplied.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	denylist ports.TokenDenylist
	now      func() time.Time
	log      zerolog.Logger
}

// NewTokenService builds a TokenService. denylist may be nil.
func NewTokenService(secret string, ttl time.Duration, denylist ports.TokenDenylist, log zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		denylist: denylist,
		now:      time.Now,
		log:      log,
	}
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a new token for email. Every call yields a distinct token.
func (s *TokenService) Issue(_ context.Context, email string) (string, error) {
	if email == "" {
		return "", domain.ErrInvalidIdentity
	}

	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded
// identity. Every failure is reported as domain.ErrUnauthorized.
func (s *TokenService) Verify(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.log.Error().Err(err).Str("jti", claims.ID).Msg("denylist lookup failed")
			return "", fmt.Errorf("%w: denylist lookup failed", domain.ErrUnauthorized)
		}
		if revoked {
			return "", fmt.Errorf("%w: token revoked", domain.ErrUnauthorized)
		}
	}

	return claims.Email, nil
}

// Revoke records the token id in the denylist until the token would have
// expired. Tokens that do not verify are ignored.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if s.denylist == nil || token == "" {
		return nil
	}

	claims, err := s.parse(token)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info().Str("email", claims.Email).Str("jti", claims.ID).Msg("session token revoked")
	return nil
}

func (s *TokenService) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !parsed.Valid || claims.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
