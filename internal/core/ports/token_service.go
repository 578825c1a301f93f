package ports

import (
	"context"
	"time"
)

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(ctx context.Context, email string) (string, error)
	// Verify returns the identity the token was issued for, or
	// domain.ErrUnauthorized.
	Verify(ctx context.Context, token string) (string, error)
	// Revoke forgets a token server-side when a denylist is configured. It is
	// a no-op otherwise; the cookie is cleared by the caller either way.
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// TokenDenylist records revoked token ids until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
