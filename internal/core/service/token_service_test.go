package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/solosphere/jobs-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", 0, nil, discardLogger)

	token, err := svc.Issue(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	email, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if email != "alice@example.com" {
		t.Fatalf("expected alice@example.com, got %q", email)
	}
}

func TestTokenService_DefaultLifetimeIs365Days(t *testing.T) {
	svc := NewTokenService("secret", 0, nil, discardLogger)
	if svc.TTL() != 365*24*time.Hour {
		t.Fatalf("unexpected TTL: %v", svc.TTL())
	}

	token, _ := svc.Issue(context.Background(), "alice@example.com")
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("parse: %v", err)
	}
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 365*24*time.Hour {
		t.Fatalf("expected 365d lifetime, got %v", lifetime)
	}
	if claims.ID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestTokenService_IssueRequiresEmail(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, nil, discardLogger)

	if _, err := svc.Issue(context.Background(), ""); !errors.Is(err, domain.ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}
}

func TestTokenService_IssueTwiceYieldsTwoValidTokens(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, nil, discardLogger)
	ctx := context.Background()

	first, _ := svc.Issue(ctx, "bob@example.com")
	second, _ := svc.Issue(ctx, "bob@example.com")
	if first == second {
		t.Fatalf("expected distinct tokens")
	}

	for _, tok := range []string{first, second} {
		if _, err := svc.Verify(ctx, tok); err != nil {
			t.Fatalf("expected token to verify, got %v", err)
		}
	}
}

func TestTokenService_VerifyRejects(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("secret", time.Hour, nil, discardLogger)
	other := NewTokenService("other-secret", time.Hour, nil, discardLogger)

	valid, _ := svc.Issue(ctx, "alice@example.com")
	foreign, _ := other.Issue(ctx, "mallory@example.com")

	// Swap the payload of a valid token for a forged one.
	parts := strings.Split(valid, ".")
	forgedParts := strings.Split(foreign, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: "alice@example.com",
	}).SignedString([]byte("secret"))

	noEmail, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "not-a-token"},
		{name: "foreign secret", token: foreign},
		{name: "tampered payload", token: tampered},
		{name: "wrong algorithm", token: hs512},
		{name: "unsigned", token: none},
		{name: "missing expiry", token: noExpiry},
		{name: "missing email", token: noEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(ctx, tt.token); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestTokenService_VerifyRejectsExpired(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("secret", time.Hour, nil, discardLogger)

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.Issue(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestTokenService_RevokeWithoutDenylistKeepsTokenValid(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("secret", time.Hour, nil, discardLogger)

	token, _ := svc.Issue(ctx, "alice@example.com")
	if err := svc.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	if _, err := svc.Verify(ctx, token); err != nil {
		t.Fatalf("expected token to stay valid after logout, got %v", err)
	}
}

func TestTokenService_RevokeWithDenylist(t *testing.T) {
	ctx := context.Background()
	denylist := newStubDenylist()
	svc := NewTokenService("secret", time.Hour, denylist, discardLogger)

	revoked, _ := svc.Issue(ctx, "alice@example.com")
	kept, _ := svc.Issue(ctx, "alice@example.com")

	if err := svc.Revoke(ctx, revoked); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if len(denylist.revoked) != 1 {
		t.Fatalf("expected one revoked id, got %d", len(denylist.revoked))
	}

	if _, err := svc.Verify(ctx, revoked); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
	if _, err := svc.Verify(ctx, kept); err != nil {
		t.Fatalf("expected other token to stay valid, got %v", err)
	}
}

func TestTokenService_RevokeIgnoresInvalidToken(t *testing.T) {
	denylist := newStubDenylist()
	svc := NewTokenService("secret", time.Hour, denylist, discardLogger)

	if err := svc.Revoke(context.Background(), "garbage"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(denylist.revoked) != 0 {
		t.Fatalf("expected nothing revoked")
	}
}

func TestTokenService_DenylistFailureRejects(t *testing.T) {
	ctx := context.Background()
	denylist := newStubDenylist()
	svc := NewTokenService("secret", time.Hour, denylist, discardLogger)
	token, _ := svc.Issue(ctx, "alice@example.com")

	denylist.err = errors.New("redis down")
	if _, err := svc.Verify(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
