package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solosphere/jobs-api/internal/api/metrics"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// identityKey is the echo context key holding the session email.
const identityKey = "email"

type identityCtxKey struct{}

// Session verifies the token cookie and attaches the session identity to both
// the echo context and the request context. Requests without a verifiable
// token stop here with 401.
func Session(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			email, err := tokens.Verify(c.Request().Context(), cookie.Value)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			c.Set(identityKey, email)
			c.SetRequest(c.Request().WithContext(ContextWithIdentity(c.Request().Context(), email)))

			return next(c)
		}
	}
}

// Identity returns the session email attached by Session, or "" when the
// route is not guarded.
func Identity(c echo.Context) string {
	email, _ := c.Get(identityKey).(string)
	return email
}

// ContextWithIdentity returns a copy of ctx carrying email as the session
// identity.
func ContextWithIdentity(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, email)
}

// IdentityFromContext returns the session identity stored in ctx.
func IdentityFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(identityCtxKey{}).(string)
	return email, ok && email != ""
}
