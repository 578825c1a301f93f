package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solosphere/jobs-api/internal/api/metrics"
	"github.com/solosphere/jobs-api/internal/core/domain"
)

// OwnerOnly allows the request only when the path parameter param equals the
// session identity. It must run after Session.
func OwnerOnly(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.Authorize(c.Param(param), Identity(c)); err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("identity_mismatch").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
