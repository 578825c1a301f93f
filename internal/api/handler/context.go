package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solosphere/jobs-api/internal/api/middleware"
)

// sessionIdentity returns the email attached by the Session middleware. An
// empty identity means the route was registered without the guard; reject
// rather than run an unscoped query.
func sessionIdentity(c echo.Context) (string, error) {
	email := middleware.Identity(c)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	}
	return email, nil
}
