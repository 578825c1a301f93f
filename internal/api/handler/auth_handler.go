package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/solosphere/jobs-api/internal/api/metrics"
	"github.com/solosphere/jobs-api/internal/api/middleware"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

type AuthHandler struct {
	tokens     ports.TokenService
	production bool
	log        zerolog.Logger
}

// NewAuthHandler builds the session endpoints. production switches the cookie
// to Secure with SameSite=None so a frontend on another site can send it.
func NewAuthHandler(tokens ports.TokenService, production bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, production: production, log: log}
}

// Issue signs a session token for the given identity and sets it as a cookie.
//
// @Summary      Issue a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Identity to sign"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /jwt [post]
func (h *AuthHandler) Issue(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.tokens.Issue(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	metrics.TokensIssuedTotal.Inc()

	c.SetCookie(h.cookie(token))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Logout overwrites the session cookie with an expired one.
//
// @Summary      Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil && cookie.Value != "" {
		if err := h.tokens.Revoke(c.Request().Context(), cookie.Value); err != nil {
			h.log.Warn().Err(err).Msg("token revocation failed")
		}
	}

	expired := h.cookie("")
	expired.MaxAge = -1
	expired.Expires = time.Unix(0, 0)
	c.SetCookie(expired)

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *AuthHandler) cookie(value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	}
	if h.production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
