package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ecomstore/commerce-api/internal/api/metrics"
	"github.com/ecomstore/commerce-api/internal/api/middleware"
	"github.com/ecomstore/commerce-api/internal/core/domain"
	"github.com/ecomstore/commerce-api/internal/core/ports"
)

// AuthHandler exposes sign-in, sign-out, and current-user endpoints.
type AuthHandler struct {
	authService ports.AuthService
	revoker     ports.TokenRevoker
	audit       ports.AuthEventSink
}

func NewAuthHandler(authService ports.AuthService, revoker ports.TokenRevoker, audit ports.AuthEventSink) *AuthHandler {
	return &AuthHandler{authService: authService, revoker: revoker, audit: audit}
}

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signinResponse struct {
	Token    string           `json:"token"`
	Username string           `json:"username"`
	Roles    []domain.AppRole `json:"roles"`
}

// SignIn authenticates a username/password pair and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  signinResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	identity, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		h.publish(domain.AuthEvent{Username: req.Username, Action: domain.AuthActionLogin, Success: false, Path: c.Request().URL.Path})
		return err
	}

	token, err := h.authService.IssueToken(identity)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.publish(domain.AuthEvent{Username: identity.Username, Action: domain.AuthActionLogin, Success: true, Path: c.Request().URL.Path})

	return c.JSON(http.StatusOK, signinResponse{
		Token:    token,
		Username: identity.Username,
		Roles:    identity.Roles,
	})
}

// SignOut revokes the presented bearer token for its remaining lifetime.
// Without a valid token the call is a no-op: the session model is stateless
// and there is nothing server-side to clear.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	token, _ := c.Get(middleware.BearerTokenKey).(string)

	if ok && token != "" && h.revoker != nil {
		if err := h.revoker.Revoke(c.Request().Context(), token, remainingSeconds(token)); err != nil {
			return err
		}
		h.publish(domain.AuthEvent{Username: identity.Username, Action: domain.AuthActionSignout, Success: true, Path: c.Request().URL.Path})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "signed out"})
}

// CurrentUser returns the identity established by the token filter.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.AuthenticatedIdentity
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return middleware.Unauthorized(c)
	}
	return c.JSON(http.StatusOK, identity)
}

func (h *AuthHandler) publish(event domain.AuthEvent) {
	if h.audit == nil {
		return
	}
	event.At = time.Now().UTC()
	metrics.AuditEventsTotal.WithLabelValues(string(event.Action)).Inc()
	h.audit.Publish(event)
}

// remainingSeconds extracts the token's remaining lifetime so the revocation
// entry can expire with the token itself. Unparseable expiry falls back to a
// day, the maximum token TTL.
func remainingSeconds(raw string) int64 {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			if left := time.Until(exp.Time); left > 0 {
				return int64(left.Seconds()) + 1
			}
			return 1
		}
	}
	return int64((24 * time.Hour).Seconds())
}
