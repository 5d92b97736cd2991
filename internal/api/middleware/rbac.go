package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

// RequireRoles enforces role-based access control on routes that are public
// at the policy stage but role-gated per handler. The request passes when the
// identity carries at least one of the allowed roles.
func RequireRoles(allowedRoles ...domain.AppRole) echo.MiddlewareFunc {
	allowed := make(map[domain.AppRole]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := Identity(c)
			if !ok {
				return Unauthorized(c)
			}
			for _, role := range identity.Roles {
				if _, ok := allowed[role]; ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
