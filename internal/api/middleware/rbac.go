package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smallerp/erp-gateway/internal/api/session"
	"github.com/smallerp/erp-gateway/internal/core/ports"
)

// RequireRole gates JSON action endpoints that sit outside the page guard
// (the guard redirects; actions answer 401/403). The verified claims are
// stashed on the context for the handler.
func RequireRole(tokens ports.TokenService, cookies *session.Cookies, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := cookies.Read(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if _, ok := allowed[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "permission denied")
			}

			c.Set(CtxClaims, claims)
			return next(c)
		}
	}
}
