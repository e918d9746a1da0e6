package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smallerp/erp-gateway/internal/api/metrics"
	"github.com/smallerp/erp-gateway/internal/api/session"
	"github.com/smallerp/erp-gateway/internal/core/domain"
	"github.com/smallerp/erp-gateway/internal/core/ports"
	"github.com/smallerp/erp-gateway/internal/i18n"
)

// Context keys set by Guard for downstream handlers.
const (
	CtxLocale = "locale"
	CtxClaims = "auth_claims"
)

// bypassPrefixes lists path prefixes that skip authentication entirely:
// the login page, the auth actions themselves, probes, metrics, and assets.
var bypassPrefixes = []string{
	"/login",
	"/auth/",
	"/health",
	"/metrics",
	"/assets/",
}

// Guard is the single composed gate every page request passes through.
// Per request: resolve locale, check bypass rules, read the session cookie,
// verify the credential, and enforce the admin path prefix. Every failure is
// a redirect, never a raw error; causes are only logged server-side.
func Guard(tokens ports.TokenService, cookies *session.Cookies, activity ports.ActivityRecorder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			// Locale first, so redirect targets are always locale-prefixed.
			locale := i18n.Resolve(path)
			c.Set(CtxLocale, locale)

			if bypassed(path, locale) {
				return next(c)
			}

			raw, ok := cookies.Read(c)
			if !ok {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return c.Redirect(http.StatusFound, "/login")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				// The stale cookie is left in place; the login action
				// overwrites it on the next successful sign-in.
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				log.Debug().Str("path", path).Msg("session token rejected")
				return c.Redirect(http.StatusFound, "/login")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			// Role check runs only after verification so an invalid token
			// never learns whether a path is admin-restricted.
			if adminPath(path, locale) && claims.Role != domain.RoleAdmin {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_home").Inc()
				log.Debug().
					Str("path", path).
					Str("username", claims.Username).
					Msg("non-admin blocked from admin path")
				return c.Redirect(http.StatusFound, i18n.HomePath(locale))
			}

			c.Set(CtxClaims, claims)
			metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
			if activity != nil {
				activity.Record(claims.UserID)
			}
			return next(c)
		}
	}
}

func bypassed(path string, locale i18n.Locale) bool {
	for _, p := range bypassPrefixes {
		if path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) {
			return true
		}
	}
	// Locale-prefixed login page, e.g. /ar/login.
	return path == "/"+string(locale)+"/login"
}

func adminPath(path string, locale i18n.Locale) bool {
	prefix := "/" + string(locale) + "/admin"
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
