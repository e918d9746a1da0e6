package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smallerp/erp-gateway/internal/api/session"
	"github.com/smallerp/erp-gateway/internal/core/domain"
	"github.com/smallerp/erp-gateway/internal/core/service"
)

func TestRequireRole_Allows(t *testing.T) {
	tokens := service.NewTokenService(guardTestSecret, time.Hour, zerolog.Nop())
	cookies := session.NewCookies(false)

	e := echo.New()
	req := withCookie(httptest.NewRequest(http.MethodPost, "/auth/register", nil), issueToken(t, tokens, domain.RoleAdmin))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := RequireRole(tokens, cookies, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRole_ForbidsLowerTier(t *testing.T) {
	tokens := service.NewTokenService(guardTestSecret, time.Hour, zerolog.Nop())
	cookies := session.NewCookies(false)

	e := echo.New()
	req := withCookie(httptest.NewRequest(http.MethodPost, "/auth/register", nil), issueToken(t, tokens, domain.RoleSUser))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(tokens, cookies, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRole_RejectsMissingSession(t *testing.T) {
	tokens := service.NewTokenService(guardTestSecret, time.Hour, zerolog.Nop())
	cookies := session.NewCookies(false)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/register", nil), httptest.NewRecorder())

	handler := RequireRole(tokens, cookies, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
