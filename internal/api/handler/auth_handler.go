package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smallerp/erp-gateway/internal/api/metrics"
	"github.com/smallerp/erp-gateway/internal/api/session"
	"github.com/smallerp/erp-gateway/internal/core/domain"
	"github.com/smallerp/erp-gateway/internal/core/ports"
	"github.com/smallerp/erp-gateway/internal/i18n"
)

type AuthHandler struct {
	authService ports.AuthService
	cookies     *session.Cookies
	sessionTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookies *session.Cookies, sessionTTL time.Duration) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = domain.SessionTTL
	}
	return &AuthHandler{authService: authService, cookies: cookies, sessionTTL: sessionTTL}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Role        string `json:"role" validate:"required,oneof=admin s-user user"`
}

type loginResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

// Login checks the password, issues the session credential, and sets the
// cookie. The response carries the locale-prefixed home path the client
// should navigate to.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	h.cookies.Write(c, token, h.sessionTTL)

	locale := i18n.Resolve(c.Request().URL.Path)
	return c.JSON(http.StatusOK, loginResponse{
		User:     user,
		Redirect: i18n.HomePath(locale),
	})
}

// Logout clears the session cookie. Always succeeds, token or not.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, map[string]string{"redirect": "/login"})
}

// Register creates a new account. The route is admin-gated by middleware.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}
