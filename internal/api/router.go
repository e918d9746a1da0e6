package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smallerp/erp-gateway/internal/api/handler"
	"github.com/smallerp/erp-gateway/internal/api/middleware"
	"github.com/smallerp/erp-gateway/internal/api/session"
	"github.com/smallerp/erp-gateway/internal/core/domain"
	"github.com/smallerp/erp-gateway/internal/core/ports"
	"github.com/smallerp/erp-gateway/internal/core/service"
	"github.com/smallerp/erp-gateway/internal/i18n"
	"github.com/smallerp/erp-gateway/internal/infrastructure/config"
	redisinfra "github.com/smallerp/erp-gateway/internal/infrastructure/db/redis"
)

// Deps collects the externally-constructed collaborators the router wires up.
type Deps struct {
	Users    ports.UserRepository
	Activity ports.ActivityRecorder
	Mongo    *mongo.Database
	Redis    *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("erp"))

	// --- Dependencies ---
	cookies := session.NewCookies(cfg.SSLEnabled)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.SessionTTL, log)
	throttle := redisinfra.NewLoginThrottle(deps.Redis)
	authService := service.NewAuthService(deps.Users, tokens, throttle)
	current := handler.NewCurrentUser(tokens, deps.Users, cookies)

	authHandler := handler.NewAuthHandler(authService, cookies, cfg.SessionTTL)
	pageHandler := handler.NewPageHandler(current)

	// --- Route guard over every page route ---
	e.Use(middleware.Guard(tokens, cookies, deps.Activity, log))

	// --- Auth actions (bypass the guard; answer JSON, not redirects) ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/register", authHandler.Register,
		middleware.RequireRole(tokens, cookies, domain.RoleAdmin))

	// --- Pages ---
	e.GET("/login", pageHandler.Login)
	e.GET("/:locale/login", pageHandler.Login)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, i18n.HomePath(i18n.Default))
	})
	e.GET("/:locale", pageHandler.Home)
	e.GET("/:locale/", pageHandler.Home)
	e.GET("/:locale/projects", pageHandler.Projects)
	e.GET("/:locale/admin", pageHandler.Admin)
	e.GET("/:locale/admin/*", pageHandler.Admin)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
