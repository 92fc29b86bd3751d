package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/middleware"
)

// Deps carries what the route registrars need besides the handlers: the
// configuration, an optional Redis client for caching and rate limiting, and
// the logger.
type Deps struct {
	Cfg   config.Config
	Redis *redis.Client
	Log   *zap.Logger
}

// New creates the Echo instance with the global middleware chain and the
// request validator installed.
func New(cfg config.Config, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     cfg.CORS.AllowMethods,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: cfg.CORS.AllowCredentials,
	}))
	return e
}

// RegisterRoutes registers routes that live outside the API prefix.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the credential endpoints under the base path.  The
// three endpoints that accept a password are rate limited; the introspection
// endpoint requires a valid token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, d Deps) {
	g := e.Group(d.Cfg.App.BasePath)
	limit := middleware.NewTokenBucket(d.Cfg.RateLimit, d.Redis, d.Log)

	g.POST("/signup", a.Signup, limit)
	g.POST("/login", a.Login, limit)
	g.POST("/admin/login", a.AdminLogin, limit)

	g.GET("/protected-route", a.ProtectedRoute, middleware.JWTAuth(d.Cfg.JWT.Secret))
}
