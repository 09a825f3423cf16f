package api

import (
	"database/sql"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eventsapp/events-api/internal/api/handler"
	"github.com/eventsapp/events-api/internal/api/middleware"
	"github.com/eventsapp/events-api/internal/core/service"
	"github.com/eventsapp/events-api/internal/infrastructure/config"
	"github.com/eventsapp/events-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/eventsapp/events-api/internal/infrastructure/db/redis"
	"github.com/eventsapp/events-api/internal/security"
)

// NewRouter builds the Echo instance with both authentication chains
// registered. The path prefix "/api/" selects the stateless bearer chain;
// everything else runs through the session chain. Exactly one chain applies
// to a request; there is no fallthrough between them.
func NewRouter(cfg *config.Config, db *sql.DB, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Renderer = handler.NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("eventsapp"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db, log)
	eventRepo := postgres.NewEventRepository(db)
	hasher := security.NewHasher(cfg.Auth.BcryptCost)
	tokens := security.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, log)
	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	eventService := service.NewEventService(eventRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	eventAPIHandler := handler.NewEventAPIHandler(eventService)
	usersWebHandler := handler.NewUsersWebHandler(authService, cfg.Session.CookieName)
	eventsWebHandler := handler.NewEventsWebHandler(eventService)

	// --- API chain (stateless, /api/**) ---
	apiPublic := func(c echo.Context) bool {
		p := c.Request().URL.Path
		return p == "/api/users/login" || p == "/api/users/register"
	}
	apiGroup := e.Group("/api", middleware.BearerAuth(tokens, userRepo, apiPublic))
	apiGroup.POST("/users/register", authHandler.Register)
	apiGroup.POST("/users/login", authHandler.Login)
	apiGroup.GET("/events", eventAPIHandler.List)
	apiGroup.POST("/events", eventAPIHandler.Create)
	apiGroup.GET("/events/:organizerid", eventAPIHandler.ByOrganizer)
	apiGroup.PUT("/events/:id", eventAPIHandler.Update)
	apiGroup.DELETE("/events/:id", eventAPIHandler.Delete)

	// --- Session chain (stateful, everything else) ---
	sessionStore := redisinfra.NewSessionStore(rdb, cfg.Session.TTL)
	webSkipper := func(c echo.Context) bool {
		return strings.HasPrefix(c.Request().URL.Path, "/api/")
	}
	e.Use(sessionMiddlewareWithSkipper(sessionStore, webSkipper))
	e.Use(sessionChainWithSkipper(cfg.Session.CookieName, webSkipper))

	e.GET("/", usersWebHandler.Home)
	e.GET("/users/loginForm", usersWebHandler.LoginForm)
	e.POST("/login", usersWebHandler.Login)
	e.GET("/users/logout", usersWebHandler.Logout)
	e.GET("/users/register", usersWebHandler.RegisterForm)
	e.POST("/users/register", usersWebHandler.Register)

	e.GET("/events", eventsWebHandler.List)
	e.GET("/events/search", eventsWebHandler.SearchForm)
	e.POST("/events/search", eventsWebHandler.Search)
	e.GET("/events/create", eventsWebHandler.CreateForm)
	e.POST("/events/create", eventsWebHandler.Create)
	e.GET("/events/edit/:id", eventsWebHandler.EditForm)
	e.POST("/events/edit/:id", eventsWebHandler.Edit)
	e.GET("/events/delete/:id", eventsWebHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// sessionMiddlewareWithSkipper mounts the gorilla session store but leaves
// API requests untouched so the token chain never creates a session.
func sessionMiddlewareWithSkipper(store *redisinfra.SessionStore, skip func(echo.Context) bool) echo.MiddlewareFunc {
	mw := session.Middleware(store)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := mw(next)
		return func(c echo.Context) error {
			if skip(c) {
				return next(c)
			}
			return wrapped(c)
		}
	}
}

func sessionChainWithSkipper(cookieName string, skip func(echo.Context) bool) echo.MiddlewareFunc {
	mw := middleware.SessionChain(cookieName, middleware.SessionPolicy())
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := mw(next)
		return func(c echo.Context) error {
			if skip(c) {
				return next(c)
			}
			return wrapped(c)
		}
	}
}
