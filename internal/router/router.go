// Package router wires handlers, middleware, and routes onto the Echo
// instance. Unauthenticated operations live under /v1/auth; everything
// touching user data requires an identity.
package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/arivald8/notehub/internal/config"
	"github.com/arivald8/notehub/internal/handler"
	"github.com/arivald8/notehub/internal/middleware"
	"github.com/arivald8/notehub/internal/queue"
	"github.com/arivald8/notehub/internal/repository"
	"github.com/arivald8/notehub/internal/service"
	"github.com/arivald8/notehub/internal/session"
)

// New builds the Echo instance with all routes registered.
func New(cfg config.Config, db *sql.DB, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("notehub"))

	// --- Dependencies ---
	var audit service.AuditPublisher
	if cfg.AMQPURL != "" {
		audit = queue.NewPublisher(cfg.AMQPURL)
	}
	userRepo := repository.NewUserRepo(db)
	noteRepo := repository.NewNoteRepo(db)
	sessions := session.NewStore(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)

	authSvc := service.NewAuthService(userRepo, audit, cfg.BcryptCost)
	userSvc := service.NewUserService(userRepo, audit)
	noteSvc := service.NewNoteService(noteRepo, audit)

	authHandler := handler.NewAuthHandler(cfg, authSvc, sessions)
	userHandler := handler.NewUserHandler(userSvc, sessions)
	noteHandler := handler.NewNoteHandler(noteSvc)

	// --- Unauthenticated routes ---
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echoprometheus.NewHandler())

	// CSRF covers every state-changing form post made with the session
	// cookie. Bearer requests carry their credential explicitly, so the
	// middleware is skipped for them.
	csrf := echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:csrf_token",
		CookieName:     "notehub_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		Skipper:        middleware.HasBearer,
	})

	v1 := e.Group("/v1", csrf)

	// Issues the CSRF token cookie and returns the token for clients that
	// post forms.
	v1.GET("/csrf", func(c echo.Context) error {
		token, _ := c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string)
		return c.JSON(http.StatusOK, echo.Map{"csrf_token": token})
	})

	// Credential endpoints are rate limited per client IP.
	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	ag := v1.Group("/auth", limiter)
	ag.POST("/register", authHandler.Register)
	ag.POST("/login", authHandler.Login)
	ag.POST("/token", authHandler.Token)
	ag.POST("/logout", authHandler.Logout)

	// --- Protected routes ---
	protected := v1.Group("", middleware.Identity(sessions, cfg.JWTSecret))
	protected.GET("/me", authHandler.Me)

	protected.GET("/users/:username", userHandler.Get)
	protected.DELETE("/users/:username", userHandler.Delete)

	protected.POST("/notes", noteHandler.Create)
	protected.GET("/notes", noteHandler.List)
	protected.GET("/notes/:id", noteHandler.Get)
	protected.PUT("/notes/:id", noteHandler.Update)
	protected.DELETE("/notes/:id", noteHandler.Delete)

	return e
}
