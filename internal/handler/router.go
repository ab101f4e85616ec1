package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mesto/mesto-api/internal/config"
	"github.com/mesto/mesto-api/internal/metrics"
	"github.com/mesto/mesto-api/internal/middleware"
)

// StaticPrefix is the URL prefix static files are served under.
const StaticPrefix = "/files"

// RouterDeps holds everything the router wires together.
type RouterDeps struct {
	Logger   *slog.Logger
	Errors   *middleware.ErrorHandler
	Verifier middleware.TokenVerifier
	Limiter  middleware.RateLimiter
	Recorder metrics.Recorder

	Users   *UserHandler
	Cards   *CardHandler
	Health  *HealthHandler
	Metrics *MetricsHandler
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg *config.Config, deps RouterDeps) *chi.Mux {
	errs := deps.Errors
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger, deps.Recorder))
	r.Use(middleware.Recoverer(deps.Logger, errs))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
		StaticPrefix:  StaticPrefix,
	}))
	r.Use(middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  deps.Logger,
		Limiter: deps.Limiter,
		Errors:  errs,
		Metrics: deps.Recorder,
		Enabled: cfg.RateLimitEnabled && deps.Limiter != nil,
		Max:     cfg.RateLimitMax,
		Window:  cfg.RateLimitWindow,
	}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize, errs))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	// Probes and metrics
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Get("/metrics", deps.Metrics.Metrics)

	// Static files
	if cfg.StaticDir != "" {
		r.Handle(StaticPrefix+"/*", staticFiles(cfg.StaticDir, errs))
	}

	// Account
	r.Post("/signup", errs.Handle(deps.Users.Signup))
	r.Post("/signin", errs.Handle(deps.Users.Signin))

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger:   deps.Logger,
		Verifier: deps.Verifier,
		Errors:   errs,
	})

	// User reads may be public
	r.Group(func(r chi.Router) {
		if !cfg.PublicUserReads {
			r.Use(requireAuth)
		}
		r.Get("/users", errs.Handle(deps.Users.List))
		r.Get("/users/{username}", errs.Handle(deps.Users.GetByUsername))
	})

	// Everything else requires a token
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/users/me", errs.Handle(deps.Users.Me))
		r.Patch("/users/me", errs.Handle(deps.Users.UpdateProfile))
		r.Patch("/users/me/avatar", errs.Handle(deps.Users.UpdateAvatar))

		r.Get("/cards", errs.Handle(deps.Cards.List))
		r.Post("/cards", errs.Handle(deps.Cards.Create))
		r.Delete("/cards/{cardId}", errs.Handle(deps.Cards.Delete))
		r.Put("/cards/{cardId}/likes", errs.Handle(deps.Cards.Like))
		r.Delete("/cards/{cardId}/likes", errs.Handle(deps.Cards.Unlike))
	})

	// 404 and 405 handlers
	r.NotFound(errs.NotFound)
	r.MethodNotAllowed(errs.MethodNotAllowed)

	return r
}
