// Package main is the entrypoint for the Mesto API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mesto/mesto-api/internal/auth"
	"github.com/mesto/mesto-api/internal/cache"
	"github.com/mesto/mesto-api/internal/config"
	"github.com/mesto/mesto-api/internal/handler"
	"github.com/mesto/mesto-api/internal/metrics"
	"github.com/mesto/mesto-api/internal/middleware"
	"github.com/mesto/mesto-api/internal/repository"
	"github.com/mesto/mesto-api/internal/server"
	"github.com/mesto/mesto-api/internal/service"
	"github.com/mesto/mesto-api/internal/validate"
)

// startupTimeout bounds connecting to Postgres and Redis and running migrations.
const startupTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	if cfg.RunMigrations {
		if err := repo.Migrate(ctx); err != nil {
			logger.Error("failed to run migrations", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
			repo.Close()
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL, cache.WithUserTTL(cfg.UserCacheTTL))
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		repo.Close()
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to create token manager", "error", err)
		_ = cacheClient.Close()
		repo.Close()
		os.Exit(1)
	}

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, cacheClient, tokens, logger, metricsRecorder)
	cardService := service.NewCardService(repo, metricsRecorder)

	// Initialize handlers
	v := validate.New()
	router := handler.NewRouter(cfg, handler.RouterDeps{
		Logger:   logger,
		Errors:   middleware.NewErrorHandler(logger),
		Verifier: tokens,
		Limiter:  cacheClient,
		Recorder: metricsRecorder,
		Users:    handler.NewUserHandler(userService, v),
		Cards:    handler.NewCardHandler(cardService, v),
		Health:   handler.NewHealthHandler(logger, repo, cacheClient),
		Metrics:  handler.NewMetricsHandler(metricsRecorder),
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// Stopped in reverse order: Redis first, then Postgres.
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"public_user_reads", cfg.PublicUserReads,
		"rate_limit_enabled", cfg.RateLimitEnabled,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "mesto-api")
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

// redactURL strips the password from a connection string.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			username = "redacted"
		}
		parsed.User = url.User(username)
	}

	return parsed.String()
}

// sanitizeError replaces any secret found in err's message with its
// redacted form and masks password= query parameters.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
