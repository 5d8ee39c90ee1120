// Package main is the entrypoint for the Swapnest API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/swapnest/swapnest/internal/cache"
	"github.com/swapnest/swapnest/internal/config"
	"github.com/swapnest/swapnest/internal/handler"
	"github.com/swapnest/swapnest/internal/metrics"
	"github.com/swapnest/swapnest/internal/middleware"
	"github.com/swapnest/swapnest/internal/server"
	"github.com/swapnest/swapnest/internal/service"
	"github.com/swapnest/swapnest/internal/store"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize storage
	var (
		userStore store.UserStore
		itemStore store.ItemStore
		pg        *store.Postgres
	)

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pg, err = store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		defer pg.Close()
		logger.Info("connected to database")

		userStore = pg.Users()
		itemStore = pg.Items()
	default:
		userStore = store.NewMemoryUserStore()
		itemStore = store.NewMemoryItemStore()
		logger.Info("using in-memory storage")
	}

	// Initialize cache (optional; backs the rate limiter)
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
	}

	// Initialize services
	metricsRecorder := metrics.NewNoop()
	userService := service.NewUserService(userStore, metricsRecorder)
	itemService := service.NewItemService(itemStore, userStore, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := newHealthHandler(pg, cacheClient)
	userHandler := handler.NewUserHandler(userService, logger)
	itemHandler := handler.NewItemHandler(itemService, logger)

	// Setup router
	r := setupRouter(h, healthHandler, userHandler, itemHandler, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"store_driver", cfg.StoreDriver,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newHealthHandler wires only the dependencies that are actually
// configured, so typed nils never reach the interface fields.
func newHealthHandler(pg *store.Postgres, cacheClient *cache.Cache) *handler.HealthHandler {
	var db, redis handler.HealthChecker
	if pg != nil {
		db = pg
	}
	if cacheClient != nil {
		redis = cacheClient
	}
	return handler.NewHealthHandler(db, redis)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	userHandler *handler.UserHandler,
	itemHandler *handler.ItemHandler,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
	}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Enabled: cfg.RateLimitEnabled,
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
	}

	// User management
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RateLimitIP(rateLimitCfg))

		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)
		r.Patch("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	// Item management. Every route requires the caller identity header.
	r.Route("/items", func(r chi.Router) {
		r.Use(middleware.RateLimitIP(rateLimitCfg))
		r.Use(middleware.Identity(logger))

		r.Post("/", itemHandler.Create)
		r.Get("/", itemHandler.List)
		r.Get("/search", itemHandler.Search)
		r.Get("/{id}", itemHandler.Get)
		r.Patch("/{id}", itemHandler.Update)
		r.Delete("/{id}", itemHandler.Delete)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

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
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

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
