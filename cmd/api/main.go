// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/voice-to-ppt/internal/admin"
	"github.com/carterperez-dev/voice-to-ppt/internal/billing"
	"github.com/carterperez-dev/voice-to-ppt/internal/config"
	"github.com/carterperez-dev/voice-to-ppt/internal/core"
	"github.com/carterperez-dev/voice-to-ppt/internal/entitlement"
	"github.com/carterperez-dev/voice-to-ppt/internal/health"
	"github.com/carterperez-dev/voice-to-ppt/internal/history"
	"github.com/carterperez-dev/voice-to-ppt/internal/middleware"
	"github.com/carterperez-dev/voice-to-ppt/internal/presentation"
	"github.com/carterperez-dev/voice-to-ppt/internal/server"
	"github.com/carterperez-dev/voice-to-ppt/internal/slides"
	"github.com/carterperez-dev/voice-to-ppt/internal/storage"
	"github.com/carterperez-dev/voice-to-ppt/internal/templates"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
				"exporting", tel.Enabled(),
			)
		}
	}

	var (
		redis     *core.Redis
		rdb       *goredis.Client
		entStore  entitlement.Store
		inspector admin.EntitlementInspector
	)
	redis, err = core.NewRedis(ctx, cfg.Redis)
	switch {
	case err == nil:
		rdb = redis.Client
		entStore = entitlement.NewRedisStore(rdb)
		inspector = entitlement.NewRecords(entStore)
		logger.Info("redis connected",
			"pool_size", cfg.Redis.PoolSize,
		)
	case errors.Is(err, core.ErrUnavailable):
		logger.Warn("redis unavailable, entitlements not enforced",
			"error", err,
		)
	default:
		return err
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("presentation storage ready", "driver", cfg.Storage.Driver)

	templateSource, err := storage.NewLocalStore(cfg.Templates.Dir)
	if err != nil {
		return err
	}
	templateRepo, err := templates.NewRepository(templateSource, cfg.Templates.DefaultID)
	if err != nil {
		return err
	}

	assembler := slides.NewAssembler(
		templateRepo,
		slides.NewBinder(slides.VerticalOrder{}),
		slides.DefaultWatermark(cfg.Entitlement.WatermarkText),
		logger,
	)

	guard := entitlement.NewGuard(
		entStore,
		entitlement.Capabilities{Enforce: entStore != nil},
		entitlement.Policy{
			FreeLimit:  cfg.Entitlement.FreeLimit,
			UpgradeURL: cfg.Entitlement.UpgradeURL,
		},
		logger,
	)

	if cfg.Billing.WebhookSecret == "" {
		logger.Warn("billing webhook secret not set, accepting unauthenticated events")
	}
	billingSvc := billing.NewService(entStore, cfg.Billing.LifetimeMarkers, logger)
	billingHandler := billing.NewHandler(billingSvc, cfg.Billing.WebhookSecret, logger)

	historySvc := history.NewService(entStore, logger)
	presentationSvc := presentation.NewService(assembler, store, historySvc, logger)
	presentationHandler := presentation.NewHandler(
		presentationSvc,
		templateRepo,
		historySvc,
		store,
	)

	deps := []health.Dependency{
		{Name: "storage", Checker: store, Required: true},
		{Name: "templates", Checker: templateRepo, Required: true},
	}
	if redis != nil {
		deps = append(deps, health.Dependency{Name: "redis", Checker: redis})
	} else {
		deps = append(deps, health.Dependency{Name: "redis"})
	}
	healthHandler := health.NewHandler(deps...)

	adminCfg := admin.HandlerConfig{
		StoragePing:  store.Ping,
		Entitlements: inspector,
	}
	if redis != nil {
		adminCfg.RedisStats = redis.PoolStats
		adminCfg.RedisPing = redis.Ping
	}
	adminHandler := admin.NewHandler(adminCfg)

	proxies, err := core.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RealIP(proxies))
	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.AppUserID(cfg.Entitlement.UserIDHeader))

	healthHandler.RegisterRoutes(router)
	billingHandler.RegisterRoutes(router)
	// The tier limiter needs the guard's decision, so a 429 here has already
	// counted against a guest's quota.
	presentationHandler.RegisterRoutes(router,
		guard.Middleware,
		middleware.TieredRateLimiter(rdb, middleware.DefaultTiers, entitlement.TierOf),
	)

	router.Handle("/thumbnails/*", http.StripPrefix(
		"/thumbnails/",
		http.FileServer(http.Dir(cfg.Templates.ThumbnailsDir)),
	))

	if cfg.Admin.Token != "" {
		router.Group(func(r chi.Router) {
			adminHandler.RegisterRoutes(r, middleware.RequireBearer(cfg.Admin.Token))
		})
	} else {
		logger.Info("admin token not set, admin routes disabled")
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
