// @title						Mandi Service API
// @version					1.0
// @description				Mandi commodity prices from data.gov.in plus a small farmer marketplace
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"mandi-service/internal/application/scheduler"
	"mandi-service/internal/application/services"
	"mandi-service/internal/infrastructure/auth"
	"mandi-service/internal/infrastructure/config"
	"mandi-service/internal/infrastructure/logging"
	"mandi-service/internal/infrastructure/metrics"
	"mandi-service/internal/infrastructure/ratelimit"
	"mandi-service/internal/infrastructure/repositories/snapshot"
	"mandi-service/internal/infrastructure/repositories/sqlstore"
	"mandi-service/internal/infrastructure/upstream/datagov"
	"mandi-service/internal/infrastructure/web/handlers"
	"mandi-service/internal/infrastructure/web/middleware"
	"mandi-service/internal/infrastructure/web/server"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Printf("mandi-service: %v", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred Close/Sync calls happen before main exits
func run() error {
	// Load configuration
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure structured logging
	loggerConfig := logging.ConfigFromSettings("mandi-service", version, cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Environment)
	if err := logging.InitializeGlobalLoggers(loggerConfig); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logging.Sync() }()

	// Prices are serialized as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx := logging.WithRequestID(context.Background(), "startup")
	clock := clockwork.NewRealClock()

	logging.Info(ctx, "Starting mandi service", logging.Fields{
		"version":          version,
		"snapshot_backend": cfg.Snapshot.Backend,
		"database_driver":  cfg.Database.Driver,
		"refresh_interval": cfg.Refresh.Interval.String(),
	})

	// Relational database for the marketplace
	db, err := sqlstore.Open(cfg.Database)
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to open database", err, nil)
		return err
	}
	defer func() { _ = sqlstore.Close(db) }()

	if cfg.Database.AutoMigrate {
		if err := sqlstore.Migrate(db); err != nil {
			logging.ErrorWithError(ctx, "Failed to migrate database", err, nil)
			return err
		}
	}

	// Snapshot store
	store, err := snapshot.NewFactory(clock).CreateStore(ctx, cfg, db)
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to create snapshot store", err, nil)
		return err
	}
	defer func() { _ = store.Close() }()

	// Application services
	fetcher := datagov.NewClient(cfg.Upstream)
	mandiService := services.NewMandiService(fetcher, store,
		services.WithColdStartCoalescing(cfg.Refresh.CoalesceColdStart))

	tokens := auth.NewJWTManager(cfg.Auth, clock)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	users := sqlstore.NewUserRepository(db)
	authService := services.NewAuthService(users, hasher, tokens)
	adService := services.NewAdService(sqlstore.NewAdRepository(db))
	chatService := services.NewChatService(sqlstore.NewChatRepository(db), users)
	requestService := services.NewTradeRequestService(sqlstore.NewTradeRequestRepository(db))

	// Background lifecycle
	appCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var refreshScheduler *scheduler.RefreshScheduler
	if cfg.Refresh.Enabled {
		refreshScheduler = scheduler.NewRefreshScheduler(mandiService, cfg.Refresh.Interval,
			scheduler.WithClock(clock),
			scheduler.WithRunOnStart(cfg.Refresh.RunOnStart))
		refreshScheduler.Start(appCtx)
	} else {
		logging.Warn(ctx, "Refresh scheduler disabled, snapshot is filled on first read", nil)
	}

	rateLimiter := ratelimit.NewRateLimitMiddleware(cfg.RateLimit, clock)
	if limiterStore := rateLimiter.Store(); limiterStore != nil {
		limiterStore.StartJanitor(appCtx, cfg.RateLimit.CleanupInterval)
	}

	metrics.SetApplicationInfo(version, runtime.Version())

	// HTTP layer
	router := server.NewRouter(
		server.Handlers{
			Mandi:   handlers.NewMandiHandler(mandiService, refreshScheduler),
			Auth:    handlers.NewAuthHandler(authService),
			Ads:     handlers.NewAdHandler(adService),
			Chat:    handlers.NewChatHandler(chatService),
			Request: handlers.NewRequestHandler(requestService),
			Health: handlers.NewHealthHandler(refreshScheduler,
				handlers.ReadinessCheck{
					Name:  "database",
					Check: func(ctx context.Context) error { return sqlstore.Ping(ctx, db) },
				},
				handlers.ReadinessCheck{Name: "snapshot_store", Check: store.Ping},
			),
		},
		server.Middlewares{
			Auth:      middleware.NewAuthMiddleware(tokens),
			RateLimit: rateLimiter,
			CORS:      middleware.NewCORSMiddleware(cfg.CORS),
		},
	)

	srv := server.NewServer(router, cfg.Server)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logging.Info(ctx, "Shutdown signal received", logging.Fields{"signal": sig.String()})
	case runErr = <-serverErr:
		if runErr != nil {
			logging.ErrorWithError(ctx, "HTTP server failed", runErr, nil)
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logging.ErrorWithError(ctx, "Server forced to shutdown", err, nil)
	}

	if refreshScheduler != nil {
		select {
		case <-refreshScheduler.Done():
		case <-shutdownCtx.Done():
			logging.Warn(ctx, "Refresh still running at shutdown", nil)
		}
	}

	logging.Info(ctx, "Server shutdown completed", nil)
	return runErr
}
