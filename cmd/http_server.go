package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/activity"
	"github.com/frahmantamala/bizmanager/internal/auth"
	"github.com/frahmantamala/bizmanager/internal/core/events"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/storage/memory"
	"github.com/frahmantamala/bizmanager/internal/storage/postgres"
	"github.com/frahmantamala/bizmanager/internal/transport"
	"github.com/frahmantamala/bizmanager/internal/transport/middleware"
	"github.com/frahmantamala/bizmanager/internal/transport/rest"
	"github.com/frahmantamala/bizmanager/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config      *internal.Config
	Store       storage.Storage
	Bus         *events.EventBus
	AuthService *auth.Service
	RateLimiter *middleware.RateLimiter
	Router      *chi.Mux
	Logger      *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "storage", deps.Config.Storage.Backend)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		runJanitor(janitorCtx, deps.Config.Security.SessionSweepInterval, deps.AuthService, deps.RateLimiter, deps.Logger)
	}()

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	exitCode := 0
	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			exitCode = 1
		}
	}

	stopJanitor()
	<-janitorDone
	deps.Bus.Wait()
	if err := deps.Store.Close(); err != nil {
		deps.Logger.Error("Storage close error", "error", err)
	}

	deps.Logger.Info("Server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(config)
	lg := logger.LoggerWrapper()

	store, err := openStorage(config, lg)
	if err != nil {
		return nil, err
	}

	if _, err := rest.LoadOpenAPI(context.Background()); err != nil {
		_ = store.Close()
		return nil, err
	}

	bus := events.NewEventBus(lg)
	recorder := activity.NewRecorder(activity.DefaultCapacity, lg)
	recorder.Subscribe(bus)

	var metrics *middleware.Metrics
	if config.Observability.Metrics.Enabled {
		metrics = middleware.NewMetrics()
		metrics.Subscribe(bus)
	}

	base := transport.NewBaseHandler(lg)
	limiter := middleware.NewRateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst, func(w http.ResponseWriter, _ *http.Request) {
		base.WriteAppError(w, internal.NewTooManyRequestsError("Too many requests"))
	})

	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret)
	authService := auth.NewService(store, tokenGen, config.Security.SessionTTL, config.Security.BCryptCost, lg)

	handlers := rest.NewHandlers(rest.HandlerDeps{
		Base:         base,
		Store:        store,
		Bus:          bus,
		Feed:         recorder,
		Auth:         authService,
		CookieSecure: config.Security.CookieSecure,
		Logger:       lg,
	})

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, handlers, rest.Options{
		AllowedOrigins: config.Server.Origins(),
		Health:         rest.NewHealthHandler(map[string]rest.Pinger{config.Storage.Backend: store}),
		Metrics:        metrics,
		MetricsPath:    config.Observability.Metrics.Path,
		RateLimiter:    limiter,
		MaxBodyBytes:   config.Server.MaxBodyBytes,
	}, lg)

	return &Dependencies{
		Config:      config,
		Store:       store,
		Bus:         bus,
		AuthService: authService,
		RateLimiter: limiter,
		Router:      router,
		Logger:      lg,
	}, nil
}

// openStorage builds the configured backend.
func openStorage(cfg *internal.Config, lg *slog.Logger) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case internal.StorageBackendMemory:
		lg.Warn("using in-memory storage; data is lost on restart")
		return memory.New(), nil
	case internal.StorageBackendPostgres:
		db, err := initDB(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		gdb, err := initGorm(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		store := postgres.New(gdb)
		if cfg.Storage.AutoMigrate {
			if err := store.AutoMigrate(context.Background()); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("failed to auto-migrate: %w", err)
			}
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
