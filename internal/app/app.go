package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/scheduler"
	"github.com/MrSnakeDoc/bookmarks/internal/sources/seed"
	"github.com/MrSnakeDoc/bookmarks/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	store    bookmarks.Store
	seeder   *seed.Seeder
	repairer *scheduler.IndexRepairer
}

// New loads the configuration, opens the store and builds the HTTP server.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	loggerClient := logger.NewWithOptions(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLog,
		File:   cfg.LogFile,
	})

	return build(ctx, cfg, loggerClient)
}

func build(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	// Open the store early - fail fast if unavailable
	store, err := openStore(ctx, cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	loggerClient.Infof("📚 Bookmark store ready (%s)", cfg.Store)

	service := bookmarks.NewService(store, loggerClient)

	var seeder *seed.Seeder
	if cfg.SeedFile != "" {
		seeder = seed.NewSeeder(cfg.SeedFile, service, loggerClient)
	}

	// Only stores keeping a separate id index need repairing
	var repairer *scheduler.IndexRepairer
	if pruner, ok := store.(scheduler.IndexPruner); ok && cfg.RedisIndexRepair > 0 {
		repairer = scheduler.NewIndexRepairer(pruner, loggerClient, cfg.RedisIndexRepair)
	}

	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		Bookmarks:          service,
		APIToken:           cfg.APIToken,
		Production:         cfg.IsProduction(),
		AllowedHosts:       cfg.AllowedHosts,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		TrustProxy:         cfg.TrustProxy,
		RateLimitBurst:     cfg.RateLimitBurst,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient, d),
		store:    store,
		seeder:   seeder,
		repairer: repairer,
	}, nil
}

// Run seeds the store when configured, serves HTTP and blocks until SIGINT/SIGTERM.
func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Bookmarks v%s on %s (env=%s)", version.Version, a.cfg.ListenPort, a.cfg.Env)
	a.logger.Infof("Bookmarks %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.seeder != nil {
		if _, err := a.seeder.Run(ctx); err != nil {
			a.closeStore()
			return fmt.Errorf("failed to seed store: %w", err)
		}
	}

	if a.repairer != nil {
		a.repairer.Start(ctx)
		a.logger.Info("bookmark index repair started",
			logger.Duration("interval", a.cfg.RedisIndexRepair))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.closeStore()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		a.closeStore()
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeStore()
	a.logger.Info("✅ Bookmarks stopped cleanly")
	_ = a.logger.Sync()
	return nil
}

// closeStore stops background jobs using the store, then closes it.
func (a *App) closeStore() {
	if a.repairer != nil {
		a.repairer.Stop()
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close store: %v", err)
		return
	}
	a.logger.Info("✅ Store closed cleanly")
}
