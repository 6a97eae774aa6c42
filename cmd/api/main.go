// main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/api"
	"github.com/Marga-Ghale/ora-lists/internal/auth"
	"github.com/Marga-Ghale/ora-lists/internal/config"
	"github.com/Marga-Ghale/ora-lists/internal/cron"
	"github.com/Marga-Ghale/ora-lists/internal/db"
	"github.com/Marga-Ghale/ora-lists/internal/metrics"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/Marga-Ghale/ora-lists/internal/repository/memstore"
	"github.com/Marga-Ghale/ora-lists/internal/seed"
	"github.com/Marga-Ghale/ora-lists/internal/service"
	"github.com/Marga-Ghale/ora-lists/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// ============================================
	// Load environment variables and configuration
	// ============================================
	envErr := config.LoadEnv()
	cfg := config.Load()
	logging.SetupWithLevel(logging.LevelFromString(cfg.LogLevel))
	if envErr != nil {
		slog.Info("No .env file found, using environment variables")
	}
	if err := cfg.Validate(); err != nil {
		fatal("Invalid configuration", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	healthChecks := map[string]api.HealthCheck{}

	// ============================================
	// Initialize Store
	// ============================================
	var repos *repository.Repositories
	switch cfg.Store {
	case config.StoreMemory:
		repos = memstore.NewRepositories()
		slog.Warn("⚠️ Using in-memory store, data is lost on restart")

	case config.StorePostgres:
		if cfg.AutoMigrate {
			slog.Info("🔄 Running database migrations...")
			if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				fatal("Migration failed", err)
			}
			slog.Info("✅ Database migrations completed")
		}

		pg, err := db.NewPostgresDB(cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			fatal("Failed to connect to PostgreSQL", err)
		}
		defer pg.Close()

		repos = repository.NewRepositories(pg.DB)
		healthChecks["database"] = pg.Ping

	default:
		fatal("Unknown store", errors.New(cfg.Store))
	}
	slog.Info("📦 Repositories initialized", "store", cfg.Store)

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var cache service.ProfileCache
	if cfg.RedisURL != "" {
		redisDB, err := db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			slog.Warn("⚠️ Failed to connect to Redis, continuing without cache", "error", err)
		} else {
			defer redisDB.Close()
			cache = redisDB
			healthChecks["cache"] = func(ctx context.Context) error {
				return redisDB.Client.Ping(ctx).Err()
			}
			slog.Info("⚡ Redis profile cache enabled")
		}
	}

	// ============================================
	// Seed Data (for development)
	// ============================================
	if !cfg.IsProduction() {
		slog.Info("🌱 Seeding development data...")
		if err := seed.SeedData(context.Background(), repos); err != nil {
			slog.Error("Seeding failed", "error", err)
		}
	}

	// ============================================
	// Metrics
	// ============================================
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Repos:           repos,
		Cache:           cache,
		ProfileCacheTTL: cfg.ProfileCacheTTL,
		Metrics:         m,
	})
	slog.Info("✨ All services initialized")

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	scheduler := cron.NewScheduler(repos.StatsRepo, m, cfg.StatsSchedule)
	if err := scheduler.Start(); err != nil {
		fatal("Failed to start scheduler", err)
	}
	defer scheduler.Stop()
	if err := scheduler.RecordStats(context.Background()); err != nil {
		slog.Warn("Initial stats snapshot failed", "error", err)
	}

	// ============================================
	// Create Gin Router
	// ============================================
	r := api.NewRouter(api.RouterDeps{
		Services:       services,
		Verifier:       auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		Metrics:        m,
		Gatherer:       registry,
		CORSOrigins:    cfg.CORSOrigins,
		MaintenanceKey: cfg.MaintenanceKey,
		HealthChecks:   healthChecks,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		slog.Info("🚀 Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal("Failed to start server", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}

func fatal(msg string, err error) {
	slog.Error("❌ "+msg, "error", err)
	os.Exit(1)
}
