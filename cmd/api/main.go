// Command api is the Cup Stats API server.
//
// Usage:
//
//	cupstats-api
//	API_PORT=8080 cupstats-api

// @title Cup Stats API
// @version 1.0.0
// @description Tournament statistics API serving teams, players, matches, leaderboards, and head-to-head comparisons. Derived metrics are recomputed from stored counting stats on every read.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @license.name MIT
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/cupstats/cupstats/internal/api"
	"github.com/cupstats/cupstats/internal/api/handler"
	"github.com/cupstats/cupstats/internal/auth"
	"github.com/cupstats/cupstats/internal/cache"
	"github.com/cupstats/cupstats/internal/config"
	"github.com/cupstats/cupstats/internal/db"
	"github.com/cupstats/cupstats/internal/ingest"
	"github.com/cupstats/cupstats/internal/provider/sportsdb"
	"github.com/cupstats/cupstats/internal/stats"
	"github.com/cupstats/cupstats/internal/store"

	_ "github.com/cupstats/cupstats/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AuthSecret == "" {
		logger.Error("AUTH_SECRET must be set")
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("Migrations up to date")

	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	repo := store.New(pool)
	service := stats.New(repo)
	issuer := auth.NewTokenIssuer(cfg.AuthSecret, cfg.TokenTTL)
	client := sportsdb.NewClient(cfg.SportsDBBaseURL, cfg.SportsDBLeagueID, cfg.SportsDBSeason, logger)
	syncer := ingest.NewSyncer(pool, client, logger)

	router := api.NewRouter(handler.Deps{
		DB:      pool,
		Cache:   appCache,
		Config:  cfg,
		Service: service,
		Users:   repo,
		Issuer:  issuer,
		Syncer:  syncer,
	}, issuer, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Cup Stats API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
