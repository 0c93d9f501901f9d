// Command ingest is the Cup Stats data ingestion CLI.
//
// Usage:
//
//	cupstats-ingest import csv --data-dir data
//	cupstats-ingest sync teams
//	cupstats-ingest sync players
//	cupstats-ingest sync matches
//	cupstats-ingest sync all
//	cupstats-ingest user create --username admin --password secret
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cupstats/cupstats/internal/auth"
	"github.com/cupstats/cupstats/internal/config"
	"github.com/cupstats/cupstats/internal/db"
	"github.com/cupstats/cupstats/internal/ingest"
	"github.com/cupstats/cupstats/internal/provider/sportsdb"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "cupstats-ingest",
		Short: "Cup Stats data ingestion CLI",
	}

	root.AddCommand(importCmd())
	root.AddCommand(syncCmd())
	root.AddCommand(userCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import data from local files",
	}
	cmd.AddCommand(importCSVCmd())
	return cmd
}

func importCSVCmd() *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Clear all tables and reload from CSV snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if dataDir == "" {
					dataDir = cfg.DataDir
				}
				importer := ingest.NewCSVImporter(pool, dataDir, logger)
				start := time.Now()
				result, err := importer.Run(ctx)
				if err != nil {
					return err
				}
				logger.Info("CSV import finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding teams.csv, players.csv, matches.csv, league.csv")
	return cmd
}

// --------------------------------------------------------------------------
// sync command
// --------------------------------------------------------------------------

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync data from the SportsDB provider",
	}
	cmd.AddCommand(syncEntityCmd("teams", func(s *ingest.Syncer, ctx context.Context) ingest.ImportResult {
		return s.SyncTeams(ctx)
	}))
	cmd.AddCommand(syncEntityCmd("players", func(s *ingest.Syncer, ctx context.Context) ingest.ImportResult {
		return s.SyncPlayers(ctx)
	}))
	cmd.AddCommand(syncEntityCmd("matches", func(s *ingest.Syncer, ctx context.Context) ingest.ImportResult {
		return s.SyncMatches(ctx)
	}))
	cmd.AddCommand(syncEntityCmd("all", func(s *ingest.Syncer, ctx context.Context) ingest.ImportResult {
		return s.SyncAll(ctx)
	}))
	return cmd
}

func syncEntityCmd(entity string, fn func(*ingest.Syncer, context.Context) ingest.ImportResult) *cobra.Command {
	return &cobra.Command{
		Use:   entity,
		Short: "Sync " + entity + " from SportsDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := sportsdb.NewClient(cfg.SportsDBBaseURL, cfg.SportsDBLeagueID, cfg.SportsDBSeason, logger)
				syncer := ingest.NewSyncer(pool, client, logger)

				start := time.Now()
				result := fn(syncer, ctx)
				logger.Info("Sync finished",
					"entity", entity,
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("sync error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// user command
// --------------------------------------------------------------------------

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API login accounts",
	}
	cmd.AddCommand(userCreateCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create or update a login account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				hash, err := auth.HashPassword(password)
				if err != nil {
					return fmt.Errorf("hash password: %w", err)
				}
				_, err = pool.Exec(ctx, `
					INSERT INTO users (username, password_hash)
					VALUES ($1, $2)
					ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
					username, hash,
				)
				if err != nil {
					return fmt.Errorf("upsert user: %w", err)
				}
				logger.Info("User saved", "username", username)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Login username")
	cmd.Flags().StringVar(&password, "password", "", "Login password")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, DB connection, migrations, and context
// cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return fn(ctx, cfg, pool)
}
