// Package db provides a pgxpool-based connection pool with prepared statement
// registration, schema migrations, and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cupstats/cupstats/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and ingestion
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Teams joined with stats and roster aggregates. Missing stats rows
		// zero-fill; derived fields are recomputed in Go, never read here.
		"team_records": fmt.Sprintf(`
			SELECT t.id, t.external_id, t.name, t.country, t.badge,
			       COALESCE(ts.matches_played, 0), COALESCE(ts.wins, 0),
			       COALESCE(ts.draws, 0), COALESCE(ts.losses, 0),
			       COALESCE(ts.goals_scored, 0), COALESCE(ts.goals_conceded, 0),
			       COALESCE(ts.clean_sheets, 0), COALESCE(ts.total_shots, 0),
			       COALESCE(ts.shots_on_target, 0), COALESCE(ts.average_possession, 0),
			       COALESCE(ts.xg_for_avg, 0), COALESCE(ts.xg_against_avg, 0),
			       COALESCE(pa.total_players, 0), COALESCE(pa.total_goals, 0),
			       COALESCE(pa.total_assists, 0), COALESCE(pa.avg_player_rating, 0)
			FROM %s t
			LEFT JOIN %s ts ON ts.team_id = t.id
			LEFT JOIN (
				SELECT p.team_id,
				       COUNT(p.id) AS total_players,
				       COALESCE(SUM(ps.goals), 0) AS total_goals,
				       COALESCE(SUM(ps.assists), 0) AS total_assists,
				       COALESCE(AVG(ps.average_rating), 0) AS avg_player_rating
				FROM %s p
				LEFT JOIN %s ps ON ps.player_id = p.id
				GROUP BY p.team_id
			) pa ON pa.team_id = t.id
			ORDER BY t.id`,
			config.TeamsTable, config.TeamStatsTable,
			config.PlayersTable, config.PlayerStatsTable),

		// Players joined with stats, zero-filled.
		"player_records": fmt.Sprintf(`
			SELECT p.id, p.external_id, p.name, p.position, p.nationality,
			       COALESCE(p.date_of_birth, ''), COALESCE(p.height, ''), p.team_id,
			       COALESCE(ps.appearances, 0), COALESCE(ps.minutes_played, 0),
			       COALESCE(ps.goals, 0), COALESCE(ps.assists, 0),
			       COALESCE(ps.shots_total, 0), COALESCE(ps.shots_on_target, 0),
			       COALESCE(ps.tackles, 0), COALESCE(ps.interceptions, 0),
			       COALESCE(ps.yellow_cards, 0), COALESCE(ps.red_cards, 0),
			       COALESCE(ps.pass_completion_rate, 0), COALESCE(ps.average_rating, 0),
			       COALESCE(ps.position, ''), COALESCE(ps.current_club, ''),
			       COALESCE(ps.age, 0)
			FROM %s p
			LEFT JOIN %s ps ON ps.player_id = p.id
			ORDER BY p.id`,
			config.PlayersTable, config.PlayerStatsTable),

		// Matches
		"all_matches": fmt.Sprintf(`
			SELECT id, event_id, COALESCE(season, ''), COALESCE(date, ''),
			       COALESCE(home_team, ''), COALESCE(away_team, ''),
			       home_team_id, away_team_id,
			       COALESCE(home_score, 0), COALESCE(away_score, 0),
			       COALESCE(venue, '')
			FROM %s
			ORDER BY date, id`, config.MatchesTable),

		// League summary (single precomputed row)
		"league_summary": fmt.Sprintf(`
			SELECT COALESCE(total_matches, 0), COALESCE(total_goals, 0),
			       COALESCE(average_goals_per_match, 0), COALESCE(btts_percentage, 0),
			       COALESCE(clean_sheets_percentage, 0), COALESCE(average_corners_per_match, 0),
			       COALESCE(average_cards_per_match, 0), COALESCE(xg_avg_per_match, 0)
			FROM %s
			LIMIT 1`, config.LeagueSummaryTable),

		// Auth
		"user_by_username": fmt.Sprintf(
			"SELECT id, username, password_hash FROM %s WHERE username = $1",
			config.UsersTable),

		// Sync: team link resolution by stored name
		"team_id_by_name": fmt.Sprintf(
			"SELECT id FROM %s WHERE name = $1", config.TeamsTable),
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
