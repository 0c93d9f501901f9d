package ingest

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/cupstats/cupstats/internal/db"
	"github.com/cupstats/cupstats/internal/provider/sportsdb"
)

// Syncer reconciles provider data into the store. Records are matched by
// external id and merged field by field, so a blank provider value never
// overwrites data we already hold.
type Syncer struct {
	pool   *db.Pool
	client *sportsdb.Client
	logger *slog.Logger
}

// NewSyncer creates a Syncer backed by the given provider client.
func NewSyncer(pool *db.Pool, client *sportsdb.Client, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{pool: pool, client: client, logger: logger}
}

// SyncTeams pulls the league's teams and upserts them by external id.
// Provider failures are logged and reported as an empty result rather than
// an error, so the existing data keeps being served.
func (s *Syncer) SyncTeams(ctx context.Context) ImportResult {
	var result ImportResult

	teams, err := s.client.Teams(ctx)
	if err != nil {
		s.logger.Error("Team sync failed", "error", err)
		result.AddErrorf("fetch teams: %v", err)
		return result
	}

	for _, t := range teams {
		if t.ID == "" {
			result.RowsSkipped++
			continue
		}
		_, err := s.pool.Exec(ctx, `
			INSERT INTO teams (external_id, name, country, badge)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (external_id) DO UPDATE SET
				name    = COALESCE(NULLIF(EXCLUDED.name, ''), teams.name),
				country = COALESCE(NULLIF(EXCLUDED.country, ''), teams.country),
				badge   = COALESCE(NULLIF(EXCLUDED.badge, ''), teams.badge)`,
			t.ID, t.Name, t.Country, t.Badge,
		)
		if err != nil {
			result.AddErrorf("upsert team %s: %v", t.Name, err)
			continue
		}
		result.TeamsImported++
	}

	s.logger.Info("Team sync complete", "summary", result.Summary())
	return result
}

// SyncPlayers walks every stored team and upserts its provider roster.
func (s *Syncer) SyncPlayers(ctx context.Context) ImportResult {
	var result ImportResult

	rows, err := s.pool.Query(ctx, `SELECT id, external_id, name FROM teams ORDER BY id`)
	if err != nil {
		s.logger.Error("Player sync failed listing teams", "error", err)
		result.AddErrorf("list teams: %v", err)
		return result
	}

	type teamRef struct {
		id         int
		externalID string
		name       string
	}
	var teams []teamRef
	for rows.Next() {
		var t teamRef
		if err := rows.Scan(&t.id, &t.externalID, &t.name); err != nil {
			rows.Close()
			result.AddErrorf("scan team: %v", err)
			return result
		}
		teams = append(teams, t)
	}
	rows.Close()

	for _, team := range teams {
		players, err := s.client.PlayersByTeam(ctx, team.externalID)
		if err != nil {
			s.logger.Error("Player sync failed for team", "team", team.name, "error", err)
			result.AddErrorf("fetch players for %s: %v", team.name, err)
			continue
		}

		for _, p := range players {
			if p.ID == "" || p.Name == "" {
				result.RowsSkipped++
				continue
			}
			_, err := s.pool.Exec(ctx, `
				INSERT INTO players (external_id, name, position, nationality, team_id)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (external_id) DO UPDATE SET
					name        = COALESCE(NULLIF(EXCLUDED.name, ''), players.name),
					position    = COALESCE(NULLIF(EXCLUDED.position, ''), players.position),
					nationality = COALESCE(NULLIF(EXCLUDED.nationality, ''), players.nationality),
					team_id     = EXCLUDED.team_id`,
				p.ID, p.Name, p.Position, p.Nationality, team.id,
			)
			if err != nil {
				result.AddErrorf("upsert player %s: %v", p.Name, err)
				continue
			}
			result.PlayersImported++
		}
	}

	s.logger.Info("Player sync complete", "summary", result.Summary())
	return result
}

// SyncMatches pulls the season's events and upserts them by event id.
// Team links resolve by stored team name; events for unknown teams still
// import with a null link.
func (s *Syncer) SyncMatches(ctx context.Context) ImportResult {
	var result ImportResult

	events, err := s.client.Events(ctx)
	if err != nil {
		s.logger.Error("Match sync failed", "error", err)
		result.AddErrorf("fetch events: %v", err)
		return result
	}

	for _, e := range events {
		if e.ID == "" {
			result.RowsSkipped++
			continue
		}

		homeID := s.teamIDByName(ctx, e.HomeTeam)
		awayID := s.teamIDByName(ctx, e.AwayTeam)

		_, err := s.pool.Exec(ctx, `
			INSERT INTO matches (
				event_id, season, date, home_team, away_team,
				home_team_id, away_team_id, home_score, away_score, venue
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (event_id) DO UPDATE SET
				season     = COALESCE(NULLIF(EXCLUDED.season, ''), matches.season),
				date       = COALESCE(NULLIF(EXCLUDED.date, ''), matches.date),
				home_score = EXCLUDED.home_score,
				away_score = EXCLUDED.away_score,
				venue      = COALESCE(NULLIF(EXCLUDED.venue, ''), matches.venue)`,
			e.ID, matchSeason(e.Season, s.client.Season()), e.Date, e.HomeTeam, e.AwayTeam,
			homeID, awayID, parseScore(e.HomeScore), parseScore(e.AwayScore),
			e.Venue,
		)
		if err != nil {
			result.AddErrorf("upsert match %s: %v", e.ID, err)
			continue
		}
		result.MatchesImported++
	}

	s.logger.Info("Match sync complete", "summary", result.Summary())
	return result
}

// SyncAll runs the three syncs in dependency order.
func (s *Syncer) SyncAll(ctx context.Context) ImportResult {
	started := time.Now()

	result := s.SyncTeams(ctx)
	players := s.SyncPlayers(ctx)
	matches := s.SyncMatches(ctx)

	result.PlayersImported = players.PlayersImported
	result.MatchesImported = matches.MatchesImported
	result.RowsSkipped += players.RowsSkipped + matches.RowsSkipped
	result.Errors = append(result.Errors, players.Errors...)
	result.Errors = append(result.Errors, matches.Errors...)

	s.logger.Info("Full sync complete", "summary", result.Summary(), "elapsed", time.Since(started))
	return result
}

func (s *Syncer) teamIDByName(ctx context.Context, name string) *int {
	if name == "" {
		return nil
	}
	var id int
	err := s.pool.QueryRow(ctx, `SELECT id FROM teams WHERE LOWER(name) = LOWER($1)`, name).Scan(&id)
	if err != nil {
		return nil
	}
	return &id
}

// matchSeason prefers the event's own season label, falling back to the
// season the client is configured for so the column is never left blank.
func matchSeason(eventSeason, configured string) string {
	if eventSeason != "" {
		return eventSeason
	}
	return configured
}

// parseScore converts a provider score string; unplayed matches come through
// as empty strings and score zero.
func parseScore(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
