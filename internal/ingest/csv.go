package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cupstats/cupstats/internal/config"
	"github.com/cupstats/cupstats/internal/db"
	"github.com/cupstats/cupstats/internal/model"
)

// Teams never carry more than a tournament squad.
const maxPlayersPerTeam = 23

// CSVImporter performs a clean import: all existing rows are cleared and the
// CSV snapshot is loaded inside a single transaction, so a failing import
// rolls back to the previous state.
type CSVImporter struct {
	pool    *db.Pool
	dataDir string
	logger  *slog.Logger
}

// NewCSVImporter creates an importer reading teams.csv, players.csv,
// matches.csv and league.csv from dataDir.
func NewCSVImporter(pool *db.Pool, dataDir string, logger *slog.Logger) *CSVImporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVImporter{pool: pool, dataDir: dataDir, logger: logger}
}

// Run executes the full clear-then-reload import. Malformed rows are skipped
// and counted; any other failure aborts and rolls back the transaction.
func (imp *CSVImporter) Run(ctx context.Context) (ImportResult, error) {
	var result ImportResult

	teams, skipped, err := parseFile(imp.dataDir, "teams.csv", ParseTeams)
	if err != nil {
		return result, err
	}
	result.RowsSkipped += skipped

	players, skipped, err := parseFile(imp.dataDir, "players.csv", ParsePlayers)
	if err != nil {
		return result, err
	}
	result.RowsSkipped += skipped

	// matches.csv is optional in some snapshots.
	matches, skipped, err := parseFile(imp.dataDir, "matches.csv", ParseMatches)
	if err != nil {
		if !os.IsNotExist(err) {
			return result, err
		}
		imp.logger.Warn("matches.csv not found, skipping matches")
	}
	result.RowsSkipped += skipped

	league, err := imp.parseLeagueFile("league.csv")
	if err != nil && !os.IsNotExist(err) {
		return result, err
	}

	tx, err := imp.pool.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := clearAll(ctx, tx); err != nil {
		return result, err
	}

	teamIDs, err := imp.importTeams(ctx, tx, teams, &result)
	if err != nil {
		return result, err
	}
	if err := imp.importPlayers(ctx, tx, players, teamIDs, &result); err != nil {
		return result, err
	}
	if err := imp.importMatches(ctx, tx, matches, teamIDs, &result); err != nil {
		return result, err
	}
	if err := importLeague(ctx, tx, league); err != nil {
		return result, err
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit import: %w", err)
	}

	imp.logger.Info("CSV import complete", "summary", result.Summary())
	return result, nil
}

func clearAll(ctx context.Context, tx pgx.Tx) error {
	// Order respects foreign keys.
	tables := []string{
		config.PlayerStatsTable, config.TeamStatsTable, config.PlayersTable,
		config.MatchesTable, config.LeagueSummaryTable, config.TeamsTable,
	}
	for _, table := range tables {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func (imp *CSVImporter) importTeams(ctx context.Context, tx pgx.Tx, rows []TeamRow, result *ImportResult) (map[string]int, error) {
	teamIDs := make(map[string]int)

	for i, row := range rows {
		var id int
		err := tx.QueryRow(ctx, `
			INSERT INTO teams (external_id, name, country, badge)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			fmt.Sprintf("team_%d", i+1), row.CommonName, row.Country, badgeURL(row.Country),
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert team %q: %w", row.Country, err)
		}

		teamIDs[strings.ToLower(row.Country)] = id
		if row.CommonName != "" {
			teamIDs[strings.ToLower(row.CommonName)] = id
		}

		stats := row.Stats
		if _, err := tx.Exec(ctx, `
			INSERT INTO team_stats (
				team_id, matches_played, wins, draws, losses, goals_scored,
				goals_conceded, clean_sheets, total_shots, shots_on_target,
				average_possession, xg_for_avg, xg_against_avg
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			id, stats.MatchesPlayed, stats.Wins, stats.Draws, stats.Losses,
			stats.GoalsScored, stats.GoalsConceded, stats.CleanSheets,
			stats.TotalShots, stats.ShotsOnTarget, stats.AveragePossession,
			stats.XGForAvg, stats.XGAgainstAvg,
		); err != nil {
			return nil, fmt.Errorf("insert team stats %q: %w", row.Country, err)
		}

		result.TeamsImported++
		result.TeamStatsCreated++
	}
	return teamIDs, nil
}

func (imp *CSVImporter) importPlayers(ctx context.Context, tx pgx.Tx, rows []PlayerRow, teamIDs map[string]int, result *ImportResult) error {
	perTeam := make(map[int]int)

	for _, row := range rows {
		teamID, ok := resolveTeam(teamIDs, row.Nationality, row.CurrentClub)
		if !ok {
			result.RowsSkipped++
			continue
		}
		if perTeam[teamID] >= maxPlayersPerTeam {
			result.RowsSkipped++
			continue
		}

		var id int
		err := tx.QueryRow(ctx, `
			INSERT INTO players (external_id, name, position, nationality, team_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			fmt.Sprintf("player_%d", result.PlayersImported+1),
			row.FullName, row.Position, row.Nationality, teamID,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert player %q: %w", row.FullName, err)
		}

		stats := row.Stats
		if _, err := tx.Exec(ctx, `
			INSERT INTO player_stats (
				player_id, appearances, minutes_played, goals, assists,
				shots_total, shots_on_target, tackles, interceptions,
				yellow_cards, red_cards, pass_completion_rate, average_rating,
				position, current_club, age
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			id, stats.Appearances, stats.MinutesPlayed, stats.Goals, stats.Assists,
			stats.ShotsTotal, stats.ShotsOnTarget, stats.Tackles, stats.Interceptions,
			stats.YellowCards, stats.RedCards, stats.PassCompletionRate, stats.AverageRating,
			row.Position, row.CurrentClub, row.Age,
		); err != nil {
			return fmt.Errorf("insert player stats %q: %w", row.FullName, err)
		}

		perTeam[teamID]++
		result.PlayersImported++
		result.PlayerStatsCreated++
	}
	return nil
}

func (imp *CSVImporter) importMatches(ctx context.Context, tx pgx.Tx, rows []MatchRow, teamIDs map[string]int, result *ImportResult) error {
	for _, row := range rows {
		homeID, homeOK := teamIDs[strings.ToLower(row.HomeTeam)]
		awayID, awayOK := teamIDs[strings.ToLower(row.AwayTeam)]
		if !homeOK || !awayOK {
			result.RowsSkipped++
			continue
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO matches (
				event_id, season, date, home_team, away_team,
				home_team_id, away_team_id, home_score, away_score, venue
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			fmt.Sprintf("match_%d", result.MatchesImported+1),
			row.Season, row.Date, row.HomeTeam, row.AwayTeam,
			homeID, awayID, row.HomeScore, row.AwayScore, row.Venue,
		); err != nil {
			return fmt.Errorf("insert match %s vs %s: %w", row.HomeTeam, row.AwayTeam, err)
		}
		result.MatchesImported++
	}
	return nil
}

func importLeague(ctx context.Context, tx pgx.Tx, league model.LeagueSummary) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO league_summary (
			id, total_matches, total_goals, average_goals_per_match,
			btts_percentage, clean_sheets_percentage, average_corners_per_match,
			average_cards_per_match, xg_avg_per_match
		) VALUES (1,$1,$2,$3,$4,$5,$6,$7,$8)`,
		league.TotalMatches, league.TotalGoals, league.AverageGoalsPerMatch,
		league.BTTSPercentage, league.CleanSheetsPercentage, league.AverageCornersPerMatch,
		league.AverageCardsPerMatch, league.XGAvgPerMatch,
	)
	if err != nil {
		return fmt.Errorf("insert league summary: %w", err)
	}
	return nil
}

// resolveTeam tries nationality first, then current club.
func resolveTeam(teamIDs map[string]int, nationality, currentClub string) (int, bool) {
	for _, key := range []string{nationality, currentClub} {
		if key == "" {
			continue
		}
		if id, ok := teamIDs[strings.ToLower(key)]; ok {
			return id, true
		}
	}
	return 0, false
}

// badgeURL falls back to a flag CDN image keyed by country code.
func badgeURL(country string) string {
	code := strings.ToLower(country)
	if len(code) > 2 {
		code = code[:2]
	}
	return "https://flagcdn.com/w80/" + code + ".png"
}

func parseFile[T any](dataDir, name string, parse func(r io.Reader) ([]T, int, error)) ([]T, int, error) {
	f, err := os.Open(filepath.Join(dataDir, name))
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return parse(f)
}

func (imp *CSVImporter) parseLeagueFile(name string) (model.LeagueSummary, error) {
	f, err := os.Open(filepath.Join(imp.dataDir, name))
	if err != nil {
		return model.LeagueSummary{}, err
	}
	defer f.Close()
	return ParseLeague(f)
}
