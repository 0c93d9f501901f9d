// Package store is the pgx repository over the relational tables. It returns
// flat model rows with missing statistics zero-filled at the join site;
// derived metrics are computed upstream by internal/metrics.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cupstats/cupstats/internal/db"
	"github.com/cupstats/cupstats/internal/model"
)

// ErrNotFound reports a lookup that matched no row.
var ErrNotFound = errors.New("not found")

// Store reads and writes application rows through the shared pool.
type Store struct {
	pool *db.Pool
}

// New creates a Store over a connection pool.
func New(pool *db.Pool) *Store {
	return &Store{pool: pool}
}

// TeamRecords returns every team with its (zero-filled) stats and roster
// aggregates.
func (s *Store) TeamRecords(ctx context.Context) ([]model.TeamRecord, error) {
	rows, err := s.pool.Query(ctx, "team_records")
	if err != nil {
		return nil, fmt.Errorf("query team records: %w", err)
	}
	defer rows.Close()

	var recs []model.TeamRecord
	for rows.Next() {
		var rec model.TeamRecord
		if err := rows.Scan(
			&rec.Team.ID, &rec.Team.ExternalID, &rec.Team.Name, &rec.Team.Country, &rec.Team.Badge,
			&rec.Stats.MatchesPlayed, &rec.Stats.Wins, &rec.Stats.Draws, &rec.Stats.Losses,
			&rec.Stats.GoalsScored, &rec.Stats.GoalsConceded, &rec.Stats.CleanSheets,
			&rec.Stats.TotalShots, &rec.Stats.ShotsOnTarget, &rec.Stats.AveragePossession,
			&rec.Stats.XGForAvg, &rec.Stats.XGAgainstAvg,
			&rec.TotalPlayers, &rec.TotalGoals, &rec.TotalAssists, &rec.AvgPlayerRating,
		); err != nil {
			return nil, fmt.Errorf("scan team record: %w", err)
		}
		rec.Stats.TeamID = rec.Team.ID
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// PlayerRecords returns every player with its (zero-filled) stats.
func (s *Store) PlayerRecords(ctx context.Context) ([]model.PlayerRecord, error) {
	rows, err := s.pool.Query(ctx, "player_records")
	if err != nil {
		return nil, fmt.Errorf("query player records: %w", err)
	}
	defer rows.Close()

	var recs []model.PlayerRecord
	for rows.Next() {
		var rec model.PlayerRecord
		if err := rows.Scan(
			&rec.Player.ID, &rec.Player.ExternalID, &rec.Player.Name, &rec.Player.Position,
			&rec.Player.Nationality, &rec.Player.DateOfBirth, &rec.Player.Height, &rec.Player.TeamID,
			&rec.Stats.Appearances, &rec.Stats.MinutesPlayed, &rec.Stats.Goals, &rec.Stats.Assists,
			&rec.Stats.ShotsTotal, &rec.Stats.ShotsOnTarget, &rec.Stats.Tackles, &rec.Stats.Interceptions,
			&rec.Stats.YellowCards, &rec.Stats.RedCards, &rec.Stats.PassCompletionRate,
			&rec.Stats.AverageRating, &rec.Stats.Position, &rec.Stats.CurrentClub, &rec.Stats.Age,
		); err != nil {
			return nil, fmt.Errorf("scan player record: %w", err)
		}
		rec.Stats.PlayerID = rec.Player.ID
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Matches returns all stored matches ordered by date.
func (s *Store) Matches(ctx context.Context) ([]model.Match, error) {
	rows, err := s.pool.Query(ctx, "all_matches")
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(
			&m.ID, &m.EventID, &m.Season, &m.Date, &m.HomeTeam, &m.AwayTeam,
			&m.HomeTeamID, &m.AwayTeamID, &m.HomeScore, &m.AwayScore, &m.Venue,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// LeagueSummary returns the precomputed one-row league aggregate. A missing
// row yields the zero value, not an error.
func (s *Store) LeagueSummary(ctx context.Context) (model.LeagueSummary, error) {
	var sum model.LeagueSummary
	err := s.pool.QueryRow(ctx, "league_summary").Scan(
		&sum.TotalMatches, &sum.TotalGoals, &sum.AverageGoalsPerMatch,
		&sum.BTTSPercentage, &sum.CleanSheetsPercentage, &sum.AverageCornersPerMatch,
		&sum.AverageCardsPerMatch, &sum.XGAvgPerMatch,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LeagueSummary{}, nil
	}
	if err != nil {
		return model.LeagueSummary{}, fmt.Errorf("query league summary: %w", err)
	}
	return sum, nil
}

// UserByUsername looks up a login account. Returns ErrNotFound when the
// username is unknown.
func (s *Store) UserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, "user_by_username", username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("query user %q: %w", username, err)
	}
	return u, nil
}

// TeamIDByName resolves a team's internal id from its exact display name.
// Used by match sync to attach team references.
func (s *Store) TeamIDByName(ctx context.Context, name string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, "team_id_by_name", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query team id for %q: %w", name, err)
	}
	return id, nil
}
