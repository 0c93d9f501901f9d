package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cupstats/cupstats/internal/model"
)

// TeamRow is one parsed teams.csv row: identity plus season counting stats.
type TeamRow struct {
	CommonName string
	Country    string
	Stats      model.TeamStats
}

// PlayerRow is one parsed players.csv row.
type PlayerRow struct {
	FullName    string
	Nationality string
	CurrentClub string
	Position    string
	Age         int
	Stats       model.PlayerStats
}

// MatchRow is one parsed matches.csv row.
type MatchRow struct {
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Season    string
	Date      string
	Venue     string
}

// header maps lowercased column names to indices so column order in the
// source files does not matter.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	cols, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(cols))
	for i, col := range cols {
		h[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return h, nil
}

func (h header) str(record []string, name string) string {
	idx, ok := h[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (h header) int(record []string, name string) int {
	return safeInt(h.str(record, name))
}

func (h header) float(record []string, name string) float64 {
	return safeFloat(h.str(record, name))
}

// safeInt converts a CSV cell to int; malformed or missing values become 0.
// Float-formatted cells ("3.0") are truncated like the source data expects.
func safeInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// safeFloat converts a CSV cell to float64; malformed values become 0.
func safeFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // source exports have ragged rows
	return cr
}

// ParseTeams reads teams.csv. Rows without a country are skipped.
func ParseTeams(r io.Reader) (rows []TeamRow, skipped int, err error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, 0, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		commonName := h.str(record, "common_name")
		country := h.str(record, "country")
		if country == "" {
			country = commonName
		}
		if country == "" {
			skipped++
			continue
		}

		rows = append(rows, TeamRow{
			CommonName: commonName,
			Country:    country,
			Stats: model.TeamStats{
				MatchesPlayed:     h.int(record, "matches_played"),
				Wins:              h.int(record, "wins"),
				Draws:             h.int(record, "draws"),
				Losses:            h.int(record, "losses"),
				GoalsScored:       h.int(record, "goals_scored"),
				GoalsConceded:     h.int(record, "goals_conceded"),
				CleanSheets:       h.int(record, "clean_sheets"),
				TotalShots:        h.int(record, "shots"),
				ShotsOnTarget:     h.int(record, "shots_on_target"),
				AveragePossession: h.float(record, "average_possession"),
				XGForAvg:          h.float(record, "xg_for_avg_overall"),
				XGAgainstAvg:      h.float(record, "xg_against_avg_overall"),
			},
		})
	}
	return rows, skipped, nil
}

// ParsePlayers reads players.csv. Rows without a full name are skipped.
// Blank positions default to Midfielder, matching the source data policy.
func ParsePlayers(r io.Reader) (rows []PlayerRow, skipped int, err error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, 0, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		fullName := h.str(record, "full_name")
		if fullName == "" {
			skipped++
			continue
		}

		position := h.str(record, "position")
		if position == "" {
			position = "Midfielder"
		}

		rows = append(rows, PlayerRow{
			FullName:    fullName,
			Nationality: h.str(record, "nationality"),
			CurrentClub: h.str(record, "current club"),
			Position:    position,
			Age:         h.int(record, "age"),
			Stats: model.PlayerStats{
				Appearances:        h.int(record, "appearances_overall"),
				MinutesPlayed:      h.int(record, "minutes_played_overall"),
				Goals:              h.int(record, "goals_overall"),
				Assists:            h.int(record, "assists_overall"),
				ShotsOnTarget:      h.int(record, "shots_on_target_overall"),
				ShotsTotal:         h.int(record, "shots_total_overall"),
				Tackles:            h.int(record, "tackles_total_overall"),
				Interceptions:      h.int(record, "interceptions_total_overall"),
				YellowCards:        h.int(record, "yellow_cards_overall"),
				RedCards:           h.int(record, "red_cards_overall"),
				PassCompletionRate: h.float(record, "pass_completion_rate_overall"),
				AverageRating:      h.float(record, "average_rating_overall"),
				Position:           position,
				Age:                h.int(record, "age"),
			},
		})
	}
	return rows, skipped, nil
}

// ParseMatches reads matches.csv. Rows missing either team name are skipped.
func ParseMatches(r io.Reader) (rows []MatchRow, skipped int, err error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, 0, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		home := h.str(record, "home_team_name")
		away := h.str(record, "away_team_name")
		if home == "" || away == "" {
			skipped++
			continue
		}

		venue := h.str(record, "stadium_name")
		if venue == "" {
			venue = "TBD"
		}

		rows = append(rows, MatchRow{
			HomeTeam:  home,
			AwayTeam:  away,
			HomeScore: h.int(record, "home_team_goal_count"),
			AwayScore: h.int(record, "away_team_goal_count"),
			Season:    h.str(record, "season"),
			Date:      h.str(record, "date_gmt"),
			Venue:     venue,
		})
	}
	return rows, skipped, nil
}

// ParseLeague reads the one-row league.csv aggregate. Missing file content
// yields the zero value.
func ParseLeague(r io.Reader) (model.LeagueSummary, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return model.LeagueSummary{}, err
	}

	record, err := cr.Read()
	if err == io.EOF {
		return model.LeagueSummary{}, nil
	}
	if err != nil {
		return model.LeagueSummary{}, fmt.Errorf("read league row: %w", err)
	}

	return model.LeagueSummary{
		TotalMatches:           h.int(record, "total_matches"),
		TotalGoals:             h.int(record, "total_goals"),
		AverageGoalsPerMatch:   h.float(record, "average_goals_per_match"),
		BTTSPercentage:         h.float(record, "btts_percentage"),
		CleanSheetsPercentage:  h.float(record, "clean_sheets_percentage"),
		AverageCornersPerMatch: h.float(record, "average_corners_per_match"),
		AverageCardsPerMatch:   h.float(record, "average_cards_per_match"),
		XGAvgPerMatch:          h.float(record, "xg_avg_per_match"),
	}, nil
}
