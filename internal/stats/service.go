// Package stats is the query/aggregation layer: it locates records through a
// Store, applies filters and sorting, runs the metrics engine per row, and
// shapes the JSON views the API serves. It is stateless; every call is an
// independent read of the latest committed store state.
package stats

import (
	"context"
	"sort"
	"strings"

	"github.com/cupstats/cupstats/internal/metrics"
	"github.com/cupstats/cupstats/internal/model"
)

// Store is the read surface the aggregation layer needs. The pgx repository
// in internal/store implements it; tests substitute fakes.
type Store interface {
	TeamRecords(ctx context.Context) ([]model.TeamRecord, error)
	PlayerRecords(ctx context.Context) ([]model.PlayerRecord, error)
	Matches(ctx context.Context) ([]model.Match, error)
	LeagueSummary(ctx context.Context) (model.LeagueSummary, error)
}

// Service exposes all derived read views.
type Service struct {
	store Store
}

// New creates a Service over a Store.
func New(store Store) *Service {
	return &Service{store: store}
}

// Common team-name abbreviations seen in client requests.
var teamAliases = map[string]string{
	"uae": "united arab emirates",
	"ksa": "saudi arabia",
}

// NormalizeTeamName lowercases, trims, and resolves known abbreviations.
func NormalizeTeamName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := teamAliases[lowered]; ok {
		return mapped
	}
	return lowered
}

// TeamView is the canonical serialized team shape: counting stats plus
// derived fields recomputed from them, plus roster aggregates.
type TeamView struct {
	TeamName          string  `json:"team_name"`
	CommonName        string  `json:"common_name"`
	Country           string  `json:"country"`
	Name              string  `json:"name"`
	Badge             string  `json:"badge"`
	MatchesPlayed     int     `json:"matches_played"`
	Wins              int     `json:"wins"`
	Draws             int     `json:"draws"`
	Losses            int     `json:"losses"`
	GoalsScored       int     `json:"goals_scored"`
	GoalsConceded     int     `json:"goals_conceded"`
	CleanSheets       int     `json:"clean_sheets"`
	Shots             int     `json:"shots"`
	ShotsOnTarget     int     `json:"shots_on_target"`
	AveragePossession float64 `json:"average_possession"`
	Points            int     `json:"points"`
	GoalDifference    int     `json:"goal_difference"`
	TotalPlayers      int     `json:"total_players"`
	TotalGoals        int     `json:"total_goals"`
	TotalAssists      int     `json:"total_assists"`
	AvgPlayerRating   float64 `json:"avg_player_rating"`
}

func buildTeamView(rec model.TeamRecord) TeamView {
	derived := metrics.ComputeTeam(rec.Stats)
	return TeamView{
		TeamName:          rec.Team.Name,
		CommonName:        rec.Team.Name,
		Country:           rec.Team.Country,
		Name:              rec.Team.Name,
		Badge:             rec.Team.Badge,
		MatchesPlayed:     rec.Stats.MatchesPlayed,
		Wins:              rec.Stats.Wins,
		Draws:             rec.Stats.Draws,
		Losses:            rec.Stats.Losses,
		GoalsScored:       rec.Stats.GoalsScored,
		GoalsConceded:     rec.Stats.GoalsConceded,
		CleanSheets:       rec.Stats.CleanSheets,
		Shots:             rec.Stats.TotalShots,
		ShotsOnTarget:     rec.Stats.ShotsOnTarget,
		AveragePossession: metrics.Round1(rec.Stats.AveragePossession),
		Points:            derived.Points,
		GoalDifference:    derived.GoalDifference,
		TotalPlayers:      rec.TotalPlayers,
		TotalGoals:        rec.TotalGoals,
		TotalAssists:      rec.TotalAssists,
		AvgPlayerRating:   metrics.Round1(rec.AvgPlayerRating),
	}
}

// AllTeams returns every team joined with its stats and roster aggregates.
func (s *Service) AllTeams(ctx context.Context) ([]TeamView, error) {
	recs, err := s.store.TeamRecords(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]TeamView, len(recs))
	for i, rec := range recs {
		views[i] = buildTeamView(rec)
	}
	return views, nil
}

// TeamDetail is the single-team statistics payload: the canonical view plus
// the full derived metric set and league context.
type TeamDetail struct {
	TeamView
	WinPercentage        float64          `json:"win_percentage"`
	DrawPercentage       float64          `json:"draw_percentage"`
	LossPercentage       float64          `json:"loss_percentage"`
	CleanSheetPercentage float64          `json:"clean_sheet_percentage"`
	GoalsPerMatch        float64          `json:"goals_per_match"`
	GoalsAgainstPerMatch float64          `json:"goals_against_per_match"`
	ShotAccuracy         float64          `json:"shot_accuracy"`
	XGDifference         float64          `json:"xg_difference"`
	AttackStrength       metrics.Strength `json:"attack_strength"`
	DefensiveStability   metrics.Strength `json:"defensive_stability"`
	LeagueAvgGoals       float64          `json:"league_avg_goals"`
	LeagueCleanSheetsPct float64          `json:"league_clean_sheets_percentage"`
	LeagueAvgCorners     float64          `json:"league_avg_corners"`
}

// TeamByName looks a team up case-insensitively by display name or country,
// resolving common abbreviations. Returns nil when no team matches.
func (s *Service) TeamByName(ctx context.Context, name string) (*TeamDetail, error) {
	target := NormalizeTeamName(name)
	recs, err := s.store.TeamRecords(ctx)
	if err != nil {
		return nil, err
	}

	var match *model.TeamRecord
	for i := range recs {
		if NormalizeTeamName(recs[i].Team.Country) == target || NormalizeTeamName(recs[i].Team.Name) == target {
			match = &recs[i]
			break
		}
	}
	if match == nil {
		return nil, nil
	}

	derived := metrics.ComputeTeam(match.Stats)
	detail := &TeamDetail{
		TeamView:             buildTeamView(*match),
		WinPercentage:        derived.WinPercentage,
		DrawPercentage:       derived.DrawPercentage,
		LossPercentage:       derived.LossPercentage,
		CleanSheetPercentage: derived.CleanSheetPercentage,
		GoalsPerMatch:        derived.GoalsPerMatch,
		GoalsAgainstPerMatch: derived.GoalsAgainstPerMatch,
		ShotAccuracy:         derived.ShotAccuracy,
		XGDifference:         derived.XGDifference,
		AttackStrength:       derived.AttackStrength,
		DefensiveStability:   derived.DefensiveStability,
	}

	// League context is best-effort; a missing summary row leaves zeros.
	if summary, err := s.store.LeagueSummary(ctx); err == nil {
		detail.LeagueAvgGoals = summary.AverageGoalsPerMatch
		detail.LeagueCleanSheetsPct = summary.CleanSheetsPercentage
		detail.LeagueAvgCorners = summary.AverageCornersPerMatch
	}
	return detail, nil
}

// Players returns projected player variants, optionally filtered by team
// (case-insensitive on current club, falling back to nationality) and by
// position category.
func (s *Service) Players(ctx context.Context, team string, category Category) ([]interface{}, error) {
	recs, err := s.store.PlayerRecords(ctx)
	if err != nil {
		return nil, err
	}

	target := ""
	if team != "" {
		target = NormalizeTeamName(team)
	}

	views := make([]interface{}, 0, len(recs))
	for _, rec := range recs {
		if target != "" {
			club := rec.Stats.CurrentClub
			if club == "" {
				club = rec.Player.Nationality
			}
			if NormalizeTeamName(club) != target {
				continue
			}
		}
		if category != CategoryUnknown {
			position := rec.Stats.Position
			if position == "" {
				position = rec.Player.Position
			}
			if !MatchesCategory(position, category) {
				continue
			}
		}
		views = append(views, BuildProfile(rec))
	}
	return views, nil
}

// StandingsRow is one row of the league table.
type StandingsRow struct {
	Position      int    `json:"position"`
	Country       string `json:"country"`
	Name          string `json:"name"`
	MatchesPlayed int    `json:"matches_played"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Losses        int    `json:"losses"`
	GoalsScored   int    `json:"goals_scored"`
	GoalsConceded int    `json:"goals_conceded"`
	CleanSheets   int    `json:"clean_sheets"`
	Points        int    `json:"points"`
}

// Standings orders all teams by wins, then points, and assigns 1-based
// positions in that order.
func (s *Service) Standings(ctx context.Context) ([]StandingsRow, error) {
	views, err := s.AllTeams(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Wins != views[j].Wins {
			return views[i].Wins > views[j].Wins
		}
		return views[i].Points > views[j].Points
	})

	rows := make([]StandingsRow, len(views))
	for i, v := range views {
		rows[i] = StandingsRow{
			Position:      i + 1,
			Country:       v.Country,
			Name:          v.Name,
			MatchesPlayed: v.MatchesPlayed,
			Wins:          v.Wins,
			Draws:         v.Draws,
			Losses:        v.Losses,
			GoalsScored:   v.GoalsScored,
			GoalsConceded: v.GoalsConceded,
			CleanSheets:   v.CleanSheets,
			Points:        v.Points,
		}
	}
	return rows, nil
}

// MatchView is the serialized match shape.
type MatchView struct {
	EventID   string `json:"event_id"`
	Season    string `json:"season"`
	Date      string `json:"date"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Venue     string `json:"venue"`
}

// AllMatches lists every stored match.
func (s *Service) AllMatches(ctx context.Context) ([]MatchView, error) {
	matches, err := s.store.Matches(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]MatchView, len(matches))
	for i, m := range matches {
		views[i] = MatchView{
			EventID:   m.EventID,
			Season:    m.Season,
			Date:      m.Date,
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			HomeScore: m.HomeScore,
			AwayScore: m.AwayScore,
			Venue:     m.Venue,
		}
	}
	return views, nil
}

// League returns the precomputed one-row league summary.
func (s *Service) League(ctx context.Context) (model.LeagueSummary, error) {
	return s.store.LeagueSummary(ctx)
}
