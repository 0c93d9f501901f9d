// Package model holds the flat row types shared by the store, the metrics
// engine, and the aggregation layer. Counting stats are the only
// authoritative values; every derived number is recomputed on read by
// internal/metrics and never trusted from storage.
package model

// Team is a row in the teams table. ExternalID is the provider's team
// identifier (TheSportsDB idTeam, or a synthetic id for CSV imports).
type Team struct {
	ID         int
	ExternalID string
	Name       string
	Country    string
	Badge      string
}

// TeamStats holds one team's season counting stats. A team without a stats
// row is represented by the zero value everywhere a join misses.
type TeamStats struct {
	TeamID            int
	MatchesPlayed     int
	Wins              int
	Draws             int
	Losses            int
	GoalsScored       int
	GoalsConceded     int
	CleanSheets       int
	TotalShots        int
	ShotsOnTarget     int
	AveragePossession float64
	XGForAvg          float64
	XGAgainstAvg      float64
}

// Player is a row in the players table. TeamID is nil when the player has no
// owning team reference.
type Player struct {
	ID          int
	ExternalID  string
	Name        string
	Position    string
	Nationality string
	DateOfBirth string
	Height      string
	TeamID      *int
}

// PlayerStats holds one player's season counting stats plus the position and
// current-club snapshot carried by the source data. Zero value substitutes
// for a missing row.
type PlayerStats struct {
	PlayerID           int
	Appearances        int
	MinutesPlayed      int
	Goals              int
	Assists            int
	ShotsTotal         int
	ShotsOnTarget      int
	Tackles            int
	Interceptions      int
	YellowCards        int
	RedCards           int
	PassCompletionRate float64
	AverageRating      float64
	Position           string
	CurrentClub        string
	Age                int
}

// Match is a row in the matches table, upserted by EventID.
type Match struct {
	ID         int
	EventID    string
	Season     string
	Date       string
	HomeTeam   string
	AwayTeam   string
	HomeTeamID *int
	AwayTeamID *int
	HomeScore  int
	AwayScore  int
	Venue      string
}

// LeagueSummary is the precomputed one-row league aggregate ingested from
// league.csv. Served as-is; nothing here is derived by this system.
type LeagueSummary struct {
	TotalMatches           int     `json:"total_matches"`
	TotalGoals             int     `json:"total_goals"`
	AverageGoalsPerMatch   float64 `json:"average_goals_per_match"`
	BTTSPercentage         float64 `json:"btts_percentage"`
	CleanSheetsPercentage  float64 `json:"clean_sheets_percentage"`
	AverageCornersPerMatch float64 `json:"average_corners_per_match"`
	AverageCardsPerMatch   float64 `json:"average_cards_per_match"`
	XGAvgPerMatch          float64 `json:"xg_avg_per_match"`
}

// User is a login account. PasswordHash is a bcrypt hash.
type User struct {
	ID           int
	Username     string
	PasswordHash string
}

// TeamRecord bundles a team with its (possibly zero-valued) stats and the
// aggregates computed across its roster.
type TeamRecord struct {
	Team            Team
	Stats           TeamStats
	TotalPlayers    int
	TotalGoals      int
	TotalAssists    int
	AvgPlayerRating float64
}

// PlayerRecord bundles a player with its (possibly zero-valued) stats.
type PlayerRecord struct {
	Player Player
	Stats  PlayerStats
}
