package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeInt(t *testing.T) {
	assert.Equal(t, 7, safeInt("7"))
	assert.Equal(t, 3, safeInt("3.0"))
	assert.Equal(t, 3, safeInt("3.9"))
	assert.Equal(t, 0, safeInt(""))
	assert.Equal(t, 0, safeInt("N/A"))
}

func TestSafeFloat(t *testing.T) {
	assert.Equal(t, 1.5, safeFloat("1.5"))
	assert.Equal(t, 0.0, safeFloat(""))
	assert.Equal(t, 0.0, safeFloat("abc"))
}

func TestParseTeams(t *testing.T) {
	data := strings.Join([]string{
		"common_name,country,matches_played,wins,draws,losses,goals_scored,goals_conceded,clean_sheets,average_possession",
		"Qatar,Qatar,6,4,1,1,11,4,3,55.2",
		"UAE,United Arab Emirates,5,3,0,2,8,6,1,48.0",
		",,,,,,,,,", // no identity at all
	}, "\n")

	rows, skipped, err := ParseTeams(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, skipped)

	assert.Equal(t, "Qatar", rows[0].Country)
	assert.Equal(t, 6, rows[0].Stats.MatchesPlayed)
	assert.Equal(t, 4, rows[0].Stats.Wins)
	assert.Equal(t, 55.2, rows[0].Stats.AveragePossession)

	assert.Equal(t, "UAE", rows[1].CommonName)
	assert.Equal(t, "United Arab Emirates", rows[1].Country)
}

func TestParseTeamsCountryFallsBackToCommonName(t *testing.T) {
	data := "common_name,country,wins\nOman,,2\n"

	rows, skipped, err := ParseTeams(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "Oman", rows[0].Country)
}

func TestParsePlayers(t *testing.T) {
	data := strings.Join([]string{
		"full_name,nationality,Current Club,position,age,goals_overall,assists_overall,minutes_played_overall,average_rating_overall",
		"Akram Afif,Qatar,Al Sadd,Forward,25,5,3,540,7.8",
		",Qatar,Al Sadd,Forward,22,0,0,0,0",
		"Unknown Position,Qatar,Al Rayyan,,24,1,0,180,6.5",
	}, "\n")

	rows, skipped, err := ParsePlayers(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, skipped)

	assert.Equal(t, "Akram Afif", rows[0].FullName)
	assert.Equal(t, "Al Sadd", rows[0].CurrentClub)
	assert.Equal(t, 5, rows[0].Stats.Goals)
	assert.Equal(t, 540, rows[0].Stats.MinutesPlayed)
	assert.Equal(t, 7.8, rows[0].Stats.AverageRating)

	// Blank position defaults to Midfielder.
	assert.Equal(t, "Midfielder", rows[1].Position)
	assert.Equal(t, "Midfielder", rows[1].Stats.Position)
}

func TestParseMatches(t *testing.T) {
	data := strings.Join([]string{
		"home_team_name,away_team_name,home_team_goal_count,away_team_goal_count,season,date_gmt,stadium_name",
		"Qatar,Oman,2,1,2021,Dec 10 2021,Education City Stadium",
		"Tunisia,,1,0,2021,Dec 11 2021,",
		"Algeria,Egypt,1,1,2021,Dec 12 2021,",
	}, "\n")

	rows, skipped, err := ParseMatches(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, skipped)

	assert.Equal(t, "Qatar", rows[0].HomeTeam)
	assert.Equal(t, 2, rows[0].HomeScore)
	assert.Equal(t, "2021", rows[0].Season)
	assert.Equal(t, "Education City Stadium", rows[0].Venue)

	// Missing stadium falls back to TBD.
	assert.Equal(t, "TBD", rows[1].Venue)
}

func TestParseLeague(t *testing.T) {
	data := "total_matches,total_goals,average_goals_per_match,btts_percentage\n32,80,2.5,44.0\n"

	league, err := ParseLeague(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 32, league.TotalMatches)
	assert.Equal(t, 80, league.TotalGoals)
	assert.Equal(t, 2.5, league.AverageGoalsPerMatch)
	assert.Equal(t, 44.0, league.BTTSPercentage)
}

func TestParseLeagueEmptyFile(t *testing.T) {
	league, err := ParseLeague(strings.NewReader("total_matches,total_goals\n"))
	require.NoError(t, err)
	assert.Zero(t, league.TotalMatches)
}

func TestResolveTeam(t *testing.T) {
	ids := map[string]int{"qatar": 1, "al sadd": 2}

	id, ok := resolveTeam(ids, "Qatar", "Al Sadd")
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	// Nationality miss falls back to club.
	id, ok = resolveTeam(ids, "Brazil", "Al Sadd")
	assert.True(t, ok)
	assert.Equal(t, 2, id)

	_, ok = resolveTeam(ids, "Brazil", "Santos")
	assert.False(t, ok)
}
