package stats

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cupstats/cupstats/internal/model"
)

func leaderboardFixture() *fakeStore {
	return &fakeStore{players: []model.PlayerRecord{
		playerRec("Top Scorer", "Striker", "Egypt", 12, 3, 1800),
		playerRec("Playmaker", "Central Midfield", "Morocco", 4, 11, 1800),
		playerRec("Second Scorer", "Striker", "Qatar", 9, 1, 1700),
		{
			Player: model.Player{Name: "Stopper", Position: "Centre-Back", Nationality: "Jordan"},
			Stats: model.PlayerStats{
				Position:      "Centre-Back",
				CurrentClub:   "Jordan",
				Tackles:       60,
				MinutesPlayed: 1800,
			},
		},
	}}
}

func TestLeaderboard_SortDescAndRank(t *testing.T) {
	svc := New(leaderboardFixture())

	entries, err := svc.Leaderboard(context.Background(), "goals_overall", 10, CategoryUnknown)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "Top Scorer", entries[0].FullName)
	assert.Equal(t, "Second Scorer", entries[1].FullName)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestLeaderboard_Limit(t *testing.T) {
	svc := New(leaderboardFixture())

	entries, err := svc.Leaderboard(context.Background(), "goals_overall", 2, CategoryUnknown)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLeaderboard_UnknownStatFallsBackToGoals(t *testing.T) {
	svc := New(leaderboardFixture())

	entries, err := svc.Leaderboard(context.Background(), "no_such_stat", 10, CategoryUnknown)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "Top Scorer", entries[0].FullName)
	assert.Equal(t, StatGoals, entries[0].StatName)
}

func TestLeaderboard_TacklesPer90ComputedOnTheFly(t *testing.T) {
	svc := New(leaderboardFixture())

	entries, err := svc.Leaderboard(context.Background(), "tackles_per_90_overall", 10, CategoryDefender)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the centre-back passes the defender filter")

	assert.Equal(t, "Stopper", entries[0].FullName)
	assert.Equal(t, 3.0, entries[0].StatValue, "60*90/1800")
}

func TestLeaderboard_CategoryFilter(t *testing.T) {
	svc := New(leaderboardFixture())

	entries, err := svc.Leaderboard(context.Background(), "goals_overall", 10, CategoryForward)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Top Scorer", entries[0].FullName)
	assert.Equal(t, "Second Scorer", entries[1].FullName)
}

func TestLeaderboardEntry_JSONShape(t *testing.T) {
	entry := LeaderboardEntry{
		Rank:        1,
		FullName:    "Top Scorer",
		Position:    "Striker",
		Nationality: "Egypt",
		CurrentClub: "Egypt",
		Goals:       12,
		Assists:     3,
		StatName:    "goals_overall",
		StatValue:   12,
	}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &obj))

	assert.Equal(t, float64(1), obj["rank"])
	assert.Equal(t, "Top Scorer", obj["full_name"])
	assert.Equal(t, "Egypt", obj["Current Club"])
	assert.Equal(t, float64(12), obj["goals_overall"])
	assert.Equal(t, float64(3), obj["assists_overall"])
}

func TestLeaderboard_DynamicStatKey(t *testing.T) {
	svc := New(leaderboardFixture())

	entries, err := svc.Leaderboard(context.Background(), "tackles_per_90_overall", 1, CategoryDefender)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, err := json.Marshal(entries[0])
	require.NoError(t, err)

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &obj))
	assert.Equal(t, 3.0, obj["tackles_per_90_overall"])
}
