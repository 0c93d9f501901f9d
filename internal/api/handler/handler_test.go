package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cupstats/cupstats/internal/api"
	"github.com/cupstats/cupstats/internal/api/handler"
	"github.com/cupstats/cupstats/internal/auth"
	"github.com/cupstats/cupstats/internal/cache"
	"github.com/cupstats/cupstats/internal/config"
	"github.com/cupstats/cupstats/internal/ingest"
	"github.com/cupstats/cupstats/internal/model"
	"github.com/cupstats/cupstats/internal/stats"
	"github.com/cupstats/cupstats/internal/store"
)

type fakeStore struct {
	teams   []model.TeamRecord
	players []model.PlayerRecord
	matches []model.Match
	league  model.LeagueSummary
}

func (f *fakeStore) TeamRecords(ctx context.Context) ([]model.TeamRecord, error) {
	return f.teams, nil
}

func (f *fakeStore) PlayerRecords(ctx context.Context) ([]model.PlayerRecord, error) {
	return f.players, nil
}

func (f *fakeStore) Matches(ctx context.Context) ([]model.Match, error) {
	return f.matches, nil
}

func (f *fakeStore) LeagueSummary(ctx context.Context) (model.LeagueSummary, error) {
	return f.league, nil
}

type fakeDB struct{ err error }

func (f *fakeDB) HealthCheck(ctx context.Context) error { return f.err }

type fakeUsers struct{ users map[string]model.User }

func (f *fakeUsers) UserByUsername(ctx context.Context, username string) (model.User, error) {
	u, ok := f.users[username]
	if !ok {
		return model.User{}, store.ErrNotFound
	}
	return u, nil
}

type fakeSyncer struct{ result ingest.ImportResult }

func (f *fakeSyncer) SyncTeams(ctx context.Context) ingest.ImportResult   { return f.result }
func (f *fakeSyncer) SyncPlayers(ctx context.Context) ingest.ImportResult { return f.result }
func (f *fakeSyncer) SyncMatches(ctx context.Context) ingest.ImportResult { return f.result }

func testRouter(t *testing.T, fs *fakeStore) (http.Handler, *auth.TokenIssuer) {
	t.Helper()

	cfg := &config.Config{
		CORSAllowOrigins: []string{"*"},
		RateLimitEnabled: false,
	}
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	deps := handler.Deps{
		DB:      &fakeDB{},
		Cache:   cache.New(false),
		Config:  cfg,
		Service: stats.New(fs),
		Users:   &fakeUsers{users: map[string]model.User{"admin": {ID: 1, Username: "admin", PasswordHash: hash}}},
		Issuer:  issuer,
		Syncer:  &fakeSyncer{result: ingest.ImportResult{TeamsImported: 2}},
	}
	return api.NewRouter(deps, issuer, cfg), issuer
}

func seedStore() *fakeStore {
	return &fakeStore{
		teams: []model.TeamRecord{
			{
				Team:  model.Team{ID: 1, Name: "Qatar", Country: "Qatar"},
				Stats: model.TeamStats{MatchesPlayed: 6, Wins: 4, Draws: 1, Losses: 1, GoalsScored: 11, GoalsConceded: 4},
			},
			{
				Team:  model.Team{ID: 2, Name: "Oman", Country: "Oman"},
				Stats: model.TeamStats{MatchesPlayed: 6, Wins: 2, Draws: 2, Losses: 2, GoalsScored: 7, GoalsConceded: 7},
			},
		},
		players: []model.PlayerRecord{
			{
				Player: model.Player{ID: 1, Name: "Akram Afif", Position: "Forward", Nationality: "Qatar"},
				Stats:  model.PlayerStats{Goals: 5, Assists: 3, MinutesPlayed: 540, Position: "Forward"},
			},
			{
				Player: model.Player{ID: 2, Name: "Ali Salmeen", Position: "Defender", Nationality: "United Arab Emirates"},
				Stats:  model.PlayerStats{Goals: 1, Assists: 0, Tackles: 30, MinutesPlayed: 450, Position: "Centre-Back"},
			},
		},
		matches: []model.Match{
			{ID: 1, EventID: "e1", Season: "2021", HomeTeam: "Qatar", AwayTeam: "Oman", HomeScore: 2, AwayScore: 1},
		},
		league: model.LeagueSummary{TotalMatches: 32, TotalGoals: 80, AverageGoalsPerMatch: 2.5},
	}
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListTeams(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	rec := get(t, router, "/api/teams/")
	require.Equal(t, http.StatusOK, rec.Code)

	var teams []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	require.Len(t, teams, 2)
	assert.Equal(t, "Qatar", teams[0]["name"])
	assert.Equal(t, float64(13), teams[0]["points"])
	assert.Equal(t, float64(7), teams[0]["goal_difference"])
}

func TestListMatches(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	rec := get(t, router, "/api/matches/")
	require.Equal(t, http.StatusOK, rec.Code)

	var matches []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Qatar", matches[0]["home_team"])
	assert.Equal(t, "2021", matches[0]["season"])
	assert.Equal(t, float64(2), matches[0]["home_score"])
}

func TestTeamStatsNotFound(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	rec := get(t, router, "/api/statistics/teams/Atlantis")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Team 'Atlantis' not found"}`, rec.Body.String())
}

func TestTeamStatsAliasLookup(t *testing.T) {
	fs := seedStore()
	fs.teams[1].Team.Name = "UAE"
	fs.teams[1].Team.Country = "United Arab Emirates"
	router, _ := testRouter(t, fs)

	rec := get(t, router, "/api/statistics/teams/uae")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "United Arab Emirates", detail["country"])
}

func TestTopScorersEnvelope(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	rec := get(t, router, "/api/leaderboards/top-scorers?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Leaderboard []map[string]interface{} `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Leaderboard, 2)
	assert.Equal(t, float64(1), body.Leaderboard[0]["rank"])
	assert.Equal(t, "Akram Afif", body.Leaderboard[0]["full_name"])
	assert.Equal(t, float64(5), body.Leaderboard[0]["goals_overall"])
}

func TestTopDefendersFiltersAndComputes(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	rec := get(t, router, "/api/leaderboards/top-defenders")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Leaderboard []map[string]interface{} `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Leaderboard, 1)
	assert.Equal(t, "Ali Salmeen", body.Leaderboard[0]["full_name"])
	// 30 tackles in 450 minutes is 6 per 90.
	assert.Equal(t, float64(6), body.Leaderboard[0]["tackles_per_90_overall"])
}

func TestStandingsEnvelopeAndOrder(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	rec := get(t, router, "/api/leaderboards/standings")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Standings []map[string]interface{} `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Standings, 2)
	assert.Equal(t, float64(1), body.Standings[0]["position"])
	assert.Equal(t, "Qatar", body.Standings[0]["name"])
	assert.Equal(t, float64(13), body.Standings[0]["points"])
}

func TestComparisonNotFound(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	rec := get(t, router, "/api/statistics/comparison/Qatar/Atlantis")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "One or both teams not found"}`, rec.Body.String())
}

func TestLeagueStats(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	rec := get(t, router, "/api/statistics/league")
	require.Equal(t, http.StatusOK, rec.Code)

	var league map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &league))
	assert.Equal(t, float64(2.5), league["average_goals_per_match"])
}

func TestLoginSuccess(t *testing.T) {
	router, issuer := testRouter(t, seedStore())

	body := bytes.NewBufferString(`{"username": "admin", "password": "s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])

	userID, err := issuer.Verify(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, 1, userID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	for _, payload := range []string{
		`{"username": "admin", "password": "wrong"}`,
		`{"username": "nobody", "password": "s3cret"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error": "Invalid credentials"}`, rec.Body.String())
	}
}

func TestSyncRequiresToken(t *testing.T) {
	router, issuer := testRouter(t, seedStore())

	req := httptest.NewRequest(http.MethodPost, "/api/teams/sync", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := issuer.Issue(1)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/api/teams/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["teams_synced"])
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := testRouter(t, seedStore())

	rec := get(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, router, "/health/db")
	require.Equal(t, http.StatusOK, rec.Code)
}
