package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cupstats/cupstats/internal/cache"
	"github.com/cupstats/cupstats/internal/stats"
)

const defaultLeaderboardLimit = 10

func limitParam(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultLeaderboardLimit
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request, name, stat string, category stats.Category) {
	limit := limitParam(r)
	key := "leaderboard:" + name + ":limit=" + strconv.Itoa(limit)
	h.serveCached(w, r, key, cache.TTLLeaderboards, func(ctx context.Context) (interface{}, error) {
		entries, err := h.service.Leaderboard(ctx, stat, limit, category)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"leaderboard": entries}, nil
	})
}

// TopScorers returns the goals leaderboard.
// @Summary Top scorers
// @Description Returns players ranked by goals scored.
// @Tags leaderboards
// @Produce json
// @Param limit query int false "Number of rows" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /api/leaderboards/top-scorers [get]
func (h *Handler) TopScorers(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, "top-scorers", stats.StatGoals, stats.CategoryUnknown)
}

// TopAssists returns the assists leaderboard.
// @Summary Top assist providers
// @Description Returns players ranked by assists.
// @Tags leaderboards
// @Produce json
// @Param limit query int false "Number of rows" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /api/leaderboards/top-assists [get]
func (h *Handler) TopAssists(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, "top-assists", "assists_overall", stats.CategoryUnknown)
}

// TopDefenders returns defenders ranked by tackles per 90 minutes.
// @Summary Top defenders
// @Description Returns defenders ranked by tackles per 90 minutes, computed from stored tackles and minutes.
// @Tags leaderboards
// @Produce json
// @Param limit query int false "Number of rows" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /api/leaderboards/top-defenders [get]
func (h *Handler) TopDefenders(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, "top-defenders", "tackles_per_90_overall", stats.CategoryDefender)
}

// Standings returns the league table ordered by wins then points.
// @Summary League standings
// @Description Returns all teams ordered by wins, then points, with 1-based positions.
// @Tags leaderboards
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/leaderboards/standings [get]
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "leaderboard:standings", cache.TTLLeaderboards, func(ctx context.Context) (interface{}, error) {
		rows, err := h.service.Standings(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"standings": rows}, nil
	})
}
