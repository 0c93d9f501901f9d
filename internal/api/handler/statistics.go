package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cupstats/cupstats/internal/api/respond"
	"github.com/cupstats/cupstats/internal/cache"
)

// LeagueStats returns league-wide aggregate numbers.
// @Summary League statistics
// @Description Returns the precomputed league-wide aggregates (average goals per match, BTTS percentage, clean sheet percentage, and so on).
// @Tags statistics
// @Produce json
// @Success 200 {object} model.LeagueSummary
// @Router /api/statistics/league [get]
func (h *Handler) LeagueStats(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "statistics:league", cache.TTLStatistics, func(ctx context.Context) (interface{}, error) {
		return h.service.League(ctx)
	})
}

// LeagueSummaryStats returns a compact league overview: the one-row summary
// plus team and match counts.
// @Summary League summary
// @Description Returns the league aggregates alongside team and match counts.
// @Tags statistics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/statistics/league/summary [get]
func (h *Handler) LeagueSummaryStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.service.League(ctx)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	teams, err := h.service.AllTeams(ctx)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	matches, err := h.service.AllMatches(ctx)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"league":        summary,
		"total_teams":   len(teams),
		"total_matches": len(matches),
	})
}

// TeamStats returns a single team's full statistics.
// @Summary Team statistics
// @Description Looks a team up case-insensitively by display name or country, resolving common abbreviations (uae, ksa).
// @Tags statistics
// @Produce json
// @Param name path string true "Team name or country"
// @Success 200 {object} stats.TeamDetail
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/statistics/teams/{name} [get]
func (h *Handler) TeamStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	detail, err := h.service.TeamByName(r.Context(), name)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if detail == nil {
		respond.WriteErrorf(w, http.StatusNotFound, "Team '%s' not found", name)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, detail)
}

// CompareTeams returns a head-to-head differential analysis of two teams.
// @Summary Compare two teams
// @Description Computes points, goal difference, attack and defense judgments for two teams. Ties report "Equal".
// @Tags statistics
// @Produce json
// @Param team1 path string true "First team name or country"
// @Param team2 path string true "Second team name or country"
// @Success 200 {object} stats.Comparison
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/statistics/comparison/{team1}/{team2} [get]
func (h *Handler) CompareTeams(w http.ResponseWriter, r *http.Request) {
	team1 := chi.URLParam(r, "team1")
	team2 := chi.URLParam(r, "team2")

	comparison, err := h.service.Compare(r.Context(), team1, team2)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if comparison == nil {
		respond.WriteError(w, http.StatusNotFound, "One or both teams not found")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, comparison)
}
