package handler

import (
	"context"
	"net/http"

	"github.com/cupstats/cupstats/internal/api/respond"
	"github.com/cupstats/cupstats/internal/cache"
)

// ListTeams returns all teams with stats and roster aggregates.
// @Summary List all teams
// @Description Returns every team with counting stats, derived points and goal difference, and roster aggregates.
// @Tags teams
// @Produce json
// @Success 200 {array} stats.TeamView
// @Router /api/teams/ [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "teams:all", cache.TTLTeams, func(ctx context.Context) (interface{}, error) {
		return h.service.AllTeams(ctx)
	})
}

// SyncTeams pulls teams from the external provider and upserts them.
// @Summary Sync teams from provider
// @Description Upserts the league's teams by external id. Requires a bearer token.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/teams/sync [post]
func (h *Handler) SyncTeams(w http.ResponseWriter, r *http.Request) {
	result := h.syncer.SyncTeams(r.Context())
	h.cache.Invalidate()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"teams_synced": result.TeamsImported,
		"skipped":      result.RowsSkipped,
		"errors":       result.Errors,
	})
}
