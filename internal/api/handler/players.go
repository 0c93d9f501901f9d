package handler

import (
	"context"
	"net/http"

	"github.com/cupstats/cupstats/internal/api/respond"
	"github.com/cupstats/cupstats/internal/cache"
	"github.com/cupstats/cupstats/internal/stats"
)

// ListPlayers returns players with position-aware stat projections.
// @Summary List players
// @Description Returns players joined with statistics. Supports case-insensitive filtering by team (current club, falling back to nationality) and by position category.
// @Tags players
// @Produce json
// @Param team query string false "Team name filter"
// @Param position query string false "Position category (Goalkeeper, Defender, Midfielder, Forward)"
// @Success 200 {array} interface{}
// @Router /api/players/ [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")
	category := stats.ParseCategory(r.URL.Query().Get("position"))

	key := "players:team=" + team + ":position=" + string(category)
	h.serveCached(w, r, key, cache.TTLPlayers, func(ctx context.Context) (interface{}, error) {
		return h.service.Players(ctx, team, category)
	})
}

// SyncPlayers pulls rosters from the external provider and upserts them.
// @Summary Sync players from provider
// @Description Upserts every stored team's roster by external id. Requires a bearer token.
// @Tags players
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/players/sync [post]
func (h *Handler) SyncPlayers(w http.ResponseWriter, r *http.Request) {
	result := h.syncer.SyncPlayers(r.Context())
	h.cache.Invalidate()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"players_synced": result.PlayersImported,
		"skipped":        result.RowsSkipped,
		"errors":         result.Errors,
	})
}
