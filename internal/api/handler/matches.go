package handler

import (
	"context"
	"net/http"

	"github.com/cupstats/cupstats/internal/api/respond"
	"github.com/cupstats/cupstats/internal/cache"
)

// ListMatches returns all stored matches ordered by date.
// @Summary List matches
// @Description Returns every stored match ordered by date.
// @Tags matches
// @Produce json
// @Success 200 {array} stats.MatchView
// @Router /api/matches/ [get]
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "matches:all", cache.TTLMatches, func(ctx context.Context) (interface{}, error) {
		return h.service.AllMatches(ctx)
	})
}

// SyncMatches pulls the season's events from the provider and upserts them.
// @Summary Sync matches from provider
// @Description Upserts season events by event id. Requires a bearer token.
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/matches/sync [post]
func (h *Handler) SyncMatches(w http.ResponseWriter, r *http.Request) {
	result := h.syncer.SyncMatches(r.Context())
	h.cache.Invalidate()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"matches_synced": result.MatchesImported,
		"skipped":        result.RowsSkipped,
		"errors":         result.Errors,
	})
}
