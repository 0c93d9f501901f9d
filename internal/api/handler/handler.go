// Package handler provides HTTP handlers for all API endpoints. Read
// endpoints go through the stats service and serve from the TTL cache;
// mutating endpoints (sync, login) bypass it.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cupstats/cupstats/internal/api/respond"
	"github.com/cupstats/cupstats/internal/auth"
	"github.com/cupstats/cupstats/internal/cache"
	"github.com/cupstats/cupstats/internal/config"
	"github.com/cupstats/cupstats/internal/ingest"
	"github.com/cupstats/cupstats/internal/model"
	"github.com/cupstats/cupstats/internal/stats"
)

// Pinger is the database health probe surface.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// UserStore looks up login accounts.
type UserStore interface {
	UserByUsername(ctx context.Context, username string) (model.User, error)
}

// SyncRunner triggers provider reconciliation per entity type.
type SyncRunner interface {
	SyncTeams(ctx context.Context) ingest.ImportResult
	SyncPlayers(ctx context.Context) ingest.ImportResult
	SyncMatches(ctx context.Context) ingest.ImportResult
}

// Deps bundles the shared dependencies handlers need.
type Deps struct {
	DB      Pinger
	Cache   *cache.Cache
	Config  *config.Config
	Service *stats.Service
	Users   UserStore
	Issuer  *auth.TokenIssuer
	Syncer  SyncRunner
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	db      Pinger
	cache   *cache.Cache
	cfg     *config.Config
	service *stats.Service
	users   UserStore
	issuer  *auth.TokenIssuer
	syncer  SyncRunner
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	return &Handler{
		db:      d.DB,
		cache:   d.Cache,
		cfg:     d.Config,
		service: d.Service,
		users:   d.Users,
		issuer:  d.Issuer,
		syncer:  d.Syncer,
	}
}

// serveCached serves a read endpoint through the TTL cache with ETag
// revalidation. build runs only on a cache miss.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func(ctx context.Context) (interface{}, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := build(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Cup Stats API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"optimizations": []string{
			"pgxpool_connection_pooling",
			"prepared_statements",
			"gzip_compression",
			"in_memory_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
