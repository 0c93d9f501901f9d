package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/cupstats/cupstats/internal/api/handler"
	"github.com/cupstats/cupstats/internal/auth"
	"github.com/cupstats/cupstats/internal/config"
)

// NewRouter creates and configures the chi router with all middleware and
// routes. The handler dependency bundle is built by the caller so tests can
// substitute fakes.
func NewRouter(deps handler.Deps, issuer *auth.TokenIssuer, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(deps)
	requireToken := RequireToken(issuer)

	// --- Routes ---

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.ListTeams)
			r.With(requireToken).Post("/sync", h.SyncTeams)
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.ListPlayers)
			r.With(requireToken).Post("/sync", h.SyncPlayers)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.ListMatches)
			r.With(requireToken).Post("/sync", h.SyncMatches)
		})

		r.Route("/leaderboards", func(r chi.Router) {
			r.Get("/top-scorers", h.TopScorers)
			r.Get("/top-assists", h.TopAssists)
			r.Get("/top-defenders", h.TopDefenders)
			r.Get("/standings", h.Standings)
		})

		r.Route("/statistics", func(r chi.Router) {
			r.Get("/league", h.LeagueStats)
			r.Get("/league/summary", h.LeagueSummaryStats)
			r.Get("/teams/{name}", h.TeamStats)
			r.Get("/comparison/{team1}/{team2}", h.CompareTeams)
		})

		r.Post("/auth/login", h.Login)
	})

	return r
}
