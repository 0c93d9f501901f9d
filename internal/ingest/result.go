// Package ingest populates the relational store: batch CSV import
// (clear-then-reload) and provider sync (upsert by external id).
package ingest

import "fmt"

// ImportResult tracks counts and errors from an import or sync operation.
type ImportResult struct {
	TeamsImported      int
	PlayersImported    int
	MatchesImported    int
	TeamStatsCreated   int
	PlayerStatsCreated int
	RowsSkipped        int
	Errors             []string
}

// AddErrorf records a formatted error message.
func (r *ImportResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the operation.
func (r *ImportResult) Summary() string {
	return fmt.Sprintf(
		"teams=%d players=%d matches=%d team_stats=%d player_stats=%d skipped=%d errors=%d",
		r.TeamsImported, r.PlayersImported, r.MatchesImported,
		r.TeamStatsCreated, r.PlayerStatsCreated, r.RowsSkipped, len(r.Errors),
	)
}
