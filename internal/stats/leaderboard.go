package stats

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/cupstats/cupstats/internal/metrics"
	"github.com/cupstats/cupstats/internal/model"
)

// StatGoals is the default leaderboard stat; unknown stat names fall back to
// it, both for sorting and for the serialized stat key.
const StatGoals = "goals_overall"

// statExtractors maps a requested stat name to the value it sorts by.
// tackles_per_90_overall is computed on the fly, not stored.
var statExtractors = map[string]func(model.PlayerRecord) float64{
	StatGoals:                 func(r model.PlayerRecord) float64 { return float64(r.Stats.Goals) },
	"assists_overall":         func(r model.PlayerRecord) float64 { return float64(r.Stats.Assists) },
	"appearances_overall":     func(r model.PlayerRecord) float64 { return float64(r.Stats.Appearances) },
	"minutes_played_overall":  func(r model.PlayerRecord) float64 { return float64(r.Stats.MinutesPlayed) },
	"shots_total_overall":     func(r model.PlayerRecord) float64 { return float64(r.Stats.ShotsTotal) },
	"shots_on_target_overall": func(r model.PlayerRecord) float64 { return float64(r.Stats.ShotsOnTarget) },
	"tackles_total_overall":   func(r model.PlayerRecord) float64 { return float64(r.Stats.Tackles) },
	"interceptions_total_overall": func(r model.PlayerRecord) float64 {
		return float64(r.Stats.Interceptions)
	},
	"average_rating_overall": func(r model.PlayerRecord) float64 { return r.Stats.AverageRating },
	"tackles_per_90_overall": func(r model.PlayerRecord) float64 {
		return metrics.Round2(metrics.Per90(r.Stats.Tackles, r.Stats.MinutesPlayed))
	},
}

// LeaderboardEntry is one ranked row. The sorted stat is serialized under
// its own name next to the fixed base fields.
type LeaderboardEntry struct {
	Rank        int
	FullName    string
	Position    string
	Nationality string
	CurrentClub string
	Goals       int
	Assists     int
	StatName    string
	StatValue   float64
}

// MarshalJSON emits the base fields plus the sorted stat under its requested
// name. goals_overall and assists_overall are always present so the
// top-scorers and top-assists shapes stay stable.
func (e LeaderboardEntry) MarshalJSON() ([]byte, error) {
	obj := map[string]interface{}{
		"rank":            e.Rank,
		"full_name":       e.FullName,
		"position":        e.Position,
		"nationality":     e.Nationality,
		"Current Club":    e.CurrentClub,
		"goals_overall":   e.Goals,
		"assists_overall": e.Assists,
	}
	obj[e.StatName] = e.StatValue
	return json.Marshal(obj)
}

// Leaderboard filters players by category (CategoryUnknown means no filter),
// sorts descending by the requested stat, takes the top limit rows, and
// assigns 1-based ranks in sorted order.
func (s *Service) Leaderboard(ctx context.Context, stat string, limit int, category Category) ([]LeaderboardEntry, error) {
	recs, err := s.store.PlayerRecords(ctx)
	if err != nil {
		return nil, err
	}

	extract, ok := statExtractors[stat]
	if !ok {
		stat = StatGoals
		extract = statExtractors[StatGoals]
	}

	filtered := recs[:0:0]
	for _, rec := range recs {
		if category != CategoryUnknown {
			position := rec.Stats.Position
			if position == "" {
				position = rec.Player.Position
			}
			if !MatchesCategory(position, category) {
				continue
			}
		}
		filtered = append(filtered, rec)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return extract(filtered[i]) > extract(filtered[j])
	})

	if limit <= 0 {
		limit = 10
	}
	if limit > len(filtered) {
		limit = len(filtered)
	}

	entries := make([]LeaderboardEntry, limit)
	for i, rec := range filtered[:limit] {
		position := rec.Stats.Position
		if position == "" {
			position = rec.Player.Position
		}
		if position == "" {
			position = string(CategoryUnknown)
		}
		club := rec.Stats.CurrentClub
		if club == "" {
			club = rec.Player.Nationality
		}
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			FullName:    rec.Player.Name,
			Position:    position,
			Nationality: rec.Player.Nationality,
			CurrentClub: club,
			Goals:       rec.Stats.Goals,
			Assists:     rec.Stats.Assists,
			StatName:    stat,
			StatValue:   extract(rec),
		}
	}
	return entries, nil
}
