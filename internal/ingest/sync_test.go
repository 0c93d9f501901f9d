package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cupstats/cupstats/internal/provider/sportsdb"
)

func TestMatchSeason(t *testing.T) {
	assert.Equal(t, "2021", matchSeason("2021", "2024"))
	// Events without a season label carry the configured one, so the column
	// is never stored blank.
	assert.Equal(t, "2024", matchSeason("", "2024"))
}

func TestEventSeasonDecodes(t *testing.T) {
	raw := `{"idEvent": "e1", "strSeason": "2021", "strHomeTeam": "Qatar", "strAwayTeam": "Oman"}`

	var e sportsdb.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, "2021", e.Season)
}

func TestParseScore(t *testing.T) {
	assert.Equal(t, 3, parseScore("3"))
	assert.Equal(t, 0, parseScore(""))
	assert.Equal(t, 0, parseScore("n/a"))
}
