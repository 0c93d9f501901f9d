package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cupstats/cupstats/internal/model"
)

func TestComputePlayer_Per90Rates(t *testing.T) {
	d := ComputePlayer(model.PlayerStats{
		Goals:         47,
		Assists:       12,
		MinutesPlayed: 2500,
		Tackles:       10,
		Interceptions: 5,
	})

	assert.Equal(t, 1.69, d.GoalsPer90, "47*90/2500")
	assert.Equal(t, 0.43, d.AssistsPer90)
	assert.Equal(t, 0.54, d.DefensiveActionsPer90)
	assert.Equal(t, ProfileEliteScorer, d.FormProfile)
}

func TestComputePlayer_ZeroMinutes(t *testing.T) {
	d := ComputePlayer(model.PlayerStats{
		Goals:         10,
		Assists:       5,
		Tackles:       30,
		Interceptions: 20,
		MinutesPlayed: 0,
	})

	assert.Zero(t, d.GoalsPer90)
	assert.Zero(t, d.AssistsPer90)
	assert.Zero(t, d.DefensiveActionsPer90)
}

func TestComputePlayer_ZeroDenominatorGuards(t *testing.T) {
	d := ComputePlayer(model.PlayerStats{MinutesPlayed: 900})

	assert.Zero(t, d.ShotsPerGoal, "no shots taken")
	assert.Zero(t, d.EfficiencyRating, "no shots on target")
	assert.Zero(t, d.ShotAccuracy, "no shots taken")
}

func TestComputePlayer_ShotsPerGoalUsesMaxGoalsOne(t *testing.T) {
	d := ComputePlayer(model.PlayerStats{ShotsTotal: 14, Goals: 0, MinutesPlayed: 900})
	assert.Equal(t, 14.0, d.ShotsPerGoal)

	d = ComputePlayer(model.PlayerStats{ShotsTotal: 14, Goals: 7, MinutesPlayed: 900})
	assert.Equal(t, 2.0, d.ShotsPerGoal)
}

func TestComputePlayer_EfficiencyAndAccuracy(t *testing.T) {
	d := ComputePlayer(model.PlayerStats{
		Goals:         6,
		Assists:       3,
		ShotsTotal:    40,
		ShotsOnTarget: 18,
		MinutesPlayed: 1800,
	})

	assert.Equal(t, 0.5, d.EfficiencyRating, "(6+3)/18")
	assert.Equal(t, 45.0, d.ShotAccuracy, "18/40*100")
}

func TestFormProfile_RuleOrder(t *testing.T) {
	tests := []struct {
		name  string
		stats model.PlayerStats
		want  string
	}{
		{
			name:  "elite scorer wins over playmaker",
			stats: model.PlayerStats{Goals: 20, Assists: 15, MinutesPlayed: 900},
			want:  ProfileEliteScorer,
		},
		{
			name:  "prolific scorer",
			stats: model.PlayerStats{Goals: 7, MinutesPlayed: 900},
			want:  ProfileProlificScorer,
		},
		{
			name:  "playmaker",
			stats: model.PlayerStats{Assists: 7, MinutesPlayed: 900},
			want:  ProfilePlaymaker,
		},
		{
			name:  "defensive rock",
			stats: model.PlayerStats{Tackles: 15, Interceptions: 10, MinutesPlayed: 900},
			want:  ProfileDefensiveRock,
		},
		{
			name:  "emerging talent under 100 minutes",
			stats: model.PlayerStats{MinutesPlayed: 45},
			want:  ProfileEmergingTalent,
		},
		{
			name:  "regular player",
			stats: model.PlayerStats{MinutesPlayed: 900},
			want:  ProfileRegular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputePlayer(tt.stats).FormProfile)
		})
	}
}

func TestComputePlayer_ZeroValueRecordIsAllZero(t *testing.T) {
	d := ComputePlayer(model.PlayerStats{})

	assert.Zero(t, d.GoalsPer90)
	assert.Zero(t, d.AssistsPer90)
	assert.Zero(t, d.DefensiveActionsPer90)
	assert.Zero(t, d.ShotsPerGoal)
	assert.Zero(t, d.EfficiencyRating)
	assert.Zero(t, d.ShotAccuracy)
	assert.Equal(t, ProfileEmergingTalent, d.FormProfile)
}
