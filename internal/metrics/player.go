// Package metrics computes derived rates and ratings from counting stats.
// Every function is pure and total: zero or missing denominators yield 0,
// and no output is ever NaN or infinite.
package metrics

import "github.com/cupstats/cupstats/internal/model"

// Form profile labels, first matching rule wins.
const (
	ProfileEliteScorer    = "Elite Scorer"
	ProfileProlificScorer = "Prolific Scorer"
	ProfilePlaymaker      = "Playmaker"
	ProfileDefensiveRock  = "Defensive Rock"
	ProfileEmergingTalent = "Emerging Talent"
	ProfileRegular        = "Regular Player"
)

// PlayerDerived holds every derived player metric. Values are rounded for
// presentation (two decimals, shot accuracy one).
type PlayerDerived struct {
	GoalsPer90            float64 `json:"goals_per_90"`
	AssistsPer90          float64 `json:"assists_per_90"`
	DefensiveActionsPer90 float64 `json:"defensive_actions_per_90"`
	ShotsPerGoal          float64 `json:"shots_per_goal"`
	EfficiencyRating      float64 `json:"efficiency_rating"`
	ShotAccuracy          float64 `json:"shot_accuracy"`
	FormProfile           string  `json:"form_profile"`
}

// ComputePlayer derives all player metrics from counting stats.
func ComputePlayer(s model.PlayerStats) PlayerDerived {
	d := PlayerDerived{
		GoalsPer90:            Round2(Per90(s.Goals, s.MinutesPlayed)),
		AssistsPer90:          Round2(Per90(s.Assists, s.MinutesPlayed)),
		DefensiveActionsPer90: Round2(Per90(s.Tackles+s.Interceptions, s.MinutesPlayed)),
		ShotsPerGoal:          Round2(shotsPerGoal(s.ShotsTotal, s.Goals)),
		EfficiencyRating:      Round2(efficiencyRating(s.Goals, s.Assists, s.ShotsOnTarget)),
		ShotAccuracy:          Round1(accuracy(s.ShotsOnTarget, s.ShotsTotal)),
	}
	d.FormProfile = formProfile(d, s.MinutesPlayed)
	return d
}

// Per90 normalizes a counting stat to a 90-minute-equivalent rate.
// Returns 0 when minutes is zero or negative.
func Per90(stat, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return finite(float64(stat) * 90.0 / float64(minutes))
}

func shotsPerGoal(shots, goals int) float64 {
	if shots <= 0 {
		return 0
	}
	if goals < 1 {
		goals = 1
	}
	return finite(float64(shots) / float64(goals))
}

func efficiencyRating(goals, assists, shotsOnTarget int) float64 {
	if shotsOnTarget <= 0 {
		return 0
	}
	return finite(float64(goals+assists) / float64(shotsOnTarget))
}

func accuracy(onTarget, total int) float64 {
	if total <= 0 {
		return 0
	}
	return finite(float64(onTarget) / float64(total) * 100)
}

func formProfile(d PlayerDerived, minutesPlayed int) string {
	switch {
	case d.GoalsPer90 > 1.0:
		return ProfileEliteScorer
	case d.GoalsPer90 > 0.5:
		return ProfileProlificScorer
	case d.AssistsPer90 > 0.5:
		return ProfilePlaymaker
	case d.DefensiveActionsPer90 > 2.0:
		return ProfileDefensiveRock
	case minutesPlayed < 100:
		return ProfileEmergingTalent
	default:
		return ProfileRegular
	}
}
