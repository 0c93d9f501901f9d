package metrics

import (
	"math"

	"github.com/cupstats/cupstats/internal/model"
)

// Strength rating labels for attack/defense composite scores.
const (
	RatingElite      = "Elite"
	RatingVeryStrong = "Very Strong"
	RatingStrong     = "Strong"
	RatingAverage    = "Average"
	RatingWeak       = "Weak"
)

// Strength is a composite 0-100 score with its banded rating label.
type Strength struct {
	Score  float64 `json:"score"`
	Rating string  `json:"rating"`
}

// TeamDerived holds every derived team metric.
type TeamDerived struct {
	Points               int      `json:"points"`
	GoalDifference       int      `json:"goal_difference"`
	GoalsPerMatch        float64  `json:"goals_per_match"`
	GoalsAgainstPerMatch float64  `json:"goals_against_per_match"`
	WinPercentage        float64  `json:"win_percentage"`
	DrawPercentage       float64  `json:"draw_percentage"`
	LossPercentage       float64  `json:"loss_percentage"`
	CleanSheetPercentage float64  `json:"clean_sheet_percentage"`
	ShotAccuracy         float64  `json:"shot_accuracy"`
	XGDifference         float64  `json:"xg_difference"`
	AttackStrength       Strength `json:"attack_strength"`
	DefensiveStability   Strength `json:"defensive_stability"`
}

// ComputeTeam derives all team metrics from counting stats.
func ComputeTeam(s model.TeamStats) TeamDerived {
	d := TeamDerived{
		Points:               Points(s.Wins, s.Draws),
		GoalDifference:       s.GoalsScored - s.GoalsConceded,
		GoalsPerMatch:        Round2(perMatch(s.GoalsScored, s.MatchesPlayed)),
		GoalsAgainstPerMatch: Round2(perMatch(s.GoalsConceded, s.MatchesPlayed)),
		WinPercentage:        Round1(pctOfMatches(s.Wins, s.MatchesPlayed)),
		DrawPercentage:       Round1(pctOfMatches(s.Draws, s.MatchesPlayed)),
		LossPercentage:       Round1(pctOfMatches(s.Losses, s.MatchesPlayed)),
		CleanSheetPercentage: Round1(pctOfMatches(s.CleanSheets, s.MatchesPlayed)),
		ShotAccuracy:         Round1(accuracy(s.ShotsOnTarget, s.TotalShots)),
		XGDifference:         Round2(finite(s.XGForAvg - s.XGAgainstAvg)),
	}
	d.AttackStrength = attackStrength(d.GoalsPerMatch, s.XGForAvg)
	d.DefensiveStability = defensiveStability(d.GoalsAgainstPerMatch, s.XGAgainstAvg, d.CleanSheetPercentage)
	return d
}

// Points applies standard 3-1-0 scoring.
func Points(wins, draws int) int {
	return wins*3 + draws
}

func perMatch(count, matches int) float64 {
	if matches <= 0 {
		return 0
	}
	return finite(float64(count) / float64(matches))
}

func pctOfMatches(count, matches int) float64 {
	if matches <= 0 {
		return 0
	}
	return finite(float64(count) / float64(matches) * 100)
}

// attackStrength sums two banded sub-scores (goals per match, xG for) of up
// to 40 points each, normalized by 2 and capped at 100.
func attackStrength(goalsPerMatch, xgForAvg float64) Strength {
	score := 0.0

	switch {
	case goalsPerMatch > 2.5:
		score += 40
	case goalsPerMatch > 2.0:
		score += 30
	case goalsPerMatch > 1.5:
		score += 20
	default:
		score += 10
	}

	switch {
	case xgForAvg > 1.8:
		score += 40
	case xgForAvg > 1.5:
		score += 30
	case xgForAvg > 1.2:
		score += 20
	default:
		score += 10
	}

	score = math.Min(score/2, 100)
	return Strength{Score: Round1(score), Rating: strengthRating(score)}
}

// defensiveStability adds a clean-sheet bonus of up to 20 points to the two
// banded sub-scores and normalizes by 2.5, capped at 100.
func defensiveStability(goalsAgainstPerMatch, xgAgainstAvg, cleanSheetPct float64) Strength {
	score := 0.0

	switch {
	case goalsAgainstPerMatch < 1.0:
		score += 40
	case goalsAgainstPerMatch < 1.5:
		score += 30
	case goalsAgainstPerMatch < 2.0:
		score += 20
	default:
		score += 10
	}

	switch {
	case xgAgainstAvg < 1.2:
		score += 40
	case xgAgainstAvg < 1.5:
		score += 30
	case xgAgainstAvg < 1.8:
		score += 20
	default:
		score += 10
	}

	switch {
	case cleanSheetPct > 50:
		score += 20
	case cleanSheetPct > 30:
		score += 10
	}

	score = math.Min(score/2.5, 100)
	return Strength{Score: Round1(score), Rating: strengthRating(score)}
}

func strengthRating(score float64) string {
	switch {
	case score >= 80:
		return RatingElite
	case score >= 65:
		return RatingVeryStrong
	case score >= 50:
		return RatingStrong
	case score >= 35:
		return RatingAverage
	default:
		return RatingWeak
	}
}

// finite coerces NaN and infinities to 0 so serialized output is always a
// plain number.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(finite(v)*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(finite(v)*10) / 10
}
