package stats

import (
	"context"
	"fmt"

	"github.com/cupstats/cupstats/internal/metrics"
)

// Equal is the categorical result for exact ties in a comparison.
const Equal = "Equal"

// ComparisonSide pairs a requested team name with its full stats view.
type ComparisonSide struct {
	Name  string      `json:"name"`
	Stats *TeamDetail `json:"stats"`
}

// ComparisonResult holds the differential judgments. Every categorical field
// uses strict greater-than; ties report "Equal".
type ComparisonResult struct {
	PointsDifference        int        `json:"points_difference"`
	Leader                  string     `json:"leader"`
	GoalDifferenceAdvantage string     `json:"goal_difference_advantage"`
	BetterAttack            string     `json:"better_attack"`
	BetterDefense           string     `json:"better_defense"`
	GoalSpread              GoalSpread `json:"goal_spread"`
	Team1Points             int        `json:"team1_points"`
	Team2Points             int        `json:"team2_points"`
}

// GoalSpread renders each side's goals for/against as "G:GA".
type GoalSpread struct {
	Team1ForAgainst string `json:"team1_for_against"`
	Team2ForAgainst string `json:"team2_for_against"`
}

// Comparison is the full head-to-head payload.
type Comparison struct {
	Team1      ComparisonSide   `json:"team1"`
	Team2      ComparisonSide   `json:"team2"`
	Comparison ComparisonResult `json:"comparison"`
}

// Compare fetches both teams and computes the differential analysis.
// Returns nil when either team is missing.
func (s *Service) Compare(ctx context.Context, team1, team2 string) (*Comparison, error) {
	stats1, err := s.TeamByName(ctx, team1)
	if err != nil {
		return nil, err
	}
	stats2, err := s.TeamByName(ctx, team2)
	if err != nil {
		return nil, err
	}
	if stats1 == nil || stats2 == nil {
		return nil, nil
	}

	pts1 := metrics.Points(stats1.Wins, stats1.Draws)
	pts2 := metrics.Points(stats2.Wins, stats2.Draws)
	gd1 := stats1.GoalsScored - stats1.GoalsConceded
	gd2 := stats2.GoalsScored - stats2.GoalsConceded

	diff := pts1 - pts2
	if diff < 0 {
		diff = -diff
	}

	return &Comparison{
		Team1: ComparisonSide{Name: team1, Stats: stats1},
		Team2: ComparisonSide{Name: team2, Stats: stats2},
		Comparison: ComparisonResult{
			PointsDifference:        diff,
			Leader:                  pick(team1, team2, pts1 > pts2, pts2 > pts1),
			GoalDifferenceAdvantage: pick(team1, team2, gd1 > gd2, gd2 > gd1),
			BetterAttack:            pick(team1, team2, stats1.GoalsScored > stats2.GoalsScored, stats2.GoalsScored > stats1.GoalsScored),
			BetterDefense:           pick(team1, team2, stats1.GoalsConceded < stats2.GoalsConceded, stats2.GoalsConceded < stats1.GoalsConceded),
			GoalSpread: GoalSpread{
				Team1ForAgainst: fmt.Sprintf("%d:%d", stats1.GoalsScored, stats1.GoalsConceded),
				Team2ForAgainst: fmt.Sprintf("%d:%d", stats2.GoalsScored, stats2.GoalsConceded),
			},
			Team1Points: pts1,
			Team2Points: pts2,
		},
	}, nil
}

func pick(a, b string, aWins, bWins bool) string {
	switch {
	case aWins:
		return a
	case bWins:
		return b
	default:
		return Equal
	}
}
