package stats

import (
	"github.com/cupstats/cupstats/internal/metrics"
	"github.com/cupstats/cupstats/internal/model"
)

// PlayerBase is the field set shared by every player category. Position
// variants embed it and add their own fixed extension, so the serialized
// shape is determined by the variant type rather than by ad hoc merging.
type PlayerBase struct {
	FullName      string  `json:"full_name"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	PlayerType    string  `json:"player_type"`
	Nationality   string  `json:"nationality"`
	CurrentClub   string  `json:"Current Club"`
	Age           int     `json:"age"`
	Appearances   int     `json:"appearances_overall"`
	MinutesPlayed int     `json:"minutes_played_overall"`
	Goals         int     `json:"goals_overall"`
	Assists       int     `json:"assists_overall"`
	YellowCards   int     `json:"yellow_cards_overall"`
	RedCards      int     `json:"red_cards_overall"`
	AverageRating float64 `json:"average_rating_overall"`
	GoalsInvolved int     `json:"goals_involved_overall"`
	FormProfile   string  `json:"form_profile"`

	// Computed carries the full derived metric block so clients get the
	// rates and ratings without recomputing them.
	Computed metrics.PlayerDerived `json:"computed"`
}

// GoalkeeperExt carries goalkeeper fields. The store keeps no save data, so
// these are zero-filled placeholders in the canonical field set.
type GoalkeeperExt struct {
	CleanSheets       int     `json:"clean_sheets_overall"`
	SavesPerGame      float64 `json:"saves_per_game_overall"`
	SavePercentage    float64 `json:"save_percentage_overall"`
	ConcededPer90     float64 `json:"conceded_per_90_overall"`
	PenaltiesSaved    int     `json:"penalties_saved"`
	ShotsFacedPerGame float64 `json:"shots_faced_per_game_overall"`
}

// DefenderExt carries defender fields.
type DefenderExt struct {
	TacklesPer90          float64 `json:"tackles_per_90_overall"`
	InterceptionsPerGame  float64 `json:"interceptions_per_game_overall"`
	AerialDuelsWonPerGame float64 `json:"aerial_duels_won_per_game_overall"`
	BlocksPerGame         float64 `json:"blocks_per_game_overall"`
	ClearancesPerGame     float64 `json:"clearances_per_game_overall"`
}

// MidfielderExt carries midfielder fields.
type MidfielderExt struct {
	PassesPer90           float64 `json:"passes_per_90_overall"`
	KeyPassesPerGame      float64 `json:"key_passes_per_game_overall"`
	ChancesCreatedPerGame float64 `json:"chances_created_per_game_overall"`
	PassCompletionRate    float64 `json:"pass_completion_rate_overall"`
	TacklesPer90          float64 `json:"tackles_per_90_overall"`
}

// ForwardExt carries forward/winger fields.
type ForwardExt struct {
	ShotsOnTargetPerGame float64 `json:"shots_on_target_per_game_overall"`
	ShotsTotal           int     `json:"shots_total_overall"`
	DribblesPerGame      float64 `json:"dribbles_per_game_overall"`
	XGPerGame            float64 `json:"xg_per_game_overall"`
	GoalsPer90           float64 `json:"goals_per_90_overall"`
	AssistsPer90         float64 `json:"assists_per_90_overall"`
}

// Tagged variants: one concrete type per category.
type (
	GoalkeeperProfile struct {
		PlayerBase
		GoalkeeperExt
	}
	DefenderProfile struct {
		PlayerBase
		DefenderExt
	}
	MidfielderProfile struct {
		PlayerBase
		MidfielderExt
	}
	ForwardProfile struct {
		PlayerBase
		ForwardExt
	}
	// UnknownProfile carries base fields only.
	UnknownProfile struct {
		PlayerBase
	}
)

// BuildProfile projects a player record into its position variant.
func BuildProfile(rec model.PlayerRecord) interface{} {
	base := buildBase(rec)
	s := rec.Stats

	switch Classify(base.Position) {
	case CategoryGoalkeeper:
		return GoalkeeperProfile{PlayerBase: base}
	case CategoryDefender:
		return DefenderProfile{
			PlayerBase: base,
			DefenderExt: DefenderExt{
				TacklesPer90:         metrics.Round2(metrics.Per90(s.Tackles, s.MinutesPlayed)),
				InterceptionsPerGame: metrics.Round2(perGame(s.Interceptions, s.Appearances)),
			},
		}
	case CategoryMidfielder:
		return MidfielderProfile{
			PlayerBase: base,
			MidfielderExt: MidfielderExt{
				PassCompletionRate: metrics.Round1(s.PassCompletionRate),
				TacklesPer90:       metrics.Round2(metrics.Per90(s.Tackles, s.MinutesPlayed)),
			},
		}
	case CategoryForward:
		return ForwardProfile{
			PlayerBase: base,
			ForwardExt: ForwardExt{
				ShotsOnTargetPerGame: metrics.Round2(perGame(s.ShotsOnTarget, s.Appearances)),
				ShotsTotal:           s.ShotsTotal,
				GoalsPer90:           metrics.Round2(metrics.Per90(s.Goals, s.MinutesPlayed)),
				AssistsPer90:         metrics.Round2(metrics.Per90(s.Assists, s.MinutesPlayed)),
			},
		}
	default:
		return UnknownProfile{PlayerBase: base}
	}
}

func buildBase(rec model.PlayerRecord) PlayerBase {
	p, s := rec.Player, rec.Stats
	derived := metrics.ComputePlayer(s)

	position := s.Position
	if position == "" {
		position = p.Position
	}
	if position == "" {
		position = string(CategoryUnknown)
	}
	club := s.CurrentClub
	if club == "" {
		club = p.Nationality
	}

	return PlayerBase{
		FullName:      p.Name,
		Name:          p.Name,
		Position:      position,
		PlayerType:    string(Classify(position)),
		Nationality:   p.Nationality,
		CurrentClub:   club,
		Age:           s.Age,
		Appearances:   s.Appearances,
		MinutesPlayed: s.MinutesPlayed,
		Goals:         s.Goals,
		Assists:       s.Assists,
		YellowCards:   s.YellowCards,
		RedCards:      s.RedCards,
		AverageRating: metrics.Round1(s.AverageRating),
		GoalsInvolved: s.Goals + s.Assists,
		FormProfile:   derived.FormProfile,
		Computed:      derived,
	}
}

// perGame is a per-appearance rate with the usual zero guard.
func perGame(stat, appearances int) float64 {
	if appearances <= 0 {
		return 0
	}
	return float64(stat) / float64(appearances)
}
