package stats

import "strings"

// Category is a player's position category, derived from the free-text
// position field by synonym matching.
type Category string

const (
	CategoryGoalkeeper Category = "Goalkeeper"
	CategoryDefender   Category = "Defender"
	CategoryMidfielder Category = "Midfielder"
	CategoryForward    Category = "Forward"
	CategoryUnknown    Category = "Unknown"
)

// Synonym sets are checked in order; the first category with a matching
// substring wins. Source positions are free text ("Centre-Back", "GK",
// "Right Winger"), so matching is case-insensitive contains.
var categorySynonyms = []struct {
	category Category
	synonyms []string
}{
	{CategoryGoalkeeper, []string{"goalkeeper", "gk"}},
	{CategoryDefender, []string{"defender", "back", "cb", "lb", "rb"}},
	{CategoryMidfielder, []string{"midfielder", "mid", "cm"}},
	{CategoryForward, []string{"forward", "striker", "st", "winger", "wing"}},
}

// Classify maps a free-text position to its category.
func Classify(position string) Category {
	pos := strings.ToLower(position)
	for _, cs := range categorySynonyms {
		for _, syn := range cs.synonyms {
			if strings.Contains(pos, syn) {
				return cs.category
			}
		}
	}
	return CategoryUnknown
}

// MatchesCategory reports whether a free-text position contains any synonym
// of the given category. Filtering is contains-any per category, so a "Wing
// Back" matches both Defender and Forward filters even though Classify
// assigns it a single category.
func MatchesCategory(position string, category Category) bool {
	pos := strings.ToLower(position)
	for _, cs := range categorySynonyms {
		if cs.category != category {
			continue
		}
		for _, syn := range cs.synonyms {
			if strings.Contains(pos, syn) {
				return true
			}
		}
	}
	return false
}

// ParseCategory maps a query-param value ("defender", "GK", ...) to a
// Category. Unrecognized values return CategoryUnknown.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "goalkeeper", "gk":
		return CategoryGoalkeeper
	case "defender":
		return CategoryDefender
	case "midfielder":
		return CategoryMidfielder
	case "forward":
		return CategoryForward
	default:
		return CategoryUnknown
	}
}
