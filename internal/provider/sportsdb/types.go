package sportsdb

// Team is a SportsDB team record. Field names mirror the wire format.
type Team struct {
	ID      string `json:"idTeam"`
	Name    string `json:"strTeam"`
	Country string `json:"strCountry"`
	Badge   string `json:"strBadge"`
}

// Player is a SportsDB player record.
type Player struct {
	ID          string `json:"idPlayer"`
	Name        string `json:"strPlayer"`
	Position    string `json:"strPosition"`
	Nationality string `json:"strNationality"`
	DateOfBirth string `json:"dateBorn"`
	Height      string `json:"strHeight"`
}

// Event is a SportsDB season event (one match).
type Event struct {
	ID        string `json:"idEvent"`
	Season    string `json:"strSeason"`
	Date      string `json:"dateEvent"`
	HomeTeam  string `json:"strHomeTeam"`
	AwayTeam  string `json:"strAwayTeam"`
	HomeScore string `json:"intHomeScore"`
	AwayScore string `json:"intAwayScore"`
	Venue     string `json:"strVenue"`
}
