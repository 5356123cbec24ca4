package domain

import "github.com/shopspring/decimal"

// Departure is one of the fixed origin cities.
type Departure string

const (
	DepartureParis Departure = "paris"
	DepartureNice  Departure = "nice"
)

// Valid reports whether d is a known departure city.
func (d Departure) Valid() bool {
	return d == DepartureParis || d == DepartureNice
}

// Image is a destination photo with attribution.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Credit string `json:"credit,omitempty"`
}

// Destination is a read-only catalog entry. City names may repeat across
// departure cities.
type Destination struct {
	City              string          `json:"city"`
	Tagline           string          `json:"tagline"`
	Station           string          `json:"station"`
	Departure         Departure       `json:"departure"`
	Activities        []string        `json:"activities"`
	TravelTime        string          `json:"travel_time"`
	TravelTimeMinutes int             `json:"travel_time_minutes"`
	TypicalPrice      string          `json:"typical_price"`
	PriceEuros        decimal.Decimal `json:"typical_price_euros"`
	Vibe              string          `json:"vibe"`
	Images            []Image         `json:"images,omitempty"`
}

// DestinationMapping links a destination city to an archetype with a
// relevance score (0-100).
type DestinationMapping struct {
	City        string
	ArchetypeID ArchetypeID
	Relevance   int
}
