package roll

import (
	"github.com/shopspring/decimal"

	"github.com/coupdetete/backend/internal/domain"
)

// DefaultRelevance is the relevance reported for candidates that were not
// ranked by an archetype mapping.
const DefaultRelevance = 50

// Candidate is a destination that survived filtering, with its relevance for
// the actor's archetype.
type Candidate struct {
	domain.Destination
	Relevance int `json:"relevance_score"`
}

// BaseFilter holds the user's hard constraints. Bounds are inclusive.
type BaseFilter struct {
	Departure        domain.Departure
	MaxTravelMinutes int
	MaxBudgetEuros   decimal.Decimal
}

// Match reports whether d satisfies the filter.
func (f BaseFilter) Match(d domain.Destination) bool {
	return d.Departure == f.Departure &&
		d.TravelTimeMinutes <= f.MaxTravelMinutes &&
		d.PriceEuros.LessThanOrEqual(f.MaxBudgetEuros)
}

// Apply keeps the destinations matching f, in catalog order, at DefaultRelevance.
func (f BaseFilter) Apply(catalog []domain.Destination) []Candidate {
	out := make([]Candidate, 0, len(catalog))
	for _, d := range catalog {
		if f.Match(d) {
			out = append(out, Candidate{Destination: d, Relevance: DefaultRelevance})
		}
	}
	return out
}

// Cities returns the city names of cs in order.
func Cities(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.City
	}
	return out
}
