package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/roll"
)

// Defaults for GET /api/destinations/personalized.
const (
	defaultDeparture   = domain.DepartureParis
	defaultMaxMinutes  = 120
	defaultMaxBudget   = 30
	defaultSearchLimit = 10
)

type destinationListResponse struct {
	Destinations []roll.Candidate    `json:"destinations"`
	Personalized bool                `json:"personalized"`
	ArchetypeID  *domain.ArchetypeID `json:"archetype_id"`
	IsPremium    bool                `json:"is_premium"`
	Total        int                 `json:"total"`
	Stages       []string            `json:"stages"`
}

type randomRequest struct {
	Departure domain.Departure `json:"departure"`
	MaxTime   int              `json:"max_time"`
	MaxBudget decimal.Decimal  `json:"max_budget"`
	Recent    []string         `json:"recent"`
}

type randomResponse struct {
	Destination  roll.Candidate `json:"destination"`
	Recent       []string       `json:"recent"`
	Personalized bool           `json:"personalized"`
	Candidates   int            `json:"candidates"`
}

// PersonalizedDestinations handles GET /api/destinations/personalized.
// Supports ?departure= (paris), ?max_time= (120) and ?max_budget= (30).
func (s *Server) PersonalizedDestinations(w http.ResponseWriter, r *http.Request) {
	var (
		departure, budget *string
		maxTime           *int
	)
	if !queryParam(w, r, "departure", &departure) || !queryParam(w, r, "max_time", &maxTime) || !queryParam(w, r, "max_budget", &budget) {
		return
	}

	f := roll.BaseFilter{
		Departure:        defaultDeparture,
		MaxTravelMinutes: defaultMaxMinutes,
		MaxBudgetEuros:   decimal.NewFromInt(defaultMaxBudget),
	}
	if departure != nil {
		f.Departure = domain.Departure(*departure)
	}
	if maxTime != nil {
		f.MaxTravelMinutes = *maxTime
	}
	if budget != nil {
		d, err := decimal.NewFromString(*budget)
		if err != nil {
			badRequest(w, "invalid query parameter max_budget")
			return
		}
		f.MaxBudgetEuros = d
	}

	list, err := s.Destinations.Personalized(r.Context(), ActorFrom(r), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	dests := list.Destinations
	if dests == nil {
		dests = []roll.Candidate{}
	}
	stages := list.Outcome.Stages
	if stages == nil {
		stages = []string{}
	}
	writeJSON(w, http.StatusOK, destinationListResponse{
		Destinations: dests,
		Personalized: list.Outcome.Personalized,
		ArchetypeID:  list.ArchetypeID,
		IsPremium:    list.Premium,
		Total:        len(dests),
		Stages:       stages,
	})
}

// RandomDestination handles POST /api/destinations/random.
func (s *Server) RandomDestination(w http.ResponseWriter, r *http.Request) {
	var body randomRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	f := roll.BaseFilter{
		Departure:        body.Departure,
		MaxTravelMinutes: body.MaxTime,
		MaxBudgetEuros:   body.MaxBudget,
	}

	pick, err := s.Destinations.Random(r.Context(), ActorFrom(r), f, roll.Window(body.Recent))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, randomResponse{
		Destination:  pick.Destination,
		Recent:       pick.Window,
		Personalized: pick.Outcome.Personalized,
		Candidates:   pick.Candidates,
	})
}

// SearchDestinations handles GET /api/destinations/search?q=&departure=&limit=.
func (s *Server) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	var (
		q         string
		departure *string
		limit     *int
	)
	if !requiredQueryParam(w, r, "q", &q) || !queryParam(w, r, "departure", &departure) || !queryParam(w, r, "limit", &limit) {
		return
	}
	var dep domain.Departure
	if departure != nil && *departure != "" {
		dep = domain.Departure(*departure)
		if !dep.Valid() {
			badRequest(w, "unknown departure "+*departure)
			return
		}
	}
	n := defaultSearchLimit
	if limit != nil && *limit > 0 {
		n = min(*limit, domain.MaxPageLimit)
	}
	writeJSON(w, http.StatusOK, map[string]any{"destinations": s.Destinations.Search(q, dep, n)})
}
