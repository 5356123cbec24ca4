package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/roll"
)

type rollRequest struct {
	DestinationCity   string          `json:"destination_city"`
	DepartureCity     string          `json:"departure_city"`
	TravelTimeMinutes int             `json:"travel_time_minutes"`
	TypicalPriceEuros decimal.Decimal `json:"typical_price_euros"`
	IsGuest           bool            `json:"is_guest"`
	GuestUserID       *uuid.UUID      `json:"guest_user_id"`
}

type rollResponse struct {
	Success      bool        `json:"success"`
	PointsEarned int         `json:"points_earned"`
	Spin         domain.Spin `json:"spin"`
}

// Roll handles POST /api/roll. A body flagged is_guest with a guest id
// credits that guest; otherwise the request's actor is credited.
func (s *Server) Roll(w http.ResponseWriter, r *http.Request) {
	var body rollRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	var actor *domain.Actor
	if body.IsGuest && body.GuestUserID != nil {
		a := domain.GuestActor(*body.GuestUserID)
		actor = &a
	} else {
		actor = ActorFrom(r)
	}

	spin, err := s.Rolls.Record(r.Context(), actor, roll.SpinInput{
		DestinationCity:   body.DestinationCity,
		DepartureCity:     body.DepartureCity,
		TravelTimeMinutes: body.TravelTimeMinutes,
		PriceEuros:        body.TypicalPriceEuros,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rollResponse{Success: true, PointsEarned: spin.PointsEarned, Spin: spin})
}
