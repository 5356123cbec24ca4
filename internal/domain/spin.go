package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Spin is one append-only spin history record. Exactly one of UserID and
// GuestUserID is set.
type Spin struct {
	ID                uuid.UUID       `json:"id"`
	UserID            *uuid.UUID      `json:"user_id"`
	GuestUserID       *uuid.UUID      `json:"guest_user_id"`
	DestinationCity   string          `json:"destination_city"`
	DepartureCity     string          `json:"departure_city"`
	TravelTimeMinutes int             `json:"travel_time_minutes"`
	PriceEuros        decimal.Decimal `json:"typical_price_euros"`
	PointsEarned      int             `json:"points_earned"`
	SpunAt            time.Time       `json:"spun_at"`
}

// Actor returns the actor that owns the spin.
func (s Spin) Actor() Actor {
	if s.GuestUserID != nil {
		return GuestActor(*s.GuestUserID)
	}
	if s.UserID != nil {
		return UserActor(*s.UserID)
	}
	return Actor{}
}

// ActorPoints is a per-actor points total over some period.
type ActorPoints struct {
	Profile    Profile
	Points     int
	TotalSpins int
}
