// Package service contains the business logic for the Coup de Tête API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/repo"
	"github.com/coupdetete/backend/internal/roll"
)

// RollService records completed spins and awards points.
type RollService struct {
	spins  repo.SpinRepo
	policy roll.Policy
	log    *slog.Logger
}

// NewRollService constructs a RollService. A nil policy falls back to
// roll.RejectZeroValues.
func NewRollService(spins repo.SpinRepo, policy roll.Policy, log *slog.Logger) *RollService {
	if policy == nil {
		policy = roll.RejectZeroValues
	}
	return &RollService{spins: spins, policy: policy, log: log}
}

// Record validates the spin, computes its points and appends it to the
// actor's history while bumping their totals. A nil actor fails with
// domain.ErrUnauthorized.
func (s *RollService) Record(ctx context.Context, actor *domain.Actor, in roll.SpinInput) (domain.Spin, error) {
	if actor == nil {
		return domain.Spin{}, fmt.Errorf("service.RollService.Record: %w", domain.ErrUnauthorized)
	}
	if err := s.policy(in); err != nil {
		return domain.Spin{}, fmt.Errorf("service.RollService.Record: %w", err)
	}
	if err := actor.Validate(); err != nil {
		return domain.Spin{}, fmt.Errorf("service.RollService.Record: %w", err)
	}

	spin := domain.Spin{
		DestinationCity:   in.DestinationCity,
		DepartureCity:     in.DepartureCity,
		TravelTimeMinutes: in.TravelTimeMinutes,
		PriceEuros:        in.PriceEuros,
		PointsEarned:      roll.Points(in.TravelTimeMinutes, in.PriceEuros),
	}
	id := actor.ID
	if actor.IsGuest() {
		spin.GuestUserID = &id
	} else {
		spin.UserID = &id
	}

	saved, err := s.spins.Record(ctx, spin)
	if err != nil {
		return domain.Spin{}, fmt.Errorf("service.RollService.Record: %w", err)
	}

	s.log.InfoContext(ctx, "spin recorded",
		"actor_kind", actor.Kind,
		"actor_id", actor.ID,
		"destination", saved.DestinationCity,
		"points", saved.PointsEarned,
	)
	return saved, nil
}
