package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/repo"
)

// recentSpinCount is how many spins the stats view shows.
const recentSpinCount = 5

// ProfileUpdate is the editable part of a user's profile.
type ProfileUpdate struct {
	Email       string
	Username    string
	DisplayName *string
	AvatarURL   *string
}

// ProfileService manages registered users' profiles and stats.
type ProfileService struct {
	users  repo.UserRepo
	guests repo.GuestRepo
	spins  repo.SpinRepo
}

// NewProfileService constructs a ProfileService. The guest repo provides
// the cross-table rank count.
func NewProfileService(users repo.UserRepo, guests repo.GuestRepo, spins repo.SpinRepo) *ProfileService {
	return &ProfileService{users: users, guests: guests, spins: spins}
}

// Update creates or updates the user's profile row.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, fmt.Errorf("service.ProfileService.Update: %w: a valid email is required", domain.ErrValidation)
	}
	username, err := validateUsername(in.Username)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.ProfileService.Update: %w", err)
	}

	u, err := s.users.Upsert(ctx, domain.User{
		ID:          userID,
		Email:       email,
		Username:    username,
		DisplayName: in.DisplayName,
		AvatarURL:   in.AvatarURL,
	})
	if errors.Is(err, domain.ErrConflict) {
		return domain.User{}, fmt.Errorf("service.ProfileService.Update: %w: username or email is already in use", domain.ErrConflict)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("service.ProfileService.Update: %w", err)
	}
	return u, nil
}

// Stats returns the actor's totals, all-time rank and latest spins. A nil
// actor fails with domain.ErrUnauthorized.
func (s *ProfileService) Stats(ctx context.Context, actor *domain.Actor) (domain.UserStats, error) {
	var stats domain.UserStats
	if actor == nil {
		return stats, fmt.Errorf("service.ProfileService.Stats: %w", domain.ErrUnauthorized)
	}
	if actor.IsGuest() {
		g, err := s.guests.GetByID(ctx, actor.ID)
		if err != nil {
			return stats, fmt.Errorf("service.ProfileService.Stats: %w", err)
		}
		stats.Profile = domain.Profile{Actor: *actor, Username: g.Username, DisplayName: g.DisplayName, AvatarURL: g.AvatarURL}
		stats.Points, stats.TotalSpins = g.Points, g.TotalSpins
	} else {
		u, err := s.users.GetByID(ctx, actor.ID)
		if err != nil {
			return stats, fmt.Errorf("service.ProfileService.Stats: %w", err)
		}
		stats.Profile = domain.Profile{Actor: *actor, Username: u.Username, DisplayName: u.DisplayName, AvatarURL: u.AvatarURL}
		stats.Points, stats.TotalSpins = u.Points, u.TotalSpins
	}

	above, err := s.guests.CountAbove(ctx, stats.Points)
	if err != nil {
		return stats, fmt.Errorf("service.ProfileService.Stats: %w", err)
	}
	stats.Rank = above + 1

	recent, err := s.spins.ListRecent(ctx, *actor, recentSpinCount)
	if err != nil {
		return stats, fmt.Errorf("service.ProfileService.Stats: %w", err)
	}
	stats.RecentSpins = recent
	return stats, nil
}
