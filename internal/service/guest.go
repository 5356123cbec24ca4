package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/repo"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 24
)

// GuestRank is a guest with their all-time rank.
type GuestRank struct {
	Guest domain.GuestUser
	Rank  int
}

// GuestService manages players who have not signed up.
type GuestService struct {
	guests repo.GuestRepo
	log    *slog.Logger
}

// NewGuestService constructs a GuestService.
func NewGuestService(guests repo.GuestRepo, log *slog.Logger) *GuestService {
	return &GuestService{guests: guests, log: log}
}

// Create registers a guest. The username must be 3 to 24 characters and
// unused by any user or guest.
func (s *GuestService) Create(ctx context.Context, username string, fingerprint *string) (domain.GuestUser, error) {
	username, err := validateUsername(username)
	if err != nil {
		return domain.GuestUser{}, fmt.Errorf("service.GuestService.Create: %w", err)
	}

	g, err := s.guests.Create(ctx, domain.GuestUser{Username: username, DeviceFingerprint: fingerprint})
	if errors.Is(err, domain.ErrConflict) {
		return domain.GuestUser{}, fmt.Errorf("service.GuestService.Create: %w: username %q is taken", domain.ErrConflict, username)
	}
	if err != nil {
		return domain.GuestUser{}, fmt.Errorf("service.GuestService.Create: %w", err)
	}
	s.log.InfoContext(ctx, "guest created", "guest_id", g.ID, "username", g.Username)
	return g, nil
}

// Get returns a guest by id.
func (s *GuestService) Get(ctx context.Context, id uuid.UUID) (domain.GuestUser, error) {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return domain.GuestUser{}, fmt.Errorf("service.GuestService.Get: %w", err)
	}
	return g, nil
}

// Rank returns the guest's all-time rank among users and guests.
func (s *GuestService) Rank(ctx context.Context, id uuid.UUID) (GuestRank, error) {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return GuestRank{}, fmt.Errorf("service.GuestService.Rank: %w", err)
	}
	above, err := s.guests.CountAbove(ctx, g.Points)
	if err != nil {
		return GuestRank{}, fmt.Errorf("service.GuestService.Rank: %w", err)
	}
	return GuestRank{Guest: g, Rank: above + 1}, nil
}

func validateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen {
		return "", fmt.Errorf("%w: username must be %d to %d characters", domain.ErrValidation, minUsernameLen, maxUsernameLen)
	}
	return username, nil
}
