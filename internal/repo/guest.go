package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coupdetete/backend/internal/domain"
)

// GuestRepo defines the persistence operations for guest players.
type GuestRepo interface {
	// Create inserts a guest with zero points. Returns domain.ErrConflict if
	// the username is already used by a user or another guest, ignoring case.
	Create(ctx context.Context, g domain.GuestUser) (domain.GuestUser, error)

	// GetByID returns domain.ErrNotFound if the guest does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.GuestUser, error)

	// ListPoints returns every guest's all-time totals with their public profile.
	ListPoints(ctx context.Context) ([]domain.ActorPoints, error)

	// CountAbove counts users and guests with strictly more than points.
	CountAbove(ctx context.Context, points int) (int, error)
}

type pgGuestRepo struct {
	db db
}

// NewGuestRepo constructs a GuestRepo backed by the provided db connection.
func NewGuestRepo(db db) GuestRepo {
	return &pgGuestRepo{db: db}
}

const guestColumns = `id, username, display_name, avatar_url, device_fingerprint, points, total_spins, created_at, updated_at, last_active_at`

func (r *pgGuestRepo) Create(ctx context.Context, g domain.GuestUser) (domain.GuestUser, error) {
	const q = `
		INSERT INTO guest_users (username, display_name, device_fingerprint)
		VALUES (@username, @display_name, @device_fingerprint)
		RETURNING ` + guestColumns

	args := pgx.NamedArgs{
		"username":           g.Username,
		"display_name":       g.DisplayName,
		"device_fingerprint": g.DeviceFingerprint,
	}
	got, err := scanGuest(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.GuestUser{}, fmt.Errorf("repo.GuestRepo.Create: %w", err)
	}
	return got, nil
}

func (r *pgGuestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.GuestUser, error) {
	q := `SELECT ` + guestColumns + ` FROM guest_users WHERE id = @id`

	got, err := scanGuest(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.GuestUser{}, fmt.Errorf("repo.GuestRepo.GetByID: %w", err)
	}
	return got, nil
}

func (r *pgGuestRepo) ListPoints(ctx context.Context) ([]domain.ActorPoints, error) {
	const q = `
		SELECT id, username, display_name, avatar_url, points, total_spins
		FROM guest_users
		ORDER BY points DESC, created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.GuestRepo.ListPoints: %w", err)
	}
	return collectPoints(rows, domain.ActorGuest, "repo.GuestRepo.ListPoints")
}

func (r *pgGuestRepo) CountAbove(ctx context.Context, points int) (int, error) {
	const q = `
		SELECT (SELECT count(*) FROM users WHERE points > @points)
		     + (SELECT count(*) FROM guest_users WHERE points > @points)`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"points": points}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.GuestRepo.CountAbove: %w", err)
	}
	return n, nil
}

func scanGuest(s scanner) (domain.GuestUser, error) {
	var g domain.GuestUser
	err := s.Scan(&g.ID, &g.Username, &g.DisplayName, &g.AvatarURL, &g.DeviceFingerprint,
		&g.Points, &g.TotalSpins, &g.CreatedAt, &g.UpdatedAt, &g.LastActiveAt)
	if err != nil {
		return domain.GuestUser{}, mapErr(err)
	}
	return g, nil
}
