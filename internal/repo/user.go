package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coupdetete/backend/internal/domain"
)

// UserRepo defines the persistence operations for registered users.
type UserRepo interface {
	// Upsert creates the user row or updates its profile fields. Points,
	// spins and tier are never touched. Returns domain.ErrConflict when the
	// email belongs to another user or the username to another user or guest.
	Upsert(ctx context.Context, u domain.User) (domain.User, error)

	// GetByID returns domain.ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// SetTier sets the subscription tier. Returns domain.ErrNotFound if the user does not exist.
	SetTier(ctx context.Context, id uuid.UUID, tier domain.Tier) error

	// ListPoints returns every user's all-time totals with their public profile.
	ListPoints(ctx context.Context) ([]domain.ActorPoints, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, email, username, display_name, avatar_url, points, total_spins, subscription_tier, created_at, updated_at`

func (r *pgUserRepo) Upsert(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (id, email, username, display_name, avatar_url)
		VALUES (@id, @email, @username, @display_name, @avatar_url)
		ON CONFLICT (id) DO UPDATE
		SET email        = EXCLUDED.email,
		    username     = EXCLUDED.username,
		    display_name = EXCLUDED.display_name,
		    avatar_url   = EXCLUDED.avatar_url,
		    updated_at   = now()
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":           u.ID,
		"email":        u.Email,
		"username":     u.Username,
		"display_name": u.DisplayName,
		"avatar_url":   u.AvatarURL,
	}

	got, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Upsert: %w", err)
	}
	return got, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	got, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return got, nil
}

func (r *pgUserRepo) SetTier(ctx context.Context, id uuid.UUID, tier domain.Tier) error {
	const q = `UPDATE users SET subscription_tier = @tier, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "tier": string(tier)})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.SetTier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.SetTier: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgUserRepo) ListPoints(ctx context.Context) ([]domain.ActorPoints, error) {
	const q = `
		SELECT id, username, display_name, avatar_url, points, total_spins
		FROM users
		ORDER BY points DESC, created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListPoints: %w", err)
	}
	return collectPoints(rows, domain.ActorUser, "repo.UserRepo.ListPoints")
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u    domain.User
		tier string
	)
	err := s.Scan(&u.ID, &u.Email, &u.Username, &u.DisplayName, &u.AvatarURL,
		&u.Points, &u.TotalSpins, &tier, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	u.Tier = domain.Tier(tier)
	return u, nil
}

// collectPoints scans (id, username, display_name, avatar_url, points, total_spins) rows.
func collectPoints(rows pgx.Rows, kind domain.ActorKind, op string) ([]domain.ActorPoints, error) {
	defer rows.Close()

	out := []domain.ActorPoints{}
	for rows.Next() {
		var (
			ap domain.ActorPoints
			id uuid.UUID
		)
		if err := rows.Scan(&id, &ap.Profile.Username, &ap.Profile.DisplayName, &ap.Profile.AvatarURL,
			&ap.Points, &ap.TotalSpins); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		ap.Profile.Actor = domain.Actor{Kind: kind, ID: id}
		out = append(out, ap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}
