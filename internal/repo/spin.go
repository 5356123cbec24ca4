package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/coupdetete/backend/internal/domain"
)

// SpinRepo defines the persistence operations for the spin history.
type SpinRepo interface {
	// Record appends a spin and adds its points to the owner's running totals
	// in one statement. Returns domain.ErrNotFound if the owner does not exist.
	Record(ctx context.Context, s domain.Spin) (domain.Spin, error)

	// ListRecent returns the actor's latest spins, newest first.
	ListRecent(ctx context.Context, a domain.Actor, limit int) ([]domain.Spin, error)

	// PointsSince sums points per actor of the given kind for spins at or after since.
	PointsSince(ctx context.Context, kind domain.ActorKind, since time.Time) ([]domain.ActorPoints, error)
}

type pgSpinRepo struct {
	db db
}

// NewSpinRepo constructs a SpinRepo backed by the provided db connection.
func NewSpinRepo(db db) SpinRepo {
	return &pgSpinRepo{db: db}
}

const spinColumns = `id, user_id, guest_user_id, destination_city, departure_city, travel_time_minutes, typical_price_euros, points_earned, spun_at`

// The owner update runs as a data-modifying CTE, so the insert only happens
// when the owner row exists and both writes commit together.
const (
	recordUserSpin = `
		WITH owner AS (
			UPDATE users
			SET points = points + @points, total_spins = total_spins + 1, updated_at = now()
			WHERE id = @owner_id
			RETURNING id
		)
		INSERT INTO spin_history (user_id, destination_city, departure_city, travel_time_minutes, typical_price_euros, points_earned)
		SELECT owner.id, @destination_city, @departure_city, @travel_time_minutes, @price::numeric, @points
		FROM owner
		RETURNING ` + spinColumns

	recordGuestSpin = `
		WITH owner AS (
			UPDATE guest_users
			SET points = points + @points, total_spins = total_spins + 1,
			    updated_at = now(), last_active_at = now()
			WHERE id = @owner_id
			RETURNING id
		)
		INSERT INTO spin_history (guest_user_id, destination_city, departure_city, travel_time_minutes, typical_price_euros, points_earned)
		SELECT owner.id, @destination_city, @departure_city, @travel_time_minutes, @price::numeric, @points
		FROM owner
		RETURNING ` + spinColumns
)

func (r *pgSpinRepo) Record(ctx context.Context, s domain.Spin) (domain.Spin, error) {
	owner := s.Actor()
	if err := owner.Validate(); err != nil {
		return domain.Spin{}, fmt.Errorf("repo.SpinRepo.Record: %w", err)
	}
	q := recordUserSpin
	if owner.IsGuest() {
		q = recordGuestSpin
	}

	args := pgx.NamedArgs{
		"owner_id":            owner.ID,
		"destination_city":    s.DestinationCity,
		"departure_city":      s.DepartureCity,
		"travel_time_minutes": s.TravelTimeMinutes,
		"price":               s.PriceEuros.String(),
		"points":              s.PointsEarned,
	}
	got, err := scanSpin(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Spin{}, fmt.Errorf("repo.SpinRepo.Record: %w", err)
	}
	return got, nil
}

func (r *pgSpinRepo) ListRecent(ctx context.Context, a domain.Actor, limit int) ([]domain.Spin, error) {
	column := "user_id"
	if a.IsGuest() {
		column = "guest_user_id"
	}
	q := `SELECT ` + spinColumns + ` FROM spin_history WHERE ` + column + ` = @id ORDER BY spun_at DESC LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"id": a.ID, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.SpinRepo.ListRecent: %w", err)
	}
	defer rows.Close()

	spins := []domain.Spin{}
	for rows.Next() {
		s, err := scanSpin(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SpinRepo.ListRecent: scan: %w", err)
		}
		spins = append(spins, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SpinRepo.ListRecent: rows: %w", err)
	}
	return spins, nil
}

func (r *pgSpinRepo) PointsSince(ctx context.Context, kind domain.ActorKind, since time.Time) ([]domain.ActorPoints, error) {
	q := `
		SELECT u.id, u.username, u.display_name, u.avatar_url, sum(s.points_earned)::int, count(*)::int
		FROM spin_history s
		JOIN users u ON u.id = s.user_id
		WHERE s.spun_at >= @since
		GROUP BY u.id
		ORDER BY 5 DESC, min(s.spun_at)`
	if kind == domain.ActorGuest {
		q = `
		SELECT g.id, g.username, g.display_name, g.avatar_url, sum(s.points_earned)::int, count(*)::int
		FROM spin_history s
		JOIN guest_users g ON g.id = s.guest_user_id
		WHERE s.spun_at >= @since
		GROUP BY g.id
		ORDER BY 5 DESC, min(s.spun_at)`
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"since": since})
	if err != nil {
		return nil, fmt.Errorf("repo.SpinRepo.PointsSince: %w", err)
	}
	return collectPoints(rows, kind, "repo.SpinRepo.PointsSince")
}

func scanSpin(s scanner) (domain.Spin, error) {
	var (
		sp      domain.Spin
		userID  pgtype.UUID
		guestID pgtype.UUID
		price   pgtype.Numeric
	)
	err := s.Scan(&sp.ID, &userID, &guestID, &sp.DestinationCity, &sp.DepartureCity,
		&sp.TravelTimeMinutes, &price, &sp.PointsEarned, &sp.SpunAt)
	if err != nil {
		return domain.Spin{}, mapErr(err)
	}
	sp.UserID = uuidPtr(userID)
	sp.GuestUserID = uuidPtr(guestID)
	sp.PriceEuros = numericToDecimal(price)
	return sp, nil
}
