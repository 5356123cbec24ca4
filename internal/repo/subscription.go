package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/coupdetete/backend/internal/domain"
)

// SubscriptionRepo defines the persistence operations for the local mirror of
// Stripe subscriptions. There is one row per user.
type SubscriptionRepo interface {
	// GetByUser returns the user's row or domain.ErrNotFound.
	GetByUser(ctx context.Context, userID uuid.UUID) (domain.Subscription, error)

	// GetByCustomer returns the row for a Stripe customer or domain.ErrNotFound.
	GetByCustomer(ctx context.Context, customerID string) (domain.Subscription, error)

	// GetBySubscription returns the row for a Stripe subscription or domain.ErrNotFound.
	GetBySubscription(ctx context.Context, subscriptionID string) (domain.Subscription, error)

	// Upsert inserts or replaces the row keyed by user_id.
	Upsert(ctx context.Context, s domain.Subscription) (domain.Subscription, error)
}

type pgSubscriptionRepo struct {
	db db
}

// NewSubscriptionRepo constructs a SubscriptionRepo backed by the provided db connection.
func NewSubscriptionRepo(db db) SubscriptionRepo {
	return &pgSubscriptionRepo{db: db}
}

const subscriptionColumns = `user_id, stripe_customer_id, stripe_subscription_id, stripe_price_id, status,
	current_period_start, current_period_end, cancel_at_period_end, canceled_at, created_at, updated_at`

func (r *pgSubscriptionRepo) GetByUser(ctx context.Context, userID uuid.UUID) (domain.Subscription, error) {
	return r.getBy(ctx, "user_id", userID, "repo.SubscriptionRepo.GetByUser")
}

func (r *pgSubscriptionRepo) GetByCustomer(ctx context.Context, customerID string) (domain.Subscription, error) {
	return r.getBy(ctx, "stripe_customer_id", customerID, "repo.SubscriptionRepo.GetByCustomer")
}

func (r *pgSubscriptionRepo) GetBySubscription(ctx context.Context, subscriptionID string) (domain.Subscription, error) {
	return r.getBy(ctx, "stripe_subscription_id", subscriptionID, "repo.SubscriptionRepo.GetBySubscription")
}

// getBy is only called with the fixed column names above.
func (r *pgSubscriptionRepo) getBy(ctx context.Context, column string, value any, op string) (domain.Subscription, error) {
	q := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE ` + column + ` = @value`

	got, err := scanSubscription(r.db.QueryRow(ctx, q, pgx.NamedArgs{"value": value}))
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("%s: %w", op, err)
	}
	return got, nil
}

func (r *pgSubscriptionRepo) Upsert(ctx context.Context, s domain.Subscription) (domain.Subscription, error) {
	const q = `
		INSERT INTO subscriptions (user_id, stripe_customer_id, stripe_subscription_id, stripe_price_id, status,
		                           current_period_start, current_period_end, cancel_at_period_end, canceled_at)
		VALUES (@user_id, @customer_id, @subscription_id, @price_id, @status,
		        @period_start, @period_end, @cancel_at_period_end, @canceled_at)
		ON CONFLICT (user_id) DO UPDATE
		SET stripe_customer_id     = EXCLUDED.stripe_customer_id,
		    stripe_subscription_id = EXCLUDED.stripe_subscription_id,
		    stripe_price_id        = EXCLUDED.stripe_price_id,
		    status                 = EXCLUDED.status,
		    current_period_start   = EXCLUDED.current_period_start,
		    current_period_end     = EXCLUDED.current_period_end,
		    cancel_at_period_end   = EXCLUDED.cancel_at_period_end,
		    canceled_at            = EXCLUDED.canceled_at,
		    updated_at             = now()
		RETURNING ` + subscriptionColumns

	args := pgx.NamedArgs{
		"user_id":              s.UserID,
		"customer_id":          s.StripeCustomerID,
		"subscription_id":      s.StripeSubscriptionID,
		"price_id":             s.StripePriceID,
		"status":               string(s.Status),
		"period_start":         s.CurrentPeriodStart,
		"period_end":           s.CurrentPeriodEnd,
		"cancel_at_period_end": s.CancelAtPeriodEnd,
		"canceled_at":          s.CanceledAt,
	}
	got, err := scanSubscription(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("repo.SubscriptionRepo.Upsert: %w", err)
	}
	return got, nil
}

func scanSubscription(s scanner) (domain.Subscription, error) {
	var (
		sub        domain.Subscription
		status     string
		start, end pgtype.Timestamptz
		canceledAt pgtype.Timestamptz
	)
	err := s.Scan(&sub.UserID, &sub.StripeCustomerID, &sub.StripeSubscriptionID, &sub.StripePriceID, &status,
		&start, &end, &sub.CancelAtPeriodEnd, &canceledAt, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return domain.Subscription{}, mapErr(err)
	}
	sub.Status = domain.SubscriptionStatus(status)
	sub.CurrentPeriodStart = timePtr(start)
	sub.CurrentPeriodEnd = timePtr(end)
	sub.CanceledAt = timePtr(canceledAt)
	return sub, nil
}
