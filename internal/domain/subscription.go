package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the application-side subscription state.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionInactive SubscriptionStatus = "inactive"
)

// TierFor returns the tier a subscription status grants.
func TierFor(status SubscriptionStatus) Tier {
	if status == SubscriptionActive || status == SubscriptionTrialing {
		return TierPremium
	}
	return TierFree
}

// Subscription is the local mirror of a payment-provider subscription.
// One row per user.
type Subscription struct {
	UserID               uuid.UUID
	StripeCustomerID     string
	StripeSubscriptionID *string
	StripePriceID        *string
	Status               SubscriptionStatus
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool
	CanceledAt           *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ActiveAt reports whether the subscription is active at now. A missing
// period end counts as open-ended.
func (s Subscription) ActiveAt(now time.Time) bool {
	if s.Status != SubscriptionActive {
		return false
	}
	return s.CurrentPeriodEnd == nil || s.CurrentPeriodEnd.After(now)
}

// IsPremium combines the user's tier with the subscription row.
// sub may be nil when the user never started a checkout.
func IsPremium(tier Tier, sub *Subscription, now time.Time) bool {
	if tier == TierPremium {
		return true
	}
	return sub != nil && sub.ActiveAt(now)
}
