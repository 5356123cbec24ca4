package billing

import "github.com/coupdetete/backend/internal/domain"

// MapStatus converts a Stripe subscription status to the application status.
// unpaid is folded into past_due. Anything unknown (incomplete, paused...) is inactive.
func MapStatus(stripeStatus string) domain.SubscriptionStatus {
	switch stripeStatus {
	case "active":
		return domain.SubscriptionActive
	case "canceled":
		return domain.SubscriptionCanceled
	case "past_due", "unpaid":
		return domain.SubscriptionPastDue
	case "trialing":
		return domain.SubscriptionTrialing
	default:
		return domain.SubscriptionInactive
	}
}
