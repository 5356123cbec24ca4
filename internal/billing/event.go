package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/coupdetete/backend/internal/domain"
)

// ErrSignature is returned when a webhook payload fails signature verification.
var ErrSignature = errors.New("invalid webhook signature")

// Event is one verified webhook event. The concrete type is one of
// CheckoutCompleted, InvoicePaid, InvoicePaymentFailed, SubscriptionChanged,
// SubscriptionDeleted or Ignored.
type Event interface {
	EventType() string
}

// CheckoutCompleted: checkout.session.completed.
type CheckoutCompleted struct {
	UserID         uuid.UUID
	CustomerID     string
	SubscriptionID string
}

// InvoicePaid: invoice.paid. SubscriptionID is empty for one-time payments.
type InvoicePaid struct {
	CustomerID     string
	SubscriptionID string
}

// InvoicePaymentFailed: invoice.payment_failed.
type InvoicePaymentFailed struct {
	CustomerID string
}

// SubscriptionChanged: customer.subscription.created and customer.subscription.updated.
type SubscriptionChanged struct {
	Type         string
	Subscription Snapshot
}

// SubscriptionDeleted: customer.subscription.deleted.
type SubscriptionDeleted struct {
	SubscriptionID string
}

// Ignored is any event type the service does not act on.
type Ignored struct {
	Type string
}

func (CheckoutCompleted) EventType() string     { return "checkout.session.completed" }
func (InvoicePaid) EventType() string           { return "invoice.paid" }
func (InvoicePaymentFailed) EventType() string  { return "invoice.payment_failed" }
func (e SubscriptionChanged) EventType() string { return e.Type }
func (SubscriptionDeleted) EventType() string   { return "customer.subscription.deleted" }
func (e Ignored) EventType() string             { return e.Type }

// Snapshot is the subset of a Stripe subscription the service mirrors.
type Snapshot struct {
	ID                string
	CustomerID        string
	Status            domain.SubscriptionStatus
	PriceID           string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	CancelAtPeriodEnd bool
	CanceledAt        *time.Time
	// UserID comes from the subscription metadata, when the checkout set it.
	UserID *uuid.UUID
}

// ParseEvent verifies the Stripe-Signature header and decodes the payload
// into a typed event. Payloads missing required fields fail with
// domain.ErrValidation.
func ParseEvent(payload []byte, signature, secret string) (Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	if ev.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", domain.ErrValidation, ev.ID)
	}
	return decode(string(ev.Type), ev.Data.Raw)
}

func decode(typ string, raw json.RawMessage) (Event, error) {
	switch typ {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := unmarshal(typ, raw, &sess); err != nil {
			return nil, err
		}
		userID, err := uuid.Parse(sess.Metadata["user_id"])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: metadata.user_id is missing or invalid", domain.ErrValidation, typ)
		}
		customerID, subscriptionID := customerID(sess.Customer), subscriptionID(sess.Subscription)
		if customerID == "" || subscriptionID == "" {
			return nil, fmt.Errorf("%w: %s: customer and subscription are required", domain.ErrValidation, typ)
		}
		return CheckoutCompleted{UserID: userID, CustomerID: customerID, SubscriptionID: subscriptionID}, nil

	case "invoice.paid", "invoice.payment_failed":
		var inv stripe.Invoice
		if err := unmarshal(typ, raw, &inv); err != nil {
			return nil, err
		}
		customerID := customerID(inv.Customer)
		if customerID == "" {
			return nil, fmt.Errorf("%w: %s: customer is required", domain.ErrValidation, typ)
		}
		if typ == "invoice.paid" {
			return InvoicePaid{CustomerID: customerID, SubscriptionID: subscriptionID(inv.Subscription)}, nil
		}
		return InvoicePaymentFailed{CustomerID: customerID}, nil

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := unmarshal(typ, raw, &sub); err != nil {
			return nil, err
		}
		if sub.ID == "" || customerID(sub.Customer) == "" {
			return nil, fmt.Errorf("%w: %s: id and customer are required", domain.ErrValidation, typ)
		}
		return SubscriptionChanged{Type: typ, Subscription: snapshotFromAPI(&sub)}, nil

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := unmarshal(typ, raw, &sub); err != nil {
			return nil, err
		}
		if sub.ID == "" {
			return nil, fmt.Errorf("%w: %s: id is required", domain.ErrValidation, typ)
		}
		return SubscriptionDeleted{SubscriptionID: sub.ID}, nil
	}
	return Ignored{Type: typ}, nil
}

func unmarshal(typ string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrValidation, typ, err)
	}
	return nil
}

func customerID(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func subscriptionID(s *stripe.Subscription) string {
	if s == nil {
		return ""
	}
	return s.ID
}

func unix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
