// Package billing adapts the Stripe API for premium subscriptions and parses
// Stripe webhook events into typed values.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// ErrNotConfigured is returned when a Stripe call is made without a secret key.
var ErrNotConfigured = errors.New("billing is not configured")

// Config holds the Stripe settings.
type Config struct {
	SecretKey      string
	PremiumPriceID string
}

// CheckoutRequest describes a new subscription checkout session.
type CheckoutRequest struct {
	UserID     uuid.UUID
	CustomerID string
	// Embedded selects the embedded UI. It uses ReturnURL; the hosted page
	// uses SuccessURL and CancelURL.
	Embedded   bool
	SuccessURL string
	CancelURL  string
	ReturnURL  string
}

// CheckoutSession is what the client needs to continue the checkout.
type CheckoutSession struct {
	ID           string
	URL          string
	ClientSecret string
}

// SessionStatus reports the state of a checkout session.
type SessionStatus struct {
	Status        string
	PaymentStatus string
	CustomerEmail string
}

// Stripe talks to the Stripe API through an explicitly constructed client.
type Stripe struct {
	api     *client.API
	priceID string
}

// NewStripe builds a Stripe gateway. An empty secret key yields a gateway
// whose calls all fail with ErrNotConfigured.
func NewStripe(cfg Config) *Stripe {
	s := &Stripe{priceID: cfg.PremiumPriceID}
	if cfg.SecretKey != "" {
		s.api = &client.API{}
		s.api.Init(cfg.SecretKey, nil)
	}
	return s
}

func (s *Stripe) ready() error {
	if s.api == nil {
		return ErrNotConfigured
	}
	return nil
}

// CreateCustomer creates a Stripe customer tagged with the user id.
func (s *Stripe) CreateCustomer(ctx context.Context, email string, userID uuid.UUID) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	params.AddMetadata("user_id", userID.String())

	c, err := s.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("billing.Stripe.CreateCustomer: %w", err)
	}
	return c.ID, nil
}

// CreateCheckoutSession opens a subscription checkout for the premium price.
func (s *Stripe) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	if err := s.ready(); err != nil {
		return CheckoutSession{}, err
	}
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(req.CustomerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(s.priceID), Quantity: stripe.Int64(1)},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"user_id": req.UserID.String()},
		},
	}
	params.Context = ctx
	params.AddMetadata("user_id", req.UserID.String())
	if req.Embedded {
		params.UIMode = stripe.String(string(stripe.CheckoutSessionUIModeEmbedded))
		params.ReturnURL = stripe.String(req.ReturnURL)
	} else {
		params.PaymentMethodTypes = stripe.StringSlice([]string{"card"})
		params.SuccessURL = stripe.String(req.SuccessURL)
		params.CancelURL = stripe.String(req.CancelURL)
	}

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("billing.Stripe.CreateCheckoutSession: %w", err)
	}
	return CheckoutSession{ID: sess.ID, URL: sess.URL, ClientSecret: sess.ClientSecret}, nil
}

// GetSessionStatus retrieves a checkout session.
func (s *Stripe) GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error) {
	if err := s.ready(); err != nil {
		return SessionStatus{}, err
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := s.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return SessionStatus{}, fmt.Errorf("billing.Stripe.GetSessionStatus: %w", err)
	}
	out := SessionStatus{Status: string(sess.Status), PaymentStatus: string(sess.PaymentStatus)}
	if out.Status == "" {
		out.Status = "unknown"
	}
	if sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}
	return out, nil
}

// CreatePortalSession returns the URL of a billing portal session.
func (s *Stripe) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := s.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("billing.Stripe.CreatePortalSession: %w", err)
	}
	return sess.URL, nil
}

// GetSubscription fetches the current state of a subscription.
func (s *Stripe) GetSubscription(ctx context.Context, subscriptionID string) (Snapshot, error) {
	if err := s.ready(); err != nil {
		return Snapshot{}, err
	}
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := s.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return Snapshot{}, fmt.Errorf("billing.Stripe.GetSubscription: %w", err)
	}
	return snapshotFromAPI(sub), nil
}

// snapshotFromAPI maps a Stripe subscription, fetched or decoded from a
// webhook, onto the fields the service mirrors.
func snapshotFromAPI(sub *stripe.Subscription) Snapshot {
	snap := Snapshot{
		ID:                sub.ID,
		Status:            MapStatus(string(sub.Status)),
		PeriodStart:       unix(sub.CurrentPeriodStart),
		PeriodEnd:         unix(sub.CurrentPeriodEnd),
		CustomerID:        customerID(sub.Customer),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		snap.PriceID = sub.Items.Data[0].Price.ID
	}
	if sub.CanceledAt > 0 {
		t := unix(sub.CanceledAt)
		snap.CanceledAt = &t
	}
	if id, err := uuid.Parse(sub.Metadata["user_id"]); err == nil {
		snap.UserID = &id
	}
	return snap
}

// IsProviderError reports whether err came back from the Stripe API.
func IsProviderError(err error) bool {
	var se *stripe.Error
	return errors.As(err, &se)
}
