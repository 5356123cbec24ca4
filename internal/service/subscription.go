package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coupdetete/backend/internal/billing"
	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/repo"
)

// PaymentGateway is the subset of the payment provider the service uses.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, email string, userID uuid.UUID) (string, error)
	CreateCheckoutSession(ctx context.Context, req billing.CheckoutRequest) (billing.CheckoutSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (billing.SessionStatus, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	GetSubscription(ctx context.Context, subscriptionID string) (billing.Snapshot, error)
}

// SubscriptionStatus is what the client needs to gate premium features.
type SubscriptionStatus struct {
	Premium      bool
	Tier         domain.Tier
	Subscription *domain.Subscription
}

// SubscriptionService runs checkout and keeps the local subscription rows
// and user tiers in line with the payment provider.
type SubscriptionService struct {
	users    repo.UserRepo
	subs     repo.SubscriptionRepo
	payments PaymentGateway
	baseURL  string
	now      func() time.Time
	log      *slog.Logger
}

// NewSubscriptionService constructs a SubscriptionService. baseURL is the
// web app origin used for checkout and portal redirects.
func NewSubscriptionService(users repo.UserRepo, subs repo.SubscriptionRepo, payments PaymentGateway, baseURL string, now func() time.Time, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		users:    users,
		subs:     subs,
		payments: payments,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      now,
		log:      log,
	}
}

// Checkout opens a hosted or embedded checkout session for a free user.
// The Stripe customer is created on first use and remembered.
func (s *SubscriptionService) Checkout(ctx context.Context, userID uuid.UUID, embedded bool) (billing.CheckoutSession, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return billing.CheckoutSession{}, fmt.Errorf("service.SubscriptionService.Checkout: %w", err)
	}
	if user.Tier == domain.TierPremium {
		return billing.CheckoutSession{}, fmt.Errorf("service.SubscriptionService.Checkout: %w", domain.ErrAlreadyPremium)
	}

	customerID, err := s.customerFor(ctx, user)
	if err != nil {
		return billing.CheckoutSession{}, fmt.Errorf("service.SubscriptionService.Checkout: %w", err)
	}

	success := s.baseURL + "/subscription/success?session_id={CHECKOUT_SESSION_ID}"
	sess, err := s.payments.CreateCheckoutSession(ctx, billing.CheckoutRequest{
		UserID:     userID,
		CustomerID: customerID,
		Embedded:   embedded,
		SuccessURL: success,
		CancelURL:  s.baseURL + "/subscription?canceled=true",
		ReturnURL:  success,
	})
	if err != nil {
		return billing.CheckoutSession{}, fmt.Errorf("service.SubscriptionService.Checkout: %w", err)
	}
	s.log.InfoContext(ctx, "checkout session created", "user_id", userID, "session_id", sess.ID, "embedded", embedded)
	return sess, nil
}

func (s *SubscriptionService) customerFor(ctx context.Context, user domain.User) (string, error) {
	sub, err := s.subs.GetByUser(ctx, user.ID)
	if err == nil {
		return sub.StripeCustomerID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	customerID, err := s.payments.CreateCustomer(ctx, user.Email, user.ID)
	if err != nil {
		return "", err
	}
	_, err = s.subs.Upsert(ctx, domain.Subscription{
		UserID:           user.ID,
		StripeCustomerID: customerID,
		Status:           domain.SubscriptionInactive,
	})
	if err != nil {
		return "", err
	}
	return customerID, nil
}

// SessionStatus reports the state of a checkout session.
func (s *SubscriptionService) SessionStatus(ctx context.Context, sessionID string) (billing.SessionStatus, error) {
	if sessionID == "" {
		return billing.SessionStatus{}, fmt.Errorf("service.SubscriptionService.SessionStatus: %w: session_id is required", domain.ErrValidation)
	}
	st, err := s.payments.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return billing.SessionStatus{}, fmt.Errorf("service.SubscriptionService.SessionStatus: %w", err)
	}
	return st, nil
}

// Portal returns a billing portal URL. Returns domain.ErrNotFound when the
// user never started a checkout.
func (s *SubscriptionService) Portal(ctx context.Context, userID uuid.UUID) (string, error) {
	sub, err := s.subs.GetByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("service.SubscriptionService.Portal: %w", err)
	}
	url, err := s.payments.CreatePortalSession(ctx, sub.StripeCustomerID, s.baseURL+"/settings")
	if err != nil {
		return "", fmt.Errorf("service.SubscriptionService.Portal: %w", err)
	}
	return url, nil
}

// Status combines the user's tier with their subscription row.
func (s *SubscriptionService) Status(ctx context.Context, userID uuid.UUID) (SubscriptionStatus, error) {
	tier := domain.TierFree
	user, err := s.users.GetByID(ctx, userID)
	switch {
	case err == nil:
		tier = user.Tier
	case !errors.Is(err, domain.ErrNotFound):
		return SubscriptionStatus{}, fmt.Errorf("service.SubscriptionService.Status: %w", err)
	}

	var sub *domain.Subscription
	got, err := s.subs.GetByUser(ctx, userID)
	switch {
	case err == nil:
		sub = &got
	case !errors.Is(err, domain.ErrNotFound):
		return SubscriptionStatus{}, fmt.Errorf("service.SubscriptionService.Status: %w", err)
	}

	return SubscriptionStatus{
		Premium:      domain.IsPremium(tier, sub, s.now()),
		Tier:         tier,
		Subscription: sub,
	}, nil
}

// HandleEvent reconciles one verified webhook event. Events about
// customers or subscriptions we do not know are logged and skipped.
func (s *SubscriptionService) HandleEvent(ctx context.Context, ev billing.Event) error {
	var err error
	switch e := ev.(type) {
	case billing.CheckoutCompleted:
		err = s.checkoutCompleted(ctx, e)
	case billing.InvoicePaid:
		err = s.invoicePaid(ctx, e)
	case billing.InvoicePaymentFailed:
		err = s.invoicePaymentFailed(ctx, e)
	case billing.SubscriptionChanged:
		err = s.subscriptionChanged(ctx, e)
	case billing.SubscriptionDeleted:
		err = s.subscriptionDeleted(ctx, e)
	default:
		s.log.DebugContext(ctx, "webhook event ignored", "type", ev.EventType())
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		s.log.WarnContext(ctx, "webhook event for unknown subscription", "type", ev.EventType(), "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("service.SubscriptionService.HandleEvent: %s: %w", ev.EventType(), err)
	}
	return nil
}

func (s *SubscriptionService) checkoutCompleted(ctx context.Context, e billing.CheckoutCompleted) error {
	snap, err := s.payments.GetSubscription(ctx, e.SubscriptionID)
	if err != nil {
		return err
	}
	sub := domain.Subscription{
		UserID:           e.UserID,
		StripeCustomerID: e.CustomerID,
		Status:           domain.SubscriptionActive,
	}
	applySnapshot(&sub, snap)
	sub.Status = domain.SubscriptionActive
	return s.save(ctx, sub, domain.TierPremium)
}

func (s *SubscriptionService) invoicePaid(ctx context.Context, e billing.InvoicePaid) error {
	if e.SubscriptionID == "" {
		return nil
	}
	sub, err := s.subs.GetByCustomer(ctx, e.CustomerID)
	if err != nil {
		return err
	}
	snap, err := s.payments.GetSubscription(ctx, e.SubscriptionID)
	if err != nil {
		return err
	}
	sub.Status = domain.SubscriptionActive
	sub.CurrentPeriodStart = timeOrNil(snap.PeriodStart)
	sub.CurrentPeriodEnd = timeOrNil(snap.PeriodEnd)
	return s.save(ctx, sub, domain.TierPremium)
}

func (s *SubscriptionService) invoicePaymentFailed(ctx context.Context, e billing.InvoicePaymentFailed) error {
	sub, err := s.subs.GetByCustomer(ctx, e.CustomerID)
	if err != nil {
		return err
	}
	sub.Status = domain.SubscriptionPastDue
	return s.save(ctx, sub, "")
}

func (s *SubscriptionService) subscriptionChanged(ctx context.Context, e billing.SubscriptionChanged) error {
	snap := e.Subscription

	var (
		sub domain.Subscription
		err error
	)
	if snap.UserID != nil {
		sub, err = s.subs.GetByUser(ctx, *snap.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			sub, err = domain.Subscription{UserID: *snap.UserID, StripeCustomerID: snap.CustomerID}, nil
		}
	} else {
		sub, err = s.subs.GetByCustomer(ctx, snap.CustomerID)
	}
	if err != nil {
		return err
	}

	applySnapshot(&sub, snap)
	return s.save(ctx, sub, domain.TierFor(sub.Status))
}

func (s *SubscriptionService) subscriptionDeleted(ctx context.Context, e billing.SubscriptionDeleted) error {
	sub, err := s.subs.GetBySubscription(ctx, e.SubscriptionID)
	if err != nil {
		return err
	}
	now := s.now()
	sub.Status = domain.SubscriptionCanceled
	sub.CanceledAt = &now
	return s.save(ctx, sub, domain.TierFree)
}

// save upserts the row and, when tier is set, the user's tier.
func (s *SubscriptionService) save(ctx context.Context, sub domain.Subscription, tier domain.Tier) error {
	saved, err := s.subs.Upsert(ctx, sub)
	if err != nil {
		return err
	}
	if tier != "" {
		if err := s.users.SetTier(ctx, saved.UserID, tier); err != nil {
			return err
		}
	}
	s.log.InfoContext(ctx, "subscription reconciled",
		"user_id", saved.UserID,
		"status", saved.Status,
		"tier", tier,
	)
	return nil
}

func applySnapshot(sub *domain.Subscription, snap billing.Snapshot) {
	if snap.ID != "" {
		id := snap.ID
		sub.StripeSubscriptionID = &id
	}
	if snap.PriceID != "" {
		price := snap.PriceID
		sub.StripePriceID = &price
	}
	if snap.CustomerID != "" {
		sub.StripeCustomerID = snap.CustomerID
	}
	sub.Status = snap.Status
	sub.CurrentPeriodStart = timeOrNil(snap.PeriodStart)
	sub.CurrentPeriodEnd = timeOrNil(snap.PeriodEnd)
	sub.CancelAtPeriodEnd = snap.CancelAtPeriodEnd
	sub.CanceledAt = snap.CanceledAt
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
