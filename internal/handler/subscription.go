package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/coupdetete/backend/internal/billing"
	"github.com/coupdetete/backend/internal/domain"
)

// SignatureHeader carries the Stripe webhook signature.
const SignatureHeader = "Stripe-Signature"

type checkoutResponse struct {
	SessionID    string `json:"session_id"`
	URL          string `json:"url,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

type sessionStatusResponse struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

type subscriptionResponse struct {
	Status             domain.SubscriptionStatus `json:"status"`
	CurrentPeriodStart *time.Time                `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time                `json:"current_period_end"`
	CancelAtPeriodEnd  bool                      `json:"cancel_at_period_end"`
	CanceledAt         *time.Time                `json:"canceled_at"`
}

type subscriptionStatusResponse struct {
	IsPremium    bool                  `json:"is_premium"`
	Tier         domain.Tier           `json:"tier"`
	Subscription *subscriptionResponse `json:"subscription"`
}

// Checkout handles POST /api/stripe/checkout. An empty body asks for the
// hosted checkout page; {"embedded":true} asks for the embedded form.
func (s *Server) Checkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Embedded bool `json:"embedded"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON body")
		return
	}

	sess, err := s.Subscriptions.Checkout(r.Context(), userID(r), body.Embedded)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{SessionID: sess.ID, URL: sess.URL, ClientSecret: sess.ClientSecret})
}

// CheckoutSessionStatus handles GET /api/stripe/session-status?session_id=.
func (s *Server) CheckoutSessionStatus(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if !requiredQueryParam(w, r, "session_id", &sessionID) {
		return
	}

	st, err := s.Subscriptions.SessionStatus(r.Context(), sessionID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionStatusResponse{Status: st.Status, PaymentStatus: st.PaymentStatus, CustomerEmail: st.CustomerEmail})
}

// Portal handles POST /api/stripe/portal.
func (s *Server) Portal(w http.ResponseWriter, r *http.Request) {
	url, err := s.Subscriptions.Portal(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "no subscription found")
			return
		}
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// SubscriptionStatus handles GET /api/subscription/status.
func (s *Server) SubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.Subscriptions.Status(r.Context(), userID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := subscriptionStatusResponse{IsPremium: st.Premium, Tier: st.Tier}
	if sub := st.Subscription; sub != nil {
		resp.Subscription = &subscriptionResponse{
			Status:             sub.Status,
			CurrentPeriodStart: sub.CurrentPeriodStart,
			CurrentPeriodEnd:   sub.CurrentPeriodEnd,
			CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
			CanceledAt:         sub.CanceledAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// StripeWebhook handles POST /api/stripe/webhook. The raw body is verified
// against the Stripe-Signature header before anything is decoded.
func (s *Server) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	if s.WebhookSecret == "" {
		s.fail(w, r, billing.ErrNotConfigured)
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return
		}
		badRequest(w, "could not read request body")
		return
	}

	ev, err := billing.ParseEvent(payload, r.Header.Get(SignatureHeader), s.WebhookSecret)
	if err != nil {
		s.Log.Warn("webhook rejected", "error", err)
		s.fail(w, r, err)
		return
	}
	if err := s.Subscriptions.HandleEvent(r.Context(), ev); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
