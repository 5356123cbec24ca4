package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/middleware"
)

// GuestHeader carries the client-stored guest id.
const GuestHeader = "X-Guest-ID"

// ActorFrom derives the single actor behind a request: the authenticated
// user when a valid bearer token was sent, otherwise the guest named by the
// X-Guest-ID header. It returns nil for anonymous requests and for a
// malformed guest id.
func ActorFrom(r *http.Request) *domain.Actor {
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		a := domain.UserActor(id)
		return &a
	}
	if raw := r.Header.Get(GuestHeader); raw != "" {
		if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
			a := domain.GuestActor(id)
			return &a
		}
	}
	return nil
}

// userID returns the authenticated user id. Routes behind Auth.Required
// always have one.
func userID(r *http.Request) uuid.UUID {
	id, _ := middleware.UserIDFromContext(r.Context())
	return id
}
