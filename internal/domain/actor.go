package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ActorKind distinguishes registered users from guests.
type ActorKind string

const (
	ActorUser  ActorKind = "user"
	ActorGuest ActorKind = "guest"
)

// Actor is whoever performs an action: a registered user or a guest, never both.
type Actor struct {
	Kind ActorKind
	ID   uuid.UUID
}

// UserActor returns an Actor for a registered user.
func UserActor(id uuid.UUID) Actor { return Actor{Kind: ActorUser, ID: id} }

// GuestActor returns an Actor for a guest.
func GuestActor(id uuid.UUID) Actor { return Actor{Kind: ActorGuest, ID: id} }

// IsGuest reports whether the actor is a guest.
func (a Actor) IsGuest() bool { return a.Kind == ActorGuest }

// Validate checks that the actor has a known kind and a non-nil id.
func (a Actor) Validate() error {
	if a.Kind != ActorUser && a.Kind != ActorGuest {
		return fmt.Errorf("%w: unknown actor kind %q", ErrValidation, a.Kind)
	}
	if a.ID == uuid.Nil {
		return fmt.Errorf("%w: actor id is required", ErrValidation)
	}
	return nil
}
