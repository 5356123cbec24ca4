package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing roll field, username too short).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrInvalidArchetype is returned when a caller explicitly chooses an
// archetype id that is not one of the five known archetypes.
var ErrInvalidArchetype = errors.New("invalid archetype")

// ErrNoCandidates is returned by the destination selector when the final
// candidate set is empty. Callers should check the candidate count first.
var ErrNoCandidates = errors.New("no candidate destinations")

// ErrConflict is returned when a unique value (e.g. a username) is already taken.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when an operation needs an authenticated actor.
var ErrUnauthorized = errors.New("unauthorized")

// ErrAlreadyPremium is returned when a premium user asks for a new checkout session.
var ErrAlreadyPremium = errors.New("already premium")
