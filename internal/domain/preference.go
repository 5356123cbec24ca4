package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference holds an actor's current archetype choice. There is at most
// one live preference per actor.
type UserPreference struct {
	ID                     uuid.UUID
	Actor                  Actor
	ArchetypeID            *ArchetypeID
	QuizCompleted          bool
	QuizAnswers            map[string]string
	PersonalizationEnabled bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// PreferenceUpdate is a write to an actor's preference. A nil
// PersonalizationEnabled keeps the stored toggle, or true for a new row.
type PreferenceUpdate struct {
	Actor                  Actor
	ArchetypeID            ArchetypeID
	QuizCompleted          bool
	QuizAnswers            map[string]string
	PersonalizationEnabled *bool
}
