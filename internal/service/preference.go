package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/quiz"
	"github.com/coupdetete/backend/internal/repo"
)

// Preference is a stored preference with its archetype details resolved.
type Preference struct {
	domain.UserPreference
	Archetype *domain.Archetype
}

// PreferenceService reads and writes an actor's archetype preference.
type PreferenceService struct {
	prefs repo.PreferenceRepo
}

// NewPreferenceService constructs a PreferenceService.
func NewPreferenceService(prefs repo.PreferenceRepo) *PreferenceService {
	return &PreferenceService{prefs: prefs}
}

// Get returns the actor's preference, or nil when they have none.
func (s *PreferenceService) Get(ctx context.Context, actor domain.Actor) (*Preference, error) {
	p, err := s.prefs.Get(ctx, actor)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service.PreferenceService.Get: %w", err)
	}
	return withArchetype(p), nil
}

// Set records a manual archetype choice. The quiz flag is cleared and the
// personalization toggle is kept unless enabled is non-nil.
func (s *PreferenceService) Set(ctx context.Context, actor domain.Actor, archetypeID string, enabled *bool) (*Preference, error) {
	if archetypeID == "" {
		return nil, fmt.Errorf("service.PreferenceService.Set: %w: archetype_id is required", domain.ErrValidation)
	}
	id := domain.ArchetypeID(archetypeID)
	if !id.Valid() {
		return nil, fmt.Errorf("service.PreferenceService.Set: %w: %q", domain.ErrInvalidArchetype, archetypeID)
	}

	saved, err := s.prefs.Upsert(ctx, domain.PreferenceUpdate{
		Actor:                  actor,
		ArchetypeID:            id,
		QuizCompleted:          false,
		PersonalizationEnabled: enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("service.PreferenceService.Set: %w", err)
	}
	return withArchetype(saved), nil
}

func withArchetype(p domain.UserPreference) *Preference {
	out := &Preference{UserPreference: p}
	if p.ArchetypeID != nil {
		if a, ok := quiz.Lookup(*p.ArchetypeID); ok {
			out.Archetype = &a
		}
	}
	return out
}
