package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/service"
)

// echoPreferences serves current from Get and records every Upsert in
// written. Upsert applies the toggle the way the store does.
func echoPreferences(current *domain.UserPreference, written *domain.PreferenceUpdate) *mockPreferenceRepo {
	return &mockPreferenceRepo{
		get: func(ctx context.Context, a domain.Actor) (domain.UserPreference, error) {
			if current == nil {
				return noPreference(ctx, a)
			}
			return *current, nil
		},
		upsert: func(_ context.Context, u domain.PreferenceUpdate) (domain.UserPreference, error) {
			if written != nil {
				*written = u
			}
			id := u.ArchetypeID
			p := domain.UserPreference{Actor: u.Actor, ArchetypeID: &id, QuizCompleted: u.QuizCompleted, PersonalizationEnabled: true}
			if current != nil {
				p.PersonalizationEnabled = current.PersonalizationEnabled
			}
			if u.PersonalizationEnabled != nil {
				p.PersonalizationEnabled = *u.PersonalizationEnabled
			}
			return p, nil
		},
	}
}

func TestPreferenceService_Get_None(t *testing.T) {
	svc := service.NewPreferenceService(echoPreferences(nil, nil))

	got, err := svc.Get(context.Background(), domain.UserActor(uuid.New()))

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPreferenceService_Get_ResolvesArchetype(t *testing.T) {
	id := domain.Gastronome
	svc := service.NewPreferenceService(echoPreferences(&domain.UserPreference{ArchetypeID: &id}, nil))

	got, err := svc.Get(context.Background(), domain.UserActor(uuid.New()))

	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Archetype)
	assert.Equal(t, domain.Gastronome, got.Archetype.ID)
}

func TestPreferenceService_Set_Valid(t *testing.T) {
	svc := service.NewPreferenceService(echoPreferences(nil, nil))
	actor := domain.UserActor(uuid.New())

	got, err := svc.Set(context.Background(), actor, "beach_relaxer", nil)

	require.NoError(t, err)
	assert.Equal(t, actor, got.Actor)
	assert.False(t, got.QuizCompleted, "a manual pick is not a quiz result")
	assert.True(t, got.PersonalizationEnabled)
	require.NotNil(t, got.Archetype)
	assert.Equal(t, domain.BeachRelaxer, got.Archetype.ID)
}

func TestPreferenceService_Set_ExplicitToggle(t *testing.T) {
	var written domain.PreferenceUpdate
	svc := service.NewPreferenceService(echoPreferences(&domain.UserPreference{PersonalizationEnabled: true}, &written))
	off := false

	got, err := svc.Set(context.Background(), domain.UserActor(uuid.New()), "gastronome", &off)

	require.NoError(t, err)
	require.NotNil(t, written.PersonalizationEnabled)
	assert.False(t, *written.PersonalizationEnabled)
	assert.False(t, got.PersonalizationEnabled)
}

func TestPreferenceService_Set_OmittedToggleLeftToStore(t *testing.T) {
	var written domain.PreferenceUpdate
	// Get is never called: the store keeps the toggle in the same statement.
	prefs := echoPreferences(&domain.UserPreference{PersonalizationEnabled: false}, &written)
	prefs.get = nil
	svc := service.NewPreferenceService(prefs)

	got, err := svc.Set(context.Background(), domain.UserActor(uuid.New()), "gastronome", nil)

	require.NoError(t, err)
	assert.Nil(t, written.PersonalizationEnabled)
	assert.Equal(t, domain.Gastronome, written.ArchetypeID)
	assert.False(t, got.PersonalizationEnabled)
}

func TestPreferenceService_Set_InvalidArchetype(t *testing.T) {
	svc := service.NewPreferenceService(echoPreferences(nil, nil))

	_, err := svc.Set(context.Background(), domain.UserActor(uuid.New()), "space_cowboy", nil)

	assert.ErrorIs(t, err, domain.ErrInvalidArchetype)
}

func TestPreferenceService_Set_MissingArchetype(t *testing.T) {
	svc := service.NewPreferenceService(echoPreferences(nil, nil))

	_, err := svc.Set(context.Background(), domain.UserActor(uuid.New()), "", nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
