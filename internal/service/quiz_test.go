package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/service"
)

var royalAnswers = map[string]string{
	"q1": "q1_a", "q2": "q2_a", "q3": "q3_a",
	"q4": "q4_a", "q5": "q5_a", "q6": "q6_a",
}

func TestQuizService_Submit_Anonymous(t *testing.T) {
	// No repo calls expected: a nil func field would panic.
	svc := service.NewQuizService(&mockPreferenceRepo{}, discardLogger())

	got, err := svc.Submit(context.Background(), nil, royalAnswers)

	require.NoError(t, err)
	assert.Equal(t, domain.RoyalElegance, got.ArchetypeID)
	assert.Equal(t, domain.RoyalElegance, got.Archetype.ID)
	assert.NotEmpty(t, got.Archetype.NameFR)
}

func TestQuizService_Submit_SavesPreference(t *testing.T) {
	var saved domain.PreferenceUpdate
	prefs := &mockPreferenceRepo{
		upsert: func(_ context.Context, u domain.PreferenceUpdate) (domain.UserPreference, error) {
			saved = u
			return domain.UserPreference{Actor: u.Actor}, nil
		},
	}
	svc := service.NewQuizService(prefs, discardLogger())
	actor := domain.GuestActor(uuid.New())

	_, err := svc.Submit(context.Background(), &actor, royalAnswers)

	require.NoError(t, err)
	assert.Equal(t, actor, saved.Actor)
	assert.Equal(t, domain.RoyalElegance, saved.ArchetypeID)
	assert.True(t, saved.QuizCompleted)
	assert.Nil(t, saved.PersonalizationEnabled, "the stored toggle is left to the upsert")
	assert.Equal(t, royalAnswers, saved.QuizAnswers)
}

func TestQuizService_Submit_SaveFailureStillScores(t *testing.T) {
	prefs := &mockPreferenceRepo{
		upsert: func(context.Context, domain.PreferenceUpdate) (domain.UserPreference, error) {
			return domain.UserPreference{}, errors.New("db down")
		},
	}
	svc := service.NewQuizService(prefs, discardLogger())
	actor := domain.UserActor(uuid.New())

	got, err := svc.Submit(context.Background(), &actor, royalAnswers)

	require.NoError(t, err)
	assert.Equal(t, domain.RoyalElegance, got.ArchetypeID)
}

func TestQuizService_Submit_NilAnswers(t *testing.T) {
	svc := service.NewQuizService(&mockPreferenceRepo{}, discardLogger())

	_, err := svc.Submit(context.Background(), nil, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQuizService_Questions(t *testing.T) {
	svc := service.NewQuizService(&mockPreferenceRepo{}, discardLogger())
	assert.Len(t, svc.Questions(), 6)
}
