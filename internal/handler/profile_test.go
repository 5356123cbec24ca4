package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/handler"
	"github.com/coupdetete/backend/internal/service"
)

// ---- PUT /api/me -----------------------------------------------------------

func TestUpdateMe_200(t *testing.T) {
	userID := uuid.New()
	var gotID uuid.UUID
	var gotIn service.ProfileUpdate
	h := newHTTPHandler(handler.Deps{Profiles: &mockProfiles{
		update: func(_ context.Context, id uuid.UUID, in service.ProfileUpdate) (domain.User, error) {
			gotID, gotIn = id, in
			return domain.User{ID: id, Email: in.Email, Username: in.Username, DisplayName: in.DisplayName, Tier: domain.TierFree}, nil
		},
	}})

	rec := do(t, h, http.MethodPut, "/api/me", map[string]any{
		"email":        "lea@example.com",
		"username":     "lea",
		"display_name": "Léa",
	}, bearer(t, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "lea@example.com", gotIn.Email)
	require.NotNil(t, gotIn.DisplayName)
	assert.Equal(t, "Léa", *gotIn.DisplayName)
	assert.Nil(t, gotIn.AvatarURL)

	resp := decode[struct {
		Username string `json:"username"`
		Tier     string `json:"tier"`
	}](t, rec)
	assert.Equal(t, "lea", resp.Username)
	assert.Equal(t, "free", resp.Tier)
}

func TestUpdateMe_401(t *testing.T) {
	h := newHTTPHandler(handler.Deps{Profiles: &mockProfiles{}})

	rec := do(t, h, http.MethodPut, "/api/me", map[string]any{"email": "a@b.c", "username": "abc"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateMe_400_BadEmail(t *testing.T) {
	h := newHTTPHandler(handler.Deps{Profiles: &mockProfiles{
		update: func(context.Context, uuid.UUID, service.ProfileUpdate) (domain.User, error) {
			return domain.User{}, fmt.Errorf("service.ProfileService.Update: %w: invalid email", domain.ErrValidation)
		},
	}})

	rec := do(t, h, http.MethodPut, "/api/me", map[string]any{"email": "nope", "username": "lea"}, bearer(t, uuid.New()))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid email", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestUpdateMe_409_RepoConflict(t *testing.T) {
	h := newHTTPHandler(handler.Deps{Profiles: &mockProfiles{
		update: func(context.Context, uuid.UUID, service.ProfileUpdate) (domain.User, error) {
			return domain.User{}, fmt.Errorf("service.ProfileService.Update: %w", domain.ErrConflict)
		},
	}})

	rec := do(t, h, http.MethodPut, "/api/me", map[string]any{"email": "lea@example.com", "username": "lea"}, bearer(t, uuid.New()))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already exists", decode[handler.ErrorResponse](t, rec).Error.Message)
}

// ---- GET /api/me/stats -----------------------------------------------------

func TestGetStats_200_Guest(t *testing.T) {
	guestID := uuid.New()
	var got domain.Actor
	h := newHTTPHandler(handler.Deps{Profiles: &mockProfiles{
		stats: func(_ context.Context, actor *domain.Actor) (domain.UserStats, error) {
			got = *actor
			return domain.UserStats{
				Profile:    domain.Profile{Actor: *actor, Username: "voyageur"},
				Points:     64,
				TotalSpins: 5,
				Rank:       2,
			}, nil
		},
	}})

	rec := do(t, h, http.MethodGet, "/api/me/stats", nil, map[string]string{handler.GuestHeader: guestID.String()})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.GuestActor(guestID), got)
	assert.JSONEq(t, `{"username":"voyageur","points":64,"total_spins":5,"rank":2,"recent_spins":[]}`, rec.Body.String())
}

func TestGetStats_UserWinsOverGuestHeader(t *testing.T) {
	userID := uuid.New()
	var got domain.Actor
	h := newHTTPHandler(handler.Deps{Profiles: &mockProfiles{
		stats: func(_ context.Context, actor *domain.Actor) (domain.UserStats, error) {
			got = *actor
			return domain.UserStats{Profile: domain.Profile{Actor: *actor}}, nil
		},
	}})

	headers := bearer(t, userID)
	headers[handler.GuestHeader] = uuid.NewString()
	rec := do(t, h, http.MethodGet, "/api/me/stats", nil, headers)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.UserActor(userID), got)
}

func TestGetStats_401(t *testing.T) {
	h := newHTTPHandler(handler.Deps{Profiles: &mockProfiles{
		stats: func(_ context.Context, actor *domain.Actor) (domain.UserStats, error) {
			if actor != nil {
				return domain.UserStats{}, fmt.Errorf("unexpected actor %v", *actor)
			}
			return domain.UserStats{}, fmt.Errorf("service.ProfileService.Stats: %w", domain.ErrUnauthorized)
		},
	}})

	for name, headers := range map[string]map[string]string{
		"anonymous":       nil,
		"malformed guest": {handler.GuestHeader: "not-a-uuid"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/me/stats", nil, headers)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
