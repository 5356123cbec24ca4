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
)

type leaderboardBody struct {
	Leaderboard []struct {
		Rank     int    `json:"rank"`
		UserType string `json:"user_type"`
		UserID   string `json:"user_id"`
		Username string `json:"username"`
		Points   int    `json:"points"`
	} `json:"leaderboard"`
	CurrentUser *struct {
		Rank   int    `json:"rank"`
		UserID string `json:"user_id"`
	} `json:"currentUser"`
	Period     string `json:"period"`
	Pagination struct {
		Total   int  `json:"total"`
		Limit   int  `json:"limit"`
		Offset  int  `json:"offset"`
		HasMore bool `json:"hasMore"`
	} `json:"pagination"`
}

// ---- GET /api/leaderboard --------------------------------------------------

func TestGetLeaderboard_200_Defaults(t *testing.T) {
	alice := domain.UserActor(uuid.New())
	var gotPeriod domain.Period
	var gotPage domain.PageParams
	var gotActor *domain.Actor
	h := newHTTPHandler(handler.Deps{Leaderboard: &mockLeaderboard{
		get: func(_ context.Context, period domain.Period, page domain.PageParams, actor *domain.Actor) (domain.Leaderboard, error) {
			gotPeriod, gotPage, gotActor = period, page, actor
			entry := domain.LeaderboardEntry{Rank: 1, Profile: domain.Profile{Actor: alice, Username: "alice"}, Points: 120, TotalSpins: 4}
			return domain.Leaderboard{
				Entries: []domain.LeaderboardEntry{entry},
				Period:  period,
				Total:   1,
				Limit:   page.Limit,
				Offset:  page.Offset,
			}, nil
		},
	}})

	rec := do(t, h, http.MethodGet, "/api/leaderboard", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PeriodAllTime, gotPeriod)
	assert.Equal(t, domain.PageParams{Limit: 50, Offset: 0}, gotPage)
	assert.Nil(t, gotActor)

	resp := decode[leaderboardBody](t, rec)
	require.Len(t, resp.Leaderboard, 1)
	assert.Equal(t, "user", resp.Leaderboard[0].UserType)
	assert.Equal(t, alice.ID.String(), resp.Leaderboard[0].UserID)
	assert.Equal(t, 120, resp.Leaderboard[0].Points)
	assert.Nil(t, resp.CurrentUser)
	assert.Equal(t, "all-time", resp.Period)
	assert.Equal(t, 50, resp.Pagination.Limit)
	assert.False(t, resp.Pagination.HasMore)
}

func TestGetLeaderboard_200_QueryAndCurrentUser(t *testing.T) {
	userID := uuid.New()
	var gotPeriod domain.Period
	var gotPage domain.PageParams
	var gotActor *domain.Actor
	h := newHTTPHandler(handler.Deps{Leaderboard: &mockLeaderboard{
		get: func(_ context.Context, period domain.Period, page domain.PageParams, actor *domain.Actor) (domain.Leaderboard, error) {
			gotPeriod, gotPage, gotActor = period, page, actor
			me := domain.LeaderboardEntry{Rank: 7, Profile: domain.Profile{Actor: *actor, Username: "me"}, Points: 10}
			return domain.Leaderboard{
				Entries:     []domain.LeaderboardEntry{},
				CurrentUser: &me,
				Period:      period,
				Total:       30,
				Limit:       page.Limit,
				Offset:      page.Offset,
				HasMore:     true,
			}, nil
		},
	}})

	rec := do(t, h, http.MethodGet, "/api/leaderboard?period=weekly&limit=500&offset=10", nil, bearer(t, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PeriodWeekly, gotPeriod)
	assert.Equal(t, domain.PageParams{Limit: 100, Offset: 10}, gotPage)
	require.NotNil(t, gotActor)
	assert.Equal(t, domain.UserActor(userID), *gotActor)

	resp := decode[leaderboardBody](t, rec)
	assert.NotNil(t, resp.Leaderboard)
	require.NotNil(t, resp.CurrentUser)
	assert.Equal(t, 7, resp.CurrentUser.Rank)
	assert.True(t, resp.Pagination.HasMore)
}

func TestGetLeaderboard_400_UnknownPeriod(t *testing.T) {
	h := newHTTPHandler(handler.Deps{Leaderboard: &mockLeaderboard{
		get: func(_ context.Context, period domain.Period, _ domain.PageParams, _ *domain.Actor) (domain.Leaderboard, error) {
			return domain.Leaderboard{}, fmt.Errorf("service.LeaderboardService.Get: %w: unknown period %q", domain.ErrValidation, period)
		},
	}})

	rec := do(t, h, http.MethodGet, "/api/leaderboard?period=daily", nil, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, `unknown period "daily"`, resp.Error.Message)
}

func TestGetLeaderboard_400_MalformedLimit(t *testing.T) {
	h := newHTTPHandler(handler.Deps{Leaderboard: &mockLeaderboard{}})

	rec := do(t, h, http.MethodGet, "/api/leaderboard?limit=lots", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLeaderboard_500_HidesInternals(t *testing.T) {
	h := newHTTPHandler(handler.Deps{Leaderboard: &mockLeaderboard{
		get: func(context.Context, domain.Period, domain.PageParams, *domain.Actor) (domain.Leaderboard, error) {
			return domain.Leaderboard{}, fmt.Errorf("repo.UserRepo.ListPoints: connection reset")
		},
	}})

	rec := do(t, h, http.MethodGet, "/api/leaderboard", nil, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, "internal_error", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection reset")
}
