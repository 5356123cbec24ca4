package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/coupdetete/backend/internal/domain"
)

type leaderboardEntryResponse struct {
	Rank        int              `json:"rank"`
	UserType    domain.ActorKind `json:"user_type"`
	UserID      uuid.UUID        `json:"user_id"`
	Username    string           `json:"username"`
	DisplayName *string          `json:"display_name"`
	AvatarURL   *string          `json:"avatar_url"`
	Points      int              `json:"points"`
	TotalSpins  int              `json:"total_spins"`
}

type paginationResponse struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

type leaderboardResponse struct {
	Leaderboard []leaderboardEntryResponse `json:"leaderboard"`
	CurrentUser *leaderboardEntryResponse  `json:"currentUser"`
	Period      domain.Period              `json:"period"`
	Pagination  paginationResponse         `json:"pagination"`
}

// GetLeaderboard handles GET /api/leaderboard.
// Supports ?limit= (default 50, max 100), ?offset= and ?period=
// (weekly, monthly or all-time; default all-time).
func (s *Server) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	var (
		limit, offset *int
		period        *string
	)
	if !queryParam(w, r, "limit", &limit) || !queryParam(w, r, "offset", &offset) || !queryParam(w, r, "period", &period) {
		return
	}
	p := domain.PeriodAllTime
	if period != nil && *period != "" {
		p = domain.Period(*period)
	}

	lb, err := s.Leaderboard.Get(r.Context(), p, domain.NewPageParams(limit, offset), ActorFrom(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := leaderboardResponse{
		Leaderboard: make([]leaderboardEntryResponse, len(lb.Entries)),
		Period:      lb.Period,
		Pagination:  paginationResponse{Total: lb.Total, Limit: lb.Limit, Offset: lb.Offset, HasMore: lb.HasMore},
	}
	for i, e := range lb.Entries {
		resp.Leaderboard[i] = entryToResponse(e)
	}
	if lb.CurrentUser != nil {
		cu := entryToResponse(*lb.CurrentUser)
		resp.CurrentUser = &cu
	}
	writeJSON(w, http.StatusOK, resp)
}

func entryToResponse(e domain.LeaderboardEntry) leaderboardEntryResponse {
	return leaderboardEntryResponse{
		Rank:        e.Rank,
		UserType:    e.Profile.Actor.Kind,
		UserID:      e.Profile.Actor.ID,
		Username:    e.Profile.Username,
		DisplayName: e.Profile.DisplayName,
		AvatarURL:   e.Profile.AvatarURL,
		Points:      e.Points,
		TotalSpins:  e.TotalSpins,
	}
}
