package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/service"
)

type userResponse struct {
	ID          uuid.UUID   `json:"id"`
	Email       string      `json:"email"`
	Username    string      `json:"username"`
	DisplayName *string     `json:"display_name"`
	AvatarURL   *string     `json:"avatar_url"`
	Points      int         `json:"points"`
	TotalSpins  int         `json:"total_spins"`
	Tier        domain.Tier `json:"tier"`
}

type statsResponse struct {
	Username    string        `json:"username"`
	Points      int           `json:"points"`
	TotalSpins  int           `json:"total_spins"`
	Rank        int           `json:"rank"`
	RecentSpins []domain.Spin `json:"recent_spins"`
}

// UpdateMe handles PUT /api/me.
func (s *Server) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string  `json:"email"`
		Username    string  `json:"username"`
		DisplayName *string `json:"display_name"`
		AvatarURL   *string `json:"avatar_url"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	u, err := s.Profiles.Update(r.Context(), userID(r), service.ProfileUpdate{
		Email:       body.Email,
		Username:    body.Username,
		DisplayName: body.DisplayName,
		AvatarURL:   body.AvatarURL,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Points:      u.Points,
		TotalSpins:  u.TotalSpins,
		Tier:        u.Tier,
	})
}

// GetStats handles GET /api/me/stats for a user or a guest.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Profiles.Stats(r.Context(), ActorFrom(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	recent := st.RecentSpins
	if recent == nil {
		recent = []domain.Spin{}
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Username:    st.Profile.Username,
		Points:      st.Points,
		TotalSpins:  st.TotalSpins,
		Rank:        st.Rank,
		RecentSpins: recent,
	})
}
