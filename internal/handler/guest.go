package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coupdetete/backend/internal/domain"
)

type guestResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	Points      int       `json:"points"`
	TotalSpins  int       `json:"total_spins"`
	CreatedAt   time.Time `json:"created_at"`
}

type guestRankResponse struct {
	Rank       int `json:"rank"`
	Points     int `json:"points"`
	TotalSpins int `json:"total_spins"`
}

// CreateGuest handles POST /api/guests.
func (s *Server) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username          string  `json:"username"`
		DeviceFingerprint *string `json:"device_fingerprint"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	g, err := s.Guests.Create(r.Context(), body.Username, body.DeviceFingerprint)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, guestToResponse(g))
}

// GetGuest handles GET /api/guests/{id}.
func (s *Server) GetGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := guestIDParam(w, r)
	if !ok {
		return
	}
	g, err := s.Guests.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guestToResponse(g))
}

// GetGuestRank handles GET /api/guests/{id}/rank.
func (s *Server) GetGuestRank(w http.ResponseWriter, r *http.Request) {
	id, ok := guestIDParam(w, r)
	if !ok {
		return
	}
	gr, err := s.Guests.Rank(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guestRankResponse{Rank: gr.Rank, Points: gr.Guest.Points, TotalSpins: gr.Guest.TotalSpins})
}

func guestIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "guest id must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

func guestToResponse(g domain.GuestUser) guestResponse {
	return guestResponse{
		ID:          g.ID,
		Username:    g.Username,
		DisplayName: g.DisplayName,
		AvatarURL:   g.AvatarURL,
		Points:      g.Points,
		TotalSpins:  g.TotalSpins,
		CreatedAt:   g.CreatedAt,
	}
}
