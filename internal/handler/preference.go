package handler

import (
	"net/http"
	"time"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/service"
)

type preferenceResponse struct {
	ArchetypeID            *domain.ArchetypeID `json:"archetype_id"`
	Archetype              *domain.Archetype   `json:"archetype"`
	QuizCompleted          bool                `json:"quiz_completed"`
	PersonalizationEnabled bool                `json:"personalization_enabled"`
	UpdatedAt              time.Time           `json:"updated_at"`
}

type preferencesEnvelope struct {
	Preferences *preferenceResponse `json:"preferences"`
}

// GetPreferences handles GET /api/user/preferences. A user who never chose
// an archetype gets {"preferences":null}.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	p, err := s.Preferences.Get(r.Context(), domain.UserActor(userID(r)))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesEnvelope{Preferences: preferenceToResponse(p)})
}

// SetPreferences handles POST /api/user/preferences.
func (s *Server) SetPreferences(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ArchetypeID            string `json:"archetype_id"`
		PersonalizationEnabled *bool  `json:"personalization_enabled"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	p, err := s.Preferences.Set(r.Context(), domain.UserActor(userID(r)), body.ArchetypeID, body.PersonalizationEnabled)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesEnvelope{Preferences: preferenceToResponse(p)})
}

func preferenceToResponse(p *service.Preference) *preferenceResponse {
	if p == nil {
		return nil
	}
	return &preferenceResponse{
		ArchetypeID:            p.ArchetypeID,
		Archetype:              p.Archetype,
		QuizCompleted:          p.QuizCompleted,
		PersonalizationEnabled: p.PersonalizationEnabled,
		UpdatedAt:              p.UpdatedAt,
	}
}
