package handler

import (
	"encoding/json"
	"net/http"

	"github.com/coupdetete/backend/internal/domain"
)

type quizOptionResponse struct {
	ID      string `json:"id"`
	LabelFR string `json:"label_fr"`
	LabelEN string `json:"label_en"`
}

type quizQuestionResponse struct {
	ID         string               `json:"id"`
	QuestionFR string               `json:"question_fr"`
	QuestionEN string               `json:"question_en"`
	Options    []quizOptionResponse `json:"options"`
}

type quizResultResponse struct {
	ArchetypeID domain.ArchetypeID         `json:"archetype_id"`
	Archetype   domain.Archetype           `json:"archetype"`
	Confidence  int                        `json:"confidence"`
	Scores      map[domain.ArchetypeID]int `json:"scores"`
}

type archetypeResponse struct {
	domain.Archetype
	DestinationCount int `json:"destination_count"`
}

// GetQuiz handles GET /api/archetypes/quiz. Option weights stay server-side.
func (s *Server) GetQuiz(w http.ResponseWriter, _ *http.Request) {
	questions := s.Quiz.Questions()
	out := make([]quizQuestionResponse, len(questions))
	for i, q := range questions {
		opts := make([]quizOptionResponse, len(q.Options))
		for j, o := range q.Options {
			opts[j] = quizOptionResponse{ID: o.ID, LabelFR: o.LabelFR, LabelEN: o.LabelEN}
		}
		out[i] = quizQuestionResponse{ID: q.ID, QuestionFR: q.QuestionFR, QuestionEN: q.QuestionEN, Options: opts}
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": out})
}

// SubmitQuiz handles POST /api/archetypes/quiz.
func (s *Server) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Answers json.RawMessage `json:"answers"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	var answers map[string]string
	if len(body.Answers) == 0 || json.Unmarshal(body.Answers, &answers) != nil || answers == nil {
		badRequest(w, "answers must be an object of question id to option id")
		return
	}

	res, err := s.Quiz.Submit(r.Context(), ActorFrom(r), answers)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResultResponse{
		ArchetypeID: res.ArchetypeID,
		Archetype:   res.Archetype,
		Confidence:  res.Confidence,
		Scores:      res.Scores,
	})
}

// ListArchetypes handles GET /api/archetypes.
func (s *Server) ListArchetypes(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.Destinations.Archetypes(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]archetypeResponse, len(summaries))
	for i, a := range summaries {
		out[i] = archetypeResponse{Archetype: a.Archetype, DestinationCount: a.DestinationCount}
	}
	writeJSON(w, http.StatusOK, map[string]any{"archetypes": out})
}
