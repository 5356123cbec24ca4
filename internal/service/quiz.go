package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/quiz"
	"github.com/coupdetete/backend/internal/repo"
)

// QuizResult is a scored quiz with the winning archetype's details.
type QuizResult struct {
	domain.QuizResult
	Archetype domain.Archetype
}

// QuizService scores quiz submissions and remembers the outcome.
type QuizService struct {
	prefs repo.PreferenceRepo
	log   *slog.Logger
}

// NewQuizService constructs a QuizService.
func NewQuizService(prefs repo.PreferenceRepo, log *slog.Logger) *QuizService {
	return &QuizService{prefs: prefs, log: log}
}

// Questions returns the quiz in display order.
func (s *QuizService) Questions() []domain.QuizQuestion {
	return quiz.Questions
}

// Submit scores answers. When actor is non-nil the winning archetype is
// saved as their preference with quiz_completed set. A failed save is
// logged and does not fail the submission.
func (s *QuizService) Submit(ctx context.Context, actor *domain.Actor, answers map[string]string) (QuizResult, error) {
	if answers == nil {
		return QuizResult{}, fmt.Errorf("service.QuizService.Submit: %w: answers are required", domain.ErrValidation)
	}

	scored := quiz.Score(answers)
	archetype, _ := quiz.Lookup(scored.ArchetypeID)
	result := QuizResult{QuizResult: scored, Archetype: archetype}

	if actor == nil {
		return result, nil
	}

	id := scored.ArchetypeID
	_, err := s.prefs.Upsert(ctx, domain.PreferenceUpdate{
		Actor:         *actor,
		ArchetypeID:   id,
		QuizCompleted: true,
		QuizAnswers:   answers,
	})
	if err != nil {
		s.log.WarnContext(ctx, "quiz preference not saved", "actor_id", actor.ID, "error", err)
		return result, nil
	}

	s.log.InfoContext(ctx, "quiz completed",
		"actor_kind", actor.Kind,
		"actor_id", actor.ID,
		"archetype", id,
		"confidence", scored.Confidence,
	)
	return result, nil
}

