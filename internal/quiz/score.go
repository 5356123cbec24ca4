package quiz

import (
	"math"

	"github.com/coupdetete/backend/internal/domain"
)

// Score derives an archetype from quiz answers (question id → option id).
//
// Unknown question or option ids are skipped. The winner is the first
// archetype in domain.ArchetypeOrder with the strictly highest score; with no
// positive score the result is culture_seeker at confidence 0.
func Score(answers map[string]string) domain.QuizResult {
	totals := make(map[domain.ArchetypeID]int, len(domain.ArchetypeOrder))
	for _, id := range domain.ArchetypeOrder {
		totals[id] = 0
	}

	for questionID, optionID := range answers {
		opt, ok := findOption(questionID, optionID)
		if !ok {
			continue
		}
		for id, w := range opt.Scores {
			totals[id] += w
		}
	}

	winner, best, sum := domain.CultureSeeker, 0, 0
	for _, id := range domain.ArchetypeOrder {
		s := totals[id]
		sum += s
		if s > best {
			winner, best = id, s
		}
	}

	confidence := 0
	if sum > 0 {
		confidence = int(math.Round(float64(best) / float64(sum) * 100))
	}
	return domain.QuizResult{ArchetypeID: winner, Scores: totals, Confidence: confidence}
}

func findOption(questionID, optionID string) (domain.QuizOption, bool) {
	for _, q := range Questions {
		if q.ID != questionID {
			continue
		}
		for _, o := range q.Options {
			if o.ID == optionID {
				return o, true
			}
		}
		return domain.QuizOption{}, false
	}
	return domain.QuizOption{}, false
}
