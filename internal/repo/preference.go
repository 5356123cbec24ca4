package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/coupdetete/backend/internal/domain"
)

// PreferenceRepo defines the persistence operations for archetype preferences.
type PreferenceRepo interface {
	// Get returns the actor's preference or domain.ErrNotFound.
	Get(ctx context.Context, a domain.Actor) (domain.UserPreference, error)

	// Upsert writes the single live preference row for u.Actor.
	Upsert(ctx context.Context, u domain.PreferenceUpdate) (domain.UserPreference, error)
}

type pgPreferenceRepo struct {
	db db
}

// NewPreferenceRepo constructs a PreferenceRepo backed by the provided db connection.
func NewPreferenceRepo(db db) PreferenceRepo {
	return &pgPreferenceRepo{db: db}
}

const preferenceColumns = `id, actor_type, actor_id, archetype_id, quiz_completed, quiz_answers, personalization_enabled, created_at, updated_at`

func (r *pgPreferenceRepo) Get(ctx context.Context, a domain.Actor) (domain.UserPreference, error) {
	q := `SELECT ` + preferenceColumns + ` FROM user_preferences WHERE actor_type = @actor_type AND actor_id = @actor_id`

	got, err := scanPreference(r.db.QueryRow(ctx, q, pgx.NamedArgs{"actor_type": string(a.Kind), "actor_id": a.ID}))
	if err != nil {
		return domain.UserPreference{}, fmt.Errorf("repo.PreferenceRepo.Get: %w", err)
	}
	return got, nil
}

// Upsert relies on the (actor_type, actor_id) unique constraint so concurrent
// writes from the same actor never produce two rows. quiz_answers is kept
// when the new value is NULL, so a manual pick does not erase the last quiz.
// A NULL toggle keeps the stored one and defaults to true on insert.
func (r *pgPreferenceRepo) Upsert(ctx context.Context, u domain.PreferenceUpdate) (domain.UserPreference, error) {
	const q = `
		INSERT INTO user_preferences (actor_type, actor_id, archetype_id, quiz_completed, quiz_answers, personalization_enabled)
		VALUES (@actor_type, @actor_id, @archetype_id, @quiz_completed, @quiz_answers,
		        COALESCE(CAST(@personalization_enabled AS boolean), true))
		ON CONFLICT (actor_type, actor_id) DO UPDATE
		SET archetype_id            = EXCLUDED.archetype_id,
		    quiz_completed          = EXCLUDED.quiz_completed,
		    quiz_answers            = COALESCE(EXCLUDED.quiz_answers, user_preferences.quiz_answers),
		    personalization_enabled = COALESCE(CAST(@personalization_enabled AS boolean), user_preferences.personalization_enabled),
		    updated_at              = now()
		RETURNING ` + preferenceColumns

	var answers []byte
	if u.QuizAnswers != nil {
		b, err := json.Marshal(u.QuizAnswers)
		if err != nil {
			return domain.UserPreference{}, fmt.Errorf("repo.PreferenceRepo.Upsert: marshal answers: %w", err)
		}
		answers = b
	}
	args := pgx.NamedArgs{
		"actor_type":              string(u.Actor.Kind),
		"actor_id":                u.Actor.ID,
		"archetype_id":            string(u.ArchetypeID),
		"quiz_completed":          u.QuizCompleted,
		"quiz_answers":            answers,
		"personalization_enabled": u.PersonalizationEnabled,
	}
	got, err := scanPreference(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.UserPreference{}, fmt.Errorf("repo.PreferenceRepo.Upsert: %w", err)
	}
	return got, nil
}

func scanPreference(s scanner) (domain.UserPreference, error) {
	var (
		p         domain.UserPreference
		kind      string
		archetype *string
		answers   []byte
	)
	err := s.Scan(&p.ID, &kind, &p.Actor.ID, &archetype, &p.QuizCompleted, &answers,
		&p.PersonalizationEnabled, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.UserPreference{}, mapErr(err)
	}
	p.Actor.Kind = domain.ActorKind(kind)
	if archetype != nil {
		id := domain.ArchetypeID(*archetype)
		p.ArchetypeID = &id
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &p.QuizAnswers); err != nil {
			return domain.UserPreference{}, fmt.Errorf("decode quiz_answers: %w", err)
		}
	}
	return p, nil
}
