package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/coupdetete/backend/internal/domain"
)

// MappingRepo reads the destination → archetype relevance table.
type MappingRepo interface {
	// ListByArchetype returns every mapped city for the archetype, most relevant first.
	ListByArchetype(ctx context.Context, id domain.ArchetypeID) ([]domain.DestinationMapping, error)

	// CountByArchetype returns the number of mapped cities per archetype.
	// Archetypes with no mapping are absent from the map.
	CountByArchetype(ctx context.Context) (map[domain.ArchetypeID]int, error)
}

type pgMappingRepo struct {
	db db
}

// NewMappingRepo constructs a MappingRepo backed by the provided db connection.
func NewMappingRepo(db db) MappingRepo {
	return &pgMappingRepo{db: db}
}

func (r *pgMappingRepo) ListByArchetype(ctx context.Context, id domain.ArchetypeID) ([]domain.DestinationMapping, error) {
	const q = `
		SELECT destination_city, archetype_id, relevance_score
		FROM destination_archetypes
		WHERE archetype_id = @archetype_id
		ORDER BY relevance_score DESC, destination_city`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"archetype_id": string(id)})
	if err != nil {
		return nil, fmt.Errorf("repo.MappingRepo.ListByArchetype: %w", err)
	}
	defer rows.Close()

	out := []domain.DestinationMapping{}
	for rows.Next() {
		var (
			m         domain.DestinationMapping
			archetype string
		)
		if err := rows.Scan(&m.City, &archetype, &m.Relevance); err != nil {
			return nil, fmt.Errorf("repo.MappingRepo.ListByArchetype: scan: %w", err)
		}
		m.ArchetypeID = domain.ArchetypeID(archetype)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MappingRepo.ListByArchetype: rows: %w", err)
	}
	return out, nil
}

func (r *pgMappingRepo) CountByArchetype(ctx context.Context) (map[domain.ArchetypeID]int, error) {
	const q = `SELECT archetype_id, count(*) FROM destination_archetypes GROUP BY archetype_id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.MappingRepo.CountByArchetype: %w", err)
	}
	defer rows.Close()

	out := map[domain.ArchetypeID]int{}
	for rows.Next() {
		var (
			archetype string
			n         int
		)
		if err := rows.Scan(&archetype, &n); err != nil {
			return nil, fmt.Errorf("repo.MappingRepo.CountByArchetype: scan: %w", err)
		}
		out[domain.ArchetypeID(archetype)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MappingRepo.CountByArchetype: rows: %w", err)
	}
	return out, nil
}
