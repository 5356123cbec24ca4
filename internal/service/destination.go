package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/quiz"
	"github.com/coupdetete/backend/internal/repo"
	"github.com/coupdetete/backend/internal/roll"
)

// mappingCacheSize holds every archetype with room to spare.
const mappingCacheSize = 16

// DestinationCatalog is the read-only destination list.
type DestinationCatalog interface {
	All() []domain.Destination
	Search(query string, departure domain.Departure, limit int) []domain.Destination
}

// DestinationList is a filtered, possibly personalized destination list.
type DestinationList struct {
	Destinations []roll.Candidate
	Outcome      roll.Outcome
	ArchetypeID  *domain.ArchetypeID
	Premium      bool
}

// DestinationPick is one randomly selected destination.
type DestinationPick struct {
	roll.Selection
	ArchetypeID *domain.ArchetypeID
	Premium     bool
}

// ArchetypeSummary is an archetype with the number of mapped destinations.
type ArchetypeSummary struct {
	domain.Archetype
	DestinationCount int
}

// DestinationService filters, personalizes and picks destinations.
type DestinationService struct {
	catalog  DestinationCatalog
	users    repo.UserRepo
	subs     repo.SubscriptionRepo
	prefs    repo.PreferenceRepo
	mappings repo.MappingRepo
	rng      roll.RNG
	now      func() time.Time
	log      *slog.Logger

	// archetype id -> map[city]relevance
	cache *lru.Cache
}

// NewDestinationService constructs a DestinationService.
func NewDestinationService(
	catalog DestinationCatalog,
	users repo.UserRepo,
	subs repo.SubscriptionRepo,
	prefs repo.PreferenceRepo,
	mappings repo.MappingRepo,
	rng roll.RNG,
	now func() time.Time,
	log *slog.Logger,
) (*DestinationService, error) {
	cache, err := lru.New(mappingCacheSize)
	if err != nil {
		return nil, fmt.Errorf("service.NewDestinationService: %w", err)
	}
	return &DestinationService{
		catalog:  catalog,
		users:    users,
		subs:     subs,
		prefs:    prefs,
		mappings: mappings,
		rng:      rng,
		now:      now,
		log:      log,
		cache:    cache,
	}, nil
}

// Personalized returns every destination matching f. Premium actors with an
// archetype and personalization on get the archetype's destinations ranked
// by relevance; everyone else gets the base list at the default relevance.
func (s *DestinationService) Personalized(ctx context.Context, actor *domain.Actor, f roll.BaseFilter) (DestinationList, error) {
	if err := validateFilter(f); err != nil {
		return DestinationList{}, fmt.Errorf("service.DestinationService.Personalized: %w", err)
	}
	p, err := s.profile(ctx, actor)
	if err != nil {
		return DestinationList{}, fmt.Errorf("service.DestinationService.Personalized: %w", err)
	}

	cs, outcome := roll.DefaultPipeline.Run(p, f.Apply(s.catalog.All()))
	return DestinationList{
		Destinations: cs,
		Outcome:      outcome,
		ArchetypeID:  p.Archetype,
		Premium:      p.Premium,
	}, nil
}

// Random picks one destination matching f, avoiding the cities in recent
// when enough alternatives exist. Returns domain.ErrNoCandidates when
// nothing matches.
func (s *DestinationService) Random(ctx context.Context, actor *domain.Actor, f roll.BaseFilter, recent roll.Window) (DestinationPick, error) {
	if err := validateFilter(f); err != nil {
		return DestinationPick{}, fmt.Errorf("service.DestinationService.Random: %w", err)
	}
	p, err := s.profile(ctx, actor)
	if err != nil {
		return DestinationPick{}, fmt.Errorf("service.DestinationService.Random: %w", err)
	}

	sel, err := roll.Select(s.catalog.All(), f, p, recent, s.rng)
	if err != nil {
		return DestinationPick{}, fmt.Errorf("service.DestinationService.Random: %w", err)
	}
	return DestinationPick{Selection: sel, ArchetypeID: p.Archetype, Premium: p.Premium}, nil
}

// Search fuzzy-matches cities for the city picker.
func (s *DestinationService) Search(query string, departure domain.Departure, limit int) []domain.Destination {
	return s.catalog.Search(query, departure, limit)
}

// Archetypes lists the archetypes in canonical order with their mapped
// destination counts.
func (s *DestinationService) Archetypes(ctx context.Context) ([]ArchetypeSummary, error) {
	counts, err := s.mappings.CountByArchetype(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Archetypes: %w", err)
	}
	out := make([]ArchetypeSummary, 0, len(quiz.Archetypes))
	for _, a := range quiz.Archetypes {
		out = append(out, ArchetypeSummary{Archetype: a, DestinationCount: counts[a.ID]})
	}
	return out, nil
}

func validateFilter(f roll.BaseFilter) error {
	if !f.Departure.Valid() {
		return fmt.Errorf("%w: unknown departure %q", domain.ErrValidation, f.Departure)
	}
	if f.MaxTravelMinutes <= 0 {
		return fmt.Errorf("%w: max_time must be positive", domain.ErrValidation)
	}
	if !f.MaxBudgetEuros.IsPositive() {
		return fmt.Errorf("%w: max_budget must be positive", domain.ErrValidation)
	}
	return nil
}

// profile gathers what the personalization pipeline needs for actor.
// Anonymous callers and guests are never premium.
func (s *DestinationService) profile(ctx context.Context, actor *domain.Actor) (roll.Profile, error) {
	var p roll.Profile
	if actor == nil {
		return p, nil
	}

	if !actor.IsGuest() {
		premium, err := s.premium(ctx, actor.ID)
		if err != nil {
			return p, err
		}
		p.Premium = premium
	}

	pref, err := s.prefs.Get(ctx, *actor)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		p.PersonalizationEnabled = true
		return p, nil
	case err != nil:
		return p, err
	}
	p.PersonalizationEnabled = pref.PersonalizationEnabled
	p.Archetype = pref.ArchetypeID

	if p.Premium && p.PersonalizationEnabled && p.Archetype != nil {
		m, err := s.mappingsFor(ctx, *p.Archetype)
		if err != nil {
			return p, err
		}
		p.Mappings = m
	}
	return p, nil
}

func (s *DestinationService) premium(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var sub *domain.Subscription
	got, err := s.subs.GetByUser(ctx, userID)
	switch {
	case err == nil:
		sub = &got
	case !errors.Is(err, domain.ErrNotFound):
		return false, err
	}
	return domain.IsPremium(user.Tier, sub, s.now()), nil
}

func (s *DestinationService) mappingsFor(ctx context.Context, id domain.ArchetypeID) (map[string]int, error) {
	if v, ok := s.cache.Get(id); ok {
		return v.(map[string]int), nil
	}

	rows, err := s.mappings.ListByArchetype(ctx, id)
	if err != nil {
		return nil, err
	}
	m := make(map[string]int, len(rows))
	for _, r := range rows {
		m[r.City] = r.Relevance
	}
	s.cache.Add(id, m)
	s.log.DebugContext(ctx, "archetype mappings cached", "archetype", id, "cities", len(m))
	return m, nil
}
