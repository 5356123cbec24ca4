// Package catalog serves the bundled, read-only destination catalog.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/coupdetete/backend/internal/domain"
	"github.com/coupdetete/backend/internal/roll"
)

//go:embed data/destinations.json
var dataFS embed.FS

// Store holds the parsed catalog. It is immutable after Load and safe for
// concurrent use.
type Store struct {
	all    []domain.Destination
	byCity map[string][]int
	keys   []string // folded "city tagline" per entry, for search
}

// Load parses the embedded catalog.
func Load() (*Store, error) {
	raw, err := dataFS.ReadFile("data/destinations.json")
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: read: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Store from a JSON array of destinations and validates every entry.
func Parse(raw []byte) (*Store, error) {
	var all []domain.Destination
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}
	if len(all) == 0 {
		return nil, errors.New("catalog.Parse: catalog is empty")
	}

	s := &Store{
		all:    all,
		byCity: make(map[string][]int, len(all)),
		keys:   make([]string, len(all)),
	}
	var errs []error
	for i, d := range all {
		if err := validate(d); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i, d.City, err))
			continue
		}
		s.byCity[fold(d.City)] = append(s.byCity[fold(d.City)], i)
		s.keys[i] = fold(d.City + " " + d.Tagline)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog.Parse: %w", errors.Join(errs...))
	}
	return s, nil
}

func validate(d domain.Destination) error {
	switch {
	case strings.TrimSpace(d.City) == "":
		return errors.New("city is required")
	case !d.Departure.Valid():
		return fmt.Errorf("unknown departure %q", d.Departure)
	case d.TravelTimeMinutes <= 0:
		return errors.New("travel_time_minutes must be positive")
	case !d.PriceEuros.IsPositive():
		return errors.New("typical_price_euros must be positive")
	case len(d.Activities) == 0:
		return errors.New("at least one activity is required")
	}
	return nil
}

// All returns every destination in catalog order. The slice must not be modified.
func (s *Store) All() []domain.Destination { return s.all }

// Len returns the number of destinations.
func (s *Store) Len() int { return len(s.all) }

// Filter applies f to the whole catalog.
func (s *Store) Filter(f roll.BaseFilter) []roll.Candidate { return f.Apply(s.all) }

// ByCity returns every entry for city, one per departure it is reachable from.
// Matching ignores case and accents.
func (s *Store) ByCity(city string) []domain.Destination {
	idx := s.byCity[fold(city)]
	out := make([]domain.Destination, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.all[i])
	}
	return out
}

// Search fuzzy-matches query against city and tagline, best match first.
// An empty departure searches both departures. A non-positive limit means 10.
func (s *Store) Search(query string, departure domain.Departure, limit int) []domain.Destination {
	if limit <= 0 {
		limit = 10
	}
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return []domain.Destination{}
	}
	matches := fuzzy.FindFrom(q, searchKeys(s.keys))

	out := make([]domain.Destination, 0, min(len(matches), limit))
	for _, m := range matches {
		d := s.all[m.Index]
		if departure != "" && d.Departure != departure {
			continue
		}
		out = append(out, d)
		if len(out) == limit {
			break
		}
	}
	return out
}

// searchKeys implements fuzzy.Source.
type searchKeys []string

func (k searchKeys) Len() int            { return len(k) }
func (k searchKeys) String(i int) string { return k[i] }

// fold lowercases s and strips diacritics so "evreux" finds "Évreux".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
