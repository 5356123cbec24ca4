package roll

import (
	"math/rand/v2"
	"slices"

	"github.com/coupdetete/backend/internal/domain"
)

const (
	// MinAlternatives is the number of non-recent candidates needed before
	// recent cities are excluded.
	MinAlternatives = 4
	// WindowSize is how many recent cities a session remembers.
	WindowSize = 3
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	Intn(n int) int
}

type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

// DefaultRNG draws from the math/rand/v2 global source.
var DefaultRNG RNG = stdRNG{}

// Window is the recently picked cities, most recent first.
type Window []string

// Push returns a new window with city prepended, truncated to WindowSize.
func (w Window) Push(city string) Window {
	out := make(Window, 0, WindowSize)
	out = append(out, city)
	for _, c := range w {
		if len(out) == WindowSize {
			break
		}
		out = append(out, c)
	}
	return out
}

// ExcludeRecent drops candidates whose city is in the window, but only when
// at least MinAlternatives candidates would remain. Otherwise cs is returned.
func ExcludeRecent(cs []Candidate, w Window) []Candidate {
	if len(w) == 0 {
		return cs
	}
	rest := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		if !slices.Contains(w, c.City) {
			rest = append(rest, c)
		}
	}
	if len(rest) >= MinAlternatives {
		return rest
	}
	return cs
}

// Pick applies the recency exclusion and picks one candidate uniformly.
// It returns domain.ErrNoCandidates when cs is empty.
func Pick(cs []Candidate, w Window, rng RNG) (Candidate, Window, error) {
	if len(cs) == 0 {
		return Candidate{}, w, domain.ErrNoCandidates
	}
	pool := ExcludeRecent(cs, w)
	chosen := pool[rng.Intn(len(pool))]
	return chosen, w.Push(chosen.City), nil
}

// Selection is the result of a full spin.
type Selection struct {
	Destination Candidate
	Window      Window
	Outcome     Outcome
	Candidates  int
}

// Select runs the whole chain: base filter, personalization, recency, pick.
func Select(catalog []domain.Destination, f BaseFilter, p Profile, w Window, rng RNG) (Selection, error) {
	base := f.Apply(catalog)
	cs, outcome := DefaultPipeline.Run(p, base)
	chosen, next, err := Pick(cs, w, rng)
	if err != nil {
		return Selection{Window: w, Outcome: outcome}, err
	}
	return Selection{Destination: chosen, Window: next, Outcome: outcome, Candidates: len(cs)}, nil
}
