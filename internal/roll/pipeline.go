package roll

import (
	"cmp"
	"slices"

	"github.com/coupdetete/backend/internal/domain"
)

// Profile is what the personalization stages know about the actor.
type Profile struct {
	Premium                bool
	PersonalizationEnabled bool
	Archetype              *domain.ArchetypeID
	// Mappings maps a destination city to its relevance for Archetype.
	Mappings map[string]int
}

// Stage is one step of the personalization pipeline. It either narrows the
// candidate set (ok == true) or declines, giving the reason.
type Stage struct {
	Name  string
	Apply func(p Profile, in []Candidate) (out []Candidate, ok bool, reason string)
}

// Outcome records how the pipeline ended.
type Outcome struct {
	Personalized bool     `json:"personalized"`
	StoppedAt    string   `json:"stopped_at,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	Stages       []string `json:"stages"`
}

// Pipeline runs stages in order. The first stage that declines stops
// personalization and the unpersonalized input is returned unchanged.
type Pipeline []Stage

// DefaultPipeline is the premium → toggle → archetype → mapping → intersection chain.
var DefaultPipeline = Pipeline{PremiumGate, ToggleGate, ArchetypeGate, MappingGate, RelevanceIntersect}

// Run applies the pipeline to base. The result is never empty when base is not.
func (pl Pipeline) Run(p Profile, base []Candidate) ([]Candidate, Outcome) {
	cur := base
	var o Outcome
	for _, st := range pl {
		o.Stages = append(o.Stages, st.Name)
		next, ok, reason := st.Apply(p, cur)
		if !ok {
			o.StoppedAt, o.Reason = st.Name, reason
			return base, o
		}
		cur = next
	}
	o.Personalized = len(pl) > 0
	return cur, o
}

func gate(name string, pass func(Profile) bool, reason string) Stage {
	return Stage{
		Name: name,
		Apply: func(p Profile, in []Candidate) ([]Candidate, bool, string) {
			if !pass(p) {
				return nil, false, reason
			}
			return in, true, ""
		},
	}
}

var (
	PremiumGate = gate("premium", func(p Profile) bool { return p.Premium }, "not a premium subscriber")
	ToggleGate  = gate("toggle", func(p Profile) bool { return p.PersonalizationEnabled }, "personalization disabled")

	ArchetypeGate = gate("archetype", func(p Profile) bool {
		return p.Archetype != nil && p.Archetype.Valid()
	}, "no archetype chosen")

	MappingGate = gate("mapping", func(p Profile) bool { return len(p.Mappings) > 0 }, "archetype has no destination mappings")
)

// RelevanceIntersect keeps candidates whose city is mapped for the archetype,
// sorted by relevance, highest first. It declines when the intersection is empty.
var RelevanceIntersect = Stage{
	Name: "intersect",
	Apply: func(p Profile, in []Candidate) ([]Candidate, bool, string) {
		out := make([]Candidate, 0, len(in))
		for _, c := range in {
			if score, ok := p.Mappings[c.City]; ok {
				c.Relevance = score
				out = append(out, c)
			}
		}
		if len(out) == 0 {
			return nil, false, "no filtered destination matches the archetype"
		}
		slices.SortStableFunc(out, func(a, b Candidate) int { return cmp.Compare(b.Relevance, a.Relevance) })
		return out, true, ""
	},
}
