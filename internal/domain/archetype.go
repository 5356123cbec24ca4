// Package domain contains the core data types for the Coup de Tête API.
// This package has no dependencies on other internal packages and is imported
// by every other layer (quiz, roll, leaderboard, repo, service, handler).
package domain

// ArchetypeID identifies one of the five traveller archetypes.
type ArchetypeID string

const (
	RoyalElegance    ArchetypeID = "royal_elegance"
	CultureSeeker    ArchetypeID = "culture_seeker"
	NatureAdventurer ArchetypeID = "nature_adventurer"
	Gastronome       ArchetypeID = "gastronome"
	BeachRelaxer     ArchetypeID = "beach_relaxer"
)

// ArchetypeOrder is the canonical archetype order. Quiz tie-breaks and every
// listing iterate in this order.
var ArchetypeOrder = []ArchetypeID{
	RoyalElegance,
	CultureSeeker,
	NatureAdventurer,
	Gastronome,
	BeachRelaxer,
}

// Valid reports whether id is one of the five known archetypes.
func (id ArchetypeID) Valid() bool {
	for _, a := range ArchetypeOrder {
		if a == id {
			return true
		}
	}
	return false
}

// Archetype is the static description of a traveller archetype.
type Archetype struct {
	ID            ArchetypeID `json:"id"`
	NameFR        string      `json:"name_fr"`
	NameEN        string      `json:"name_en"`
	DescriptionFR string      `json:"description_fr"`
	DescriptionEN string      `json:"description_en"`
	Icon          string      `json:"icon"`
	Color         string      `json:"color"` // hex, e.g. "#FFD700"
}
