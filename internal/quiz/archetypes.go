// Package quiz holds the static archetype catalog and the quiz scoring engine.
package quiz

import "github.com/coupdetete/backend/internal/domain"

// Archetypes lists the five archetypes in canonical order.
var Archetypes = []domain.Archetype{
	{
		ID:            domain.RoyalElegance,
		NameFR:        "L'Aristocrate",
		NameEN:        "The Aristocrat",
		DescriptionFR: "Amoureux des palais, du luxe et des expériences raffinées",
		DescriptionEN: "Loves palaces, luxury, and refined experiences",
		Icon:          "👑",
		Color:         "#FFD700",
	},
	{
		ID:            domain.CultureSeeker,
		NameFR:        "L'Artiste",
		NameEN:        "The Artist",
		DescriptionFR: "Attiré par l'art, les musées et le patrimoine culturel",
		DescriptionEN: "Drawn to art, museums, and cultural heritage",
		Icon:          "🎨",
		Color:         "#9B59B6",
	},
	{
		ID:            domain.NatureAdventurer,
		NameFR:        "L'Explorateur",
		NameEN:        "The Explorer",
		DescriptionFR: "Cherche l'aventure, la randonnée et les grands espaces",
		DescriptionEN: "Seeks outdoor adventures, hiking, and landscapes",
		Icon:          "🏔️",
		Color:         "#27AE60",
	},
	{
		ID:            domain.Gastronome,
		NameFR:        "Le Gourmet",
		NameEN:        "The Foodie",
		DescriptionFR: "Vit pour la gastronomie, les vins et les expériences culinaires",
		DescriptionEN: "Lives for food, wine, and culinary experiences",
		Icon:          "🍷",
		Color:         "#E74C3C",
	},
	{
		ID:            domain.BeachRelaxer,
		NameFR:        "Le Rêveur",
		NameEN:        "The Dreamer",
		DescriptionFR: "Recherche la détente, l'ambiance méditerranéenne et les plages",
		DescriptionEN: "Craves beaches, Mediterranean vibes, and relaxation",
		Icon:          "🏖️",
		Color:         "#3498DB",
	},
}

// Lookup returns the archetype with the given id.
func Lookup(id domain.ArchetypeID) (domain.Archetype, bool) {
	for _, a := range Archetypes {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Archetype{}, false
}
