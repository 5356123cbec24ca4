package quiz

import "github.com/coupdetete/backend/internal/domain"

type scores = map[domain.ArchetypeID]int

const (
	royal   = domain.RoyalElegance
	culture = domain.CultureSeeker
	nature  = domain.NatureAdventurer
	gourmet = domain.Gastronome
	beach   = domain.BeachRelaxer
)

// Questions is the six-question archetype quiz. Option ids are "<question>_<letter>".
var Questions = []domain.QuizQuestion{
	{
		ID:         "q1",
		QuestionFR: "Ton week-end idéal commence par...",
		QuestionEN: "Your ideal weekend starts with...",
		Options: []domain.QuizOption{
			{ID: "q1_a", LabelFR: "Un brunch raffiné dans un café historique", LabelEN: "A refined brunch in a historic café", Scores: scores{royal: 3, gourmet: 2}},
			{ID: "q1_b", LabelFR: "Une visite au musée dès l'ouverture", LabelEN: "A museum visit right at opening", Scores: scores{culture: 3, royal: 1}},
			{ID: "q1_c", LabelFR: "Une randonnée au lever du soleil", LabelEN: "A hike at sunrise", Scores: scores{nature: 3}},
			{ID: "q1_d", LabelFR: "Le marché local pour des produits frais", LabelEN: "The local market for fresh products", Scores: scores{gourmet: 3, culture: 1}},
			{ID: "q1_e", LabelFR: "La plage avec un bon livre", LabelEN: "The beach with a good book", Scores: scores{beach: 3}},
		},
	},
	{
		ID:         "q2",
		QuestionFR: "Qu'est-ce qui te fait dire \"wow\" en voyage ?",
		QuestionEN: "What makes you say \"wow\" when traveling?",
		Options: []domain.QuizOption{
			{ID: "q2_a", LabelFR: "Un château avec des jardins à la française", LabelEN: "A castle with French formal gardens", Scores: scores{royal: 3, culture: 1}},
			{ID: "q2_b", LabelFR: "Une cathédrale gothique impressionnante", LabelEN: "An impressive Gothic cathedral", Scores: scores{culture: 3}},
			{ID: "q2_c", LabelFR: "Un panorama depuis un sommet", LabelEN: "A panorama from a summit", Scores: scores{nature: 3}},
			{ID: "q2_d", LabelFR: "Un restaurant étoilé ou un marché local", LabelEN: "A Michelin-starred restaurant or local market", Scores: scores{gourmet: 3}},
			{ID: "q2_e", LabelFR: "Une eau turquoise et du sable fin", LabelEN: "Turquoise water and fine sand", Scores: scores{beach: 3}},
		},
	},
	{
		ID:         "q3",
		QuestionFR: "Ton souvenir de voyage préféré serait...",
		QuestionEN: "Your favorite travel souvenir would be...",
		Options: []domain.QuizOption{
			{ID: "q3_a", LabelFR: "Un objet d'art ou d'artisanat raffiné", LabelEN: "A refined art object or craft", Scores: scores{royal: 2, culture: 2}},
			{ID: "q3_b", LabelFR: "Un livre d'art ou une affiche de musée", LabelEN: "An art book or museum poster", Scores: scores{culture: 3}},
			{ID: "q3_c", LabelFR: "Une photo d'un paysage époustouflant", LabelEN: "A photo of a breathtaking landscape", Scores: scores{nature: 3}},
			{ID: "q3_d", LabelFR: "Une bouteille de vin ou un produit local", LabelEN: "A bottle of wine or local product", Scores: scores{gourmet: 3}},
			{ID: "q3_e", LabelFR: "Un coquillage ou du sable de la plage", LabelEN: "A seashell or sand from the beach", Scores: scores{beach: 3}},
		},
	},
	{
		ID:         "q4",
		QuestionFR: "À quelle heure tu te lèves en vacances ?",
		QuestionEN: "What time do you wake up on vacation?",
		Options: []domain.QuizOption{
			{ID: "q4_a", LabelFR: "À l'heure pour un petit-déjeuner servi", LabelEN: "In time for a served breakfast", Scores: scores{royal: 2, gourmet: 2}},
			{ID: "q4_b", LabelFR: "Tôt pour profiter des sites sans foule", LabelEN: "Early to enjoy sites without crowds", Scores: scores{culture: 3}},
			{ID: "q4_c", LabelFR: "À l'aube pour partir en exploration", LabelEN: "At dawn to go exploring", Scores: scores{nature: 3}},
			{ID: "q4_d", LabelFR: "À temps pour le marché du matin", LabelEN: "In time for the morning market", Scores: scores{gourmet: 3}},
			{ID: "q4_e", LabelFR: "Quand j'ai fini de dormir...", LabelEN: "When I'm done sleeping...", Scores: scores{beach: 3}},
		},
	},
	{
		ID:         "q5",
		QuestionFR: "Ta photo Instagram de voyage idéale ?",
		QuestionEN: "Your ideal travel Instagram photo?",
		Options: []domain.QuizOption{
			{ID: "q5_a", LabelFR: "Devant un palace ou un lieu iconique", LabelEN: "In front of a palace or iconic place", Scores: scores{royal: 3}},
			{ID: "q5_b", LabelFR: "Dans une galerie d'art ou devant une fresque", LabelEN: "In an art gallery or in front of a fresco", Scores: scores{culture: 3}},
			{ID: "q5_c", LabelFR: "Au sommet d'une montagne ou en forêt", LabelEN: "At the top of a mountain or in a forest", Scores: scores{nature: 3}},
			{ID: "q5_d", LabelFR: "Avec un plat local magnifiquement présenté", LabelEN: "With a beautifully presented local dish", Scores: scores{gourmet: 3}},
			{ID: "q5_e", LabelFR: "Face à la mer avec un cocktail", LabelEN: "Facing the sea with a cocktail", Scores: scores{beach: 3}},
		},
	},
	{
		ID:         "q6",
		QuestionFR: "Quel est ton budget prioritaire en voyage ?",
		QuestionEN: "What is your priority budget when traveling?",
		Options: []domain.QuizOption{
			{ID: "q6_a", LabelFR: "L'hébergement de qualité", LabelEN: "Quality accommodation", Scores: scores{royal: 3, beach: 1}},
			{ID: "q6_b", LabelFR: "Les entrées aux musées et monuments", LabelEN: "Museum and monument admissions", Scores: scores{culture: 3}},
			{ID: "q6_c", LabelFR: "L'équipement et les activités outdoor", LabelEN: "Outdoor equipment and activities", Scores: scores{nature: 3}},
			{ID: "q6_d", LabelFR: "Les restaurants et expériences culinaires", LabelEN: "Restaurants and culinary experiences", Scores: scores{gourmet: 3}},
			{ID: "q6_e", LabelFR: "Les activités relaxantes (spa, plage...)", LabelEN: "Relaxing activities (spa, beach...)", Scores: scores{beach: 3}},
		},
	},
}
