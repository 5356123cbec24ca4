package domain

// QuizOption is one answer to a quiz question. Scores is a sparse map: only
// the archetypes the option speaks for are present.
type QuizOption struct {
	ID      string
	LabelFR string
	LabelEN string
	Scores  map[ArchetypeID]int
}

// QuizQuestion is a quiz prompt with exactly five options.
type QuizQuestion struct {
	ID         string
	QuestionFR string
	QuestionEN string
	Options    []QuizOption
}

// QuizResult is derived from a set of quiz answers.
//
// Confidence is the winning score as a rounded percentage of the total score
// across all archetypes. It measures relative dominance, not statistical
// confidence. It is 0 when no answer contributed any score.
type QuizResult struct {
	ArchetypeID ArchetypeID
	Scores      map[ArchetypeID]int // always holds all five archetypes
	Confidence  int
}
