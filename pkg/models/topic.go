package models

// Difficulty grades how hard a topic is to revise.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// difficultyHours maps a difficulty to its default estimated hours.
var difficultyHours = map[Difficulty]float64{
	DifficultyEasy:   1,
	DifficultyMedium: 2,
	DifficultyHard:   3,
}

// Hours returns the default estimated study hours for the difficulty.
// Unknown values fall back to the medium estimate.
func (d Difficulty) Hours() float64 {
	if h, ok := difficultyHours[d]; ok {
		return h
	}
	return difficultyHours[DifficultyMedium]
}

// IsValid reports whether d is one of the known difficulties.
func (d Difficulty) IsValid() bool {
	_, ok := difficultyHours[d]
	return ok
}

// ParseDifficulty accepts the difficulty name in any case, plus the
// one-letter shorthands e/m/h used by the bot and the importer.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch normalize(s) {
	case "easy", "e":
		return DifficultyEasy, true
	case "medium", "m":
		return DifficultyMedium, true
	case "hard", "h":
		return DifficultyHard, true
	}
	return "", false
}

// Topic is the atomic unit of study, owned by exactly one Subject.
type Topic struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	EstimatedHours float64    `json:"estimatedHours"`
	Difficulty     Difficulty `json:"difficulty"`
	Completed      bool       `json:"completed"`
}

// TopicUpdate carries the fields of a partial topic edit. Nil fields are
// left untouched.
type TopicUpdate struct {
	Name           *string
	Difficulty     *Difficulty
	EstimatedHours *float64
}
