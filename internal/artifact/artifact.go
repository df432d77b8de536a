// Package artifact defines the study-artifact kinds and the validated
// shapes the generation backend is asked to produce.
package artifact

// Kind names one generated-content category.
type Kind string

const (
	KindSummary      Kind = "summary"
	KindCornellNotes Kind = "cornellNotes"
	KindFlashcards   Kind = "flashcards"
	KindQuiz         Kind = "quiz"
	KindConceptMap   Kind = "conceptMap"
)

// AllKinds lists every kind in presentation order.
var AllKinds = []Kind{KindSummary, KindCornellNotes, KindFlashcards, KindQuiz, KindConceptMap}

// Valid reports whether k names a known artifact kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSummary, KindCornellNotes, KindFlashcards, KindQuiz, KindConceptMap:
		return true
	}
	return false
}

// Difficulty steers flashcard and quiz generation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

// Summary is an executive summary with key points.
type Summary struct {
	Overview   string     `json:"overview"`
	KeyPoints  []KeyPoint `json:"keyPoints"`
	Conclusion string     `json:"conclusion"`
}

type KeyPoint struct {
	Point   string `json:"point"`
	Details string `json:"details"`
}

// CornellNotes pairs cues with notes by position; the slices are
// correlated by index, not by an explicit link.
type CornellNotes struct {
	Cues    []string `json:"cues"`
	Notes   []string `json:"notes"`
	Summary string   `json:"summary"`
}

// Flashcard is a single spaced-repetition card.
type Flashcard struct {
	Front      string   `json:"front"`
	Back       string   `json:"back"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

// Quiz is a multiple-choice question set.
type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// ConceptMap is a one-level-deep topic tree rooted at the document's
// main subject. Exports render it as a Mermaid mindmap.
type ConceptMap struct {
	Root     string   `json:"root"`
	Branches []Branch `json:"branches"`
}

type Branch struct {
	Topic    string   `json:"topic"`
	Children []string `json:"children"`
}
