package generate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/luminastudy/studygen/internal/artifact"
)

// kindSpec fixes the per-kind prompt contract and budgets. Excerpt
// budgets are characters of source text; richer artifacts get more
// context and a larger output allowance.
type kindSpec struct {
	system       string
	excerptChars int
	maxTokens    int
}

var kindSpecs = map[artifact.Kind]kindSpec{
	artifact.KindSummary: {
		system: "You are an expert at creating concise, informative summaries of academic and professional documents. " +
			"Generate summaries that capture the essence and main ideas.",
		excerptChars: 15000,
		maxTokens:    2000,
	},
	artifact.KindCornellNotes: {
		system:       "You are an expert at creating Cornell Notes - a proven note-taking method with cues, notes, and summary sections.",
		excerptChars: 15000,
		maxTokens:    3000,
	},
	artifact.KindFlashcards: {
		system: "You are an expert at creating effective flashcards for spaced repetition learning (like Anki). " +
			"Your flashcards should be clear, concise, and test understanding.",
		excerptChars: 15000,
		maxTokens:    4000,
	},
	artifact.KindQuiz: {
		system:       "You are an expert at creating effective multiple-choice questions that test understanding.",
		excerptChars: 15000,
		maxTokens:    4000,
	},
	artifact.KindConceptMap: {
		system:       "You are an expert at distilling documents into concept maps that show how ideas relate.",
		excerptChars: 10000,
		maxTokens:    1500,
	},
}

var difficultyGuidance = map[artifact.Difficulty]string{
	artifact.DifficultyEasy:   "Focus on basic facts and definitions",
	artifact.DifficultyMedium: "Balance facts with conceptual understanding",
	artifact.DifficultyHard:   "Focus on complex concepts and applications",
	artifact.DifficultyMixed:  "Mix of easy, medium, and hard questions",
}

// userPrompt builds the user message for one kind. Every prompt states
// the exact JSON shape contract; the reply parser tolerates fence noise
// but the contract keeps compliant models on the direct path.
func userPrompt(kind artifact.Kind, filename, excerpt string, opts Options) string {
	var sb strings.Builder
	switch kind {
	case artifact.KindSummary:
		sb.WriteString("Create a comprehensive summary of this document in JSON format.\n\n")
		writeSourceBlock(&sb, filename, excerpt)
		sb.WriteString(`Respond with ONLY a JSON object (no markdown, no backticks) with this structure:
{
    "overview": "2-3 sentence overview of the entire document",
    "keyPoints": [
        {"point": "Main idea 1", "details": "Brief explanation"},
        {"point": "Main idea 2", "details": "Brief explanation"}
    ],
    "conclusion": "Final takeaway or conclusion"
}`)
	case artifact.KindCornellNotes:
		sb.WriteString("Create Cornell Notes from this document in JSON format.\n\n")
		writeSourceBlock(&sb, filename, excerpt)
		sb.WriteString(`Respond with ONLY a JSON object (no markdown, no backticks) with this structure:
{
    "cues": ["Question 1?", "Key term 2", "Question 3?"],
    "notes": ["Detailed explanation 1", "Detailed explanation 2", "Detailed explanation 3"],
    "summary": "Overall summary in 2-3 sentences"
}

Generate 10-15 cue-note pairs that cover the main concepts. Cues and notes are paired by position.`)
	case artifact.KindFlashcards:
		fmt.Fprintf(&sb, "Create %d flashcards from this document in JSON format.\n\n", opts.flashcardCount())
		fmt.Fprintf(&sb, "Difficulty: %s - %s\n\n", opts.difficulty(), difficultyGuidance[opts.difficulty()])
		writeSourceBlock(&sb, filename, excerpt)
		sb.WriteString(`Respond with ONLY a JSON array (no markdown, no backticks) with this structure:
[
    {
        "front": "Clear, specific question",
        "back": "Concise answer (1-3 sentences)",
        "difficulty": "easy|medium|hard",
        "tags": ["topic1", "concept2"]
    }
]

Make flashcards that test real understanding, not just memorization.`)
	case artifact.KindQuiz:
		fmt.Fprintf(&sb, "Create a %d-question multiple-choice quiz from this document in JSON format.\n\n", opts.quizQuestionCount())
		fmt.Fprintf(&sb, "Difficulty: %s\n\n", opts.difficulty())
		writeSourceBlock(&sb, filename, excerpt)
		sb.WriteString(`Respond with ONLY a JSON object (no markdown, no backticks) with this structure:
{
    "questions": [
        {
            "type": "multiple_choice",
            "question": "Clear question text",
            "options": ["A) First option", "B) Second option", "C) Third option", "D) Fourth option"],
            "correctAnswer": "A",
            "explanation": "Why this answer is correct",
            "difficulty": "easy|medium|hard"
        }
    ]
}

Create questions that test understanding, not just recall.`)
	case artifact.KindConceptMap:
		sb.WriteString("Create a concept map from this document in JSON format.\n\n")
		writeSourceBlock(&sb, filename, excerpt)
		sb.WriteString(`Respond with ONLY a JSON object (no markdown, no backticks) with this structure:
{
    "root": "Main Topic",
    "branches": [
        {"topic": "Subtopic 1", "children": ["Detail A", "Detail B"]},
        {"topic": "Subtopic 2", "children": ["Detail C", "Detail D"]}
    ]
}

Keep it clear and organized with 3-5 main branches.`)
	}
	return sb.String()
}

func writeSourceBlock(sb *strings.Builder, filename, excerpt string) {
	name := filename
	if strings.TrimSpace(name) == "" {
		name = "Unknown"
	}
	fmt.Fprintf(sb, "Document: %s\n\nText:\n%s\n\n", name, excerpt)
}

// excerptFor bounds the source text to a kind's character budget. The
// cut backs up to a rune boundary so a multi-byte character is never
// split into an invalid trailing sequence.
func excerptFor(kind artifact.Kind, text string) string {
	budget := kindSpecs[kind].excerptChars
	if budget <= 0 || len(text) <= budget {
		return text
	}
	cut := budget
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
