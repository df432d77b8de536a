// Package export renders validated study artifacts into their delivery
// formats: Anki-compatible CSV, study-guide markdown, an interactive
// quiz page, a JSON bundle, and a printable PDF study guide.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/luminastudy/studygen/internal/artifact"
)

// Meta identifies the source document an export set belongs to.
type Meta struct {
	Filename    string    `json:"filename"`
	SourceURL   string    `json:"sourceUrl"`
	ProcessedAt time.Time `json:"processedAt"`
}

// Set holds every rendered export for one document. Fields are empty
// when the corresponding artifact was not generated.
type Set struct {
	AnkiCSV  string
	Markdown string
	QuizHTML string
	JSON     string
	PDF      []byte
}

// Build renders all exports that the available artifacts support.
func Build(artifacts map[artifact.Kind]any, meta Meta) (Set, error) {
	var set Set
	if cards, ok := artifacts[artifact.KindFlashcards].([]artifact.Flashcard); ok {
		set.AnkiCSV = ankiCSV(cards)
	}
	set.Markdown = studyMarkdown(artifacts, meta)
	if quiz, ok := artifacts[artifact.KindQuiz].(artifact.Quiz); ok {
		html, err := quizHTML(quiz, meta)
		if err != nil {
			return Set{}, fmt.Errorf("render quiz html: %w", err)
		}
		set.QuizHTML = html
	}
	bundle, err := json.MarshalIndent(map[string]any{
		"metadata":       meta,
		"studyMaterials": artifacts,
	}, "", "  ")
	if err != nil {
		return Set{}, fmt.Errorf("marshal bundle: %w", err)
	}
	set.JSON = string(bundle)

	pdf, err := studyPDF(artifacts, meta)
	if err != nil {
		return Set{}, fmt.Errorf("render pdf: %w", err)
	}
	set.PDF = pdf
	return set, nil
}

// Write persists a set under dir using stem as the filename prefix and
// returns the relative names written, keyed by export name.
func Write(dir, stem string, set Set) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	written := make(map[string]string)
	save := func(name, suffix string, data []byte) error {
		if len(data) == 0 {
			return nil
		}
		rel := stem + suffix
		if err := os.WriteFile(filepath.Join(dir, rel), data, 0o644); err != nil {
			return err
		}
		written[name] = rel
		return nil
	}
	if err := save("ankiCsv", "_flashcards.csv", []byte(set.AnkiCSV)); err != nil {
		return nil, err
	}
	if err := save("markdown", "_study.md", []byte(set.Markdown)); err != nil {
		return nil, err
	}
	if err := save("quizHtml", "_quiz.html", []byte(set.QuizHTML)); err != nil {
		return nil, err
	}
	if err := save("json", "_study.json", []byte(set.JSON)); err != nil {
		return nil, err
	}
	if err := save("pdf", "_study_guide.pdf", set.PDF); err != nil {
		return nil, err
	}
	return written, nil
}

// ankiCSV renders flashcards as Front,Back,Tags rows. encoding/csv
// handles quoting, so card text may contain commas, quotes and newlines.
func ankiCSV(cards []artifact.Flashcard) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"Front", "Back", "Tags"})
	for _, card := range cards {
		_ = w.Write([]string{card.Front, card.Back, strings.Join(card.Tags, " ")})
	}
	w.Flush()
	return sb.String()
}
