package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/luminastudy/studygen/internal/artifact"
)

// studyPDF renders a printable study guide. Layout is intentionally
// simple: title page header, then one section per available artifact.
func studyPDF(artifacts map[artifact.Kind]any, meta Meta) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	heading := func(text string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
	}
	body := func(text string) {
		if text == "" {
			return
		}
		pdf.MultiCell(0, 5, text, "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Study Guide: "+meta.Filename, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	body("Source: " + meta.SourceURL)
	body("Processed: " + meta.ProcessedAt.Format("2006-01-02 15:04 MST"))
	pdf.SetFont("Helvetica", "", 11)

	if s, ok := artifacts[artifact.KindSummary].(artifact.Summary); ok {
		heading("Executive Summary")
		body(s.Overview)
		for _, kp := range s.KeyPoints {
			body(fmt.Sprintf("- %s: %s", kp.Point, kp.Details))
		}
		body(s.Conclusion)
	}

	if n, ok := artifacts[artifact.KindCornellNotes].(artifact.CornellNotes); ok {
		heading("Cornell Notes")
		for i := 0; i < max(len(n.Cues), len(n.Notes)); i++ {
			cue := at(n.Cues, i)
			if cue != "" {
				pdf.SetFont("Helvetica", "B", 11)
				body(cue)
				pdf.SetFont("Helvetica", "", 11)
			}
			body(at(n.Notes, i))
		}
		body(n.Summary)
	}

	if cards, ok := artifacts[artifact.KindFlashcards].([]artifact.Flashcard); ok {
		pdf.AddPage()
		heading("Flashcards")
		for i, card := range cards {
			pdf.SetFont("Helvetica", "B", 11)
			body(fmt.Sprintf("Card %d", i+1))
			pdf.SetFont("Helvetica", "I", 11)
			body("Q: " + card.Front)
			pdf.SetFont("Helvetica", "", 11)
			body("A: " + card.Back)
		}
	}

	if quiz, ok := artifacts[artifact.KindQuiz].(artifact.Quiz); ok {
		pdf.AddPage()
		heading("Practice Quiz")
		for i, q := range quiz.Questions {
			pdf.SetFont("Helvetica", "B", 11)
			body(fmt.Sprintf("%d. %s", i+1, q.Question))
			pdf.SetFont("Helvetica", "", 11)
			for _, opt := range q.Options {
				body("   " + opt)
			}
			body(fmt.Sprintf("Answer: %s - %s", q.CorrectAnswer, q.Explanation))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
