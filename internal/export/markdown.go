package export

import (
	"fmt"
	"strings"

	"github.com/luminastudy/studygen/internal/artifact"
)

// studyMarkdown renders every available artifact into one study-guide
// markdown document, callout style compatible with Notion imports.
func studyMarkdown(artifacts map[artifact.Kind]any, meta Meta) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Study Guide: %s\n\n", meta.Filename)
	fmt.Fprintf(&sb, "**Source:** %s\n", meta.SourceURL)
	fmt.Fprintf(&sb, "**Processed:** %s\n\n---\n\n", meta.ProcessedAt.Format("2006-01-02 15:04 MST"))

	if s, ok := artifacts[artifact.KindSummary].(artifact.Summary); ok {
		sb.WriteString("## Executive Summary\n\n")
		sb.WriteString(s.Overview)
		sb.WriteString("\n\n")
		if len(s.KeyPoints) > 0 {
			sb.WriteString("### Key Points\n\n")
			for _, kp := range s.KeyPoints {
				fmt.Fprintf(&sb, "- **%s**: %s\n", kp.Point, kp.Details)
			}
			sb.WriteString("\n")
		}
		if s.Conclusion != "" {
			fmt.Fprintf(&sb, "> [!TIP] Conclusion\n> %s\n\n", s.Conclusion)
		}
	}

	if n, ok := artifacts[artifact.KindCornellNotes].(artifact.CornellNotes); ok {
		sb.WriteString("## Cornell Notes\n\n")
		sb.WriteString("| Cues | Notes |\n|------|-------|\n")
		for i := 0; i < max(len(n.Cues), len(n.Notes)); i++ {
			fmt.Fprintf(&sb, "| %s | %s |\n", at(n.Cues, i), at(n.Notes, i))
		}
		sb.WriteString("\n")
		if n.Summary != "" {
			fmt.Fprintf(&sb, "> [!NOTE] Summary\n> %s\n\n", n.Summary)
		}
	}

	if cards, ok := artifacts[artifact.KindFlashcards].([]artifact.Flashcard); ok {
		sb.WriteString("## Flashcards\n\n")
		for i, card := range cards {
			fmt.Fprintf(&sb, "### Card %d (%s)\n\n", i+1, orDefault(card.Difficulty, "medium"))
			fmt.Fprintf(&sb, "> [!QUESTION] Question\n> %s\n\n", card.Front)
			fmt.Fprintf(&sb, "> [!SUCCESS] Answer\n> %s\n\n", card.Back)
			if len(card.Tags) > 0 {
				tags := make([]string, len(card.Tags))
				for j, t := range card.Tags {
					tags[j] = "`" + t + "`"
				}
				fmt.Fprintf(&sb, "**Tags:** %s\n\n", strings.Join(tags, ", "))
			}
		}
	}

	if quiz, ok := artifacts[artifact.KindQuiz].(artifact.Quiz); ok {
		sb.WriteString("## Practice Quiz\n\n")
		for i, q := range quiz.Questions {
			fmt.Fprintf(&sb, "### Question %d\n\n%s\n\n", i+1, q.Question)
			for _, opt := range q.Options {
				fmt.Fprintf(&sb, "- %s\n", opt)
			}
			fmt.Fprintf(&sb, "\n> [!SUCCESS] Answer: %s\n> %s\n\n", q.CorrectAnswer, q.Explanation)
		}
	}

	if cm, ok := artifacts[artifact.KindConceptMap].(artifact.ConceptMap); ok {
		sb.WriteString("## Concept Map\n\n```mermaid\n")
		sb.WriteString(mermaidMindmap(cm))
		sb.WriteString("```\n")
	}

	return sb.String()
}

// mermaidMindmap renders a concept map in Mermaid mindmap syntax.
func mermaidMindmap(cm artifact.ConceptMap) string {
	var sb strings.Builder
	sb.WriteString("mindmap\n")
	fmt.Fprintf(&sb, "  root((%s))\n", orDefault(cm.Root, "Document"))
	for _, br := range cm.Branches {
		fmt.Fprintf(&sb, "    %s\n", br.Topic)
		for _, child := range br.Children {
			fmt.Fprintf(&sb, "      %s\n", child)
		}
	}
	return sb.String()
}

func at(xs []string, i int) string {
	if i < len(xs) {
		return xs[i]
	}
	return ""
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
