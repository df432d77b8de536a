package extract

import (
	"regexp"
	"strings"
)

var (
	pageNumberLine = regexp.MustCompile(`^[ \t]*\d+[ \t]*$`)
	horizontalRuns = regexp.MustCompile(`[ \t]{2,}`)
	blankLineRuns  = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+`)
)

// Normalize canonicalizes extracted text: Windows line endings become \n,
// bare page-number lines are removed, horizontal whitespace runs collapse
// to one space, blank-line runs collapse to one blank line, and the whole
// text is trimmed. It is total and idempotent; afterwards the text holds
// no \r, no run of three or more newlines, no run of repeated horizontal
// whitespace, and no leading or trailing whitespace.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = dropPageNumberLines(s)
	s = horizontalRuns.ReplaceAllString(s, " ")
	s = blankLineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// dropPageNumberLines removes lines consisting solely of whitespace
// around a bare integer: the pagination artifacts PDF and slide
// extraction leave behind. Whole-line removal keeps the pass idempotent,
// unlike a sliding rewrite of newline-digit-newline spans.
func dropPageNumberLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if pageNumberLine.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
