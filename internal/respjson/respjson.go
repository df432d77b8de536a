// Package respjson recovers structured data from generation-backend
// replies that should be JSON but frequently arrive wrapped in markdown
// fences or surrounded by narration.
package respjson

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxDiagnosticLen bounds how much of the offending reply a ParseError
// retains for diagnostics.
const maxDiagnosticLen = 500

// ParseError means no recoverable JSON structure exists in a reply.
type ParseError struct {
	Reply string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no recoverable JSON in reply (%d bytes shown): %v", len(e.Reply), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Unmarshal decodes a backend reply into v, tolerating formatting noise:
// surrounding whitespace, markdown code fences (even unpaired ones), and
// prose before or after the JSON payload. Validation is shape-only;
// missing fields decode to zero values and element order is preserved as
// received. It returns *ParseError when nothing parseable remains.
func Unmarshal(raw string, v any) error {
	s := stripFences(strings.TrimSpace(raw))

	direct := json.Unmarshal([]byte(s), v)
	if direct == nil {
		return nil
	}
	if region, ok := balancedRegion(s); ok {
		if err := json.Unmarshal([]byte(region), v); err == nil {
			return nil
		}
	}
	return &ParseError{Reply: truncate(raw), Err: direct}
}

// stripFences removes a leading fenced-code marker (optionally tagged,
// e.g. ```json) and a trailing one. The two are stripped independently:
// models often emit one without the other.
func stripFences(s string) string {
	if strings.HasPrefix(s, "```") {
		rest := s[3:]
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			s = rest[i+1:]
		} else {
			s = strings.TrimLeft(rest, "`")
		}
	}
	s = strings.TrimRight(s, " \t\n")
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}

// balancedRegion returns the first substring bounded by a balanced outer
// {...} or [...] pair, spanning newlines, with JSON string literals and
// escapes honored so braces inside strings do not count.
func balancedRegion(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", false
	}
	open := s[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func truncate(s string) string {
	if len(s) <= maxDiagnosticLen {
		return s
	}
	return s[:maxDiagnosticLen] + "..."
}
