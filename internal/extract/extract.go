package extract

import (
	"fmt"

	"github.com/luminastudy/studygen/internal/docformat"
)

// Extractor converts raw document bytes into plain text for one format.
type Extractor func(data []byte) (string, error)

// Error reports a structural extraction failure. It always carries the
// detected format so callers can tell a corrupt container apart from a
// misdetected one; misdetection is the detector's concern and is never
// papered over by retrying a different extractor.
type Error struct {
	Format docformat.Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(f docformat.Format, err error) (string, error) {
	return "", &Error{Format: f, Err: err}
}

// ForFormat returns the extraction strategy for a format. The switch is
// exhaustive over the closed format enum; a new format does not compile
// here until it has an extractor.
func ForFormat(f docformat.Format) Extractor {
	switch f {
	case docformat.FormatPDF:
		return fromPDF
	case docformat.FormatWord:
		return fromWord
	case docformat.FormatPresentation:
		return fromPresentation
	case docformat.FormatSpreadsheet:
		return fromSpreadsheet
	case docformat.FormatSpreadsheetLegacy:
		return fromLegacySpreadsheet
	case docformat.FormatHTML:
		return fromHTMLBytes
	case docformat.FormatEPUB:
		return fromEPUB
	case docformat.FormatRTF:
		return fromRTF
	case docformat.FormatText, docformat.FormatMarkdown:
		return fromText
	}
	return fromText
}
