package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/luminastudy/studygen/internal/docformat"
)

// fromPDF extracts text from every page and concatenates the pages with a
// blank-line separator. Pages whose content streams cannot be decoded are
// skipped rather than failing the document; an unreadable file structure
// is a hard error. The reader panics on some malformed inputs, so the
// whole pass runs under a recover that converts panics to errors.
func fromPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = fail(docformat.FormatPDF, fmt.Errorf("malformed pdf: %v", r))
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fail(docformat.FormatPDF, err)
	}
	parts := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}
