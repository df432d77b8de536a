package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/luminastudy/studygen/internal/docformat"
)

var errNoDocumentPart = errors.New("no document part in container")

// fromWord extracts text from a DOCX container. The body lives in
// word/document.xml as WordprocessingML; streaming the XML tokens and
// emitting a line break per paragraph strips the markup while keeping
// block boundaries.
func fromWord(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fail(docformat.FormatWord, err)
	}
	part := findZipFile(zr, "word/document.xml")
	if part == nil {
		return fail(docformat.FormatWord, errNoDocumentPart)
	}
	text, err := wordMLText(part)
	if err != nil {
		return fail(docformat.FormatWord, err)
	}
	return text, nil
}

func wordMLText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var b strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// fromPresentation extracts slide text from a PPTX container in slide
// order, prefixing each slide with a human-readable marker so readers can
// follow the deck structure in the flat text.
func fromPresentation(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fail(docformat.FormatPresentation, err)
	}
	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		var n int
		if _, err := fmt.Sscanf(f.Name, "ppt/slides/slide%d.xml", &n); err == nil && !strings.Contains(strings.TrimPrefix(f.Name, "ppt/slides/"), "/") {
			slides = append(slides, slide{num: n, file: f})
		}
	}
	if len(slides) == 0 {
		return fail(docformat.FormatPresentation, errNoDocumentPart)
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	parts := make([]string, 0, len(slides))
	for _, s := range slides {
		text, err := drawingMLText(s.file)
		if err != nil {
			return fail(docformat.FormatPresentation, err)
		}
		parts = append(parts, fmt.Sprintf("--- Slide %d ---\n%s", s.num, text))
	}
	return strings.Join(parts, "\n\n"), nil
}

func drawingMLText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var b strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// fromEPUB extracts text from every document-type item in the EPUB
// container, joining items with blank lines. Non-document items (images,
// styles, fonts) are skipped.
func fromEPUB(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fail(docformat.FormatEPUB, err)
	}
	var parts []string
	for _, f := range zr.File {
		if !isEPUBDocument(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fail(docformat.FormatEPUB, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fail(docformat.FormatEPUB, err)
		}
		text, err := htmlToText(decodeText(raw), docformat.FormatEPUB)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return fail(docformat.FormatEPUB, errNoDocumentPart)
	}
	return strings.Join(parts, "\n\n"), nil
}

func isEPUBDocument(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".xhtml") ||
		strings.HasSuffix(lower, ".html") ||
		strings.HasSuffix(lower, ".htm")
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
