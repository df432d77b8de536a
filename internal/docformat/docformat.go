package docformat

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Format is the canonical document-type classification used to select an
// extraction strategy. The set is closed: dispatch over it must be an
// exhaustive switch so that adding a format forces an extractor branch.
type Format int

const (
	// FormatText is the unknown-default: anything unrecognized is treated
	// as plain text rather than rejected.
	FormatText Format = iota
	FormatMarkdown
	FormatPDF
	FormatWord
	FormatPresentation
	FormatSpreadsheet
	FormatSpreadsheetLegacy
	FormatHTML
	FormatEPUB
	FormatRTF
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatMarkdown:
		return "markdown"
	case FormatPDF:
		return "pdf"
	case FormatWord:
		return "docx"
	case FormatPresentation:
		return "pptx"
	case FormatSpreadsheet:
		return "xlsx"
	case FormatSpreadsheetLegacy:
		return "xls"
	case FormatHTML:
		return "html"
	case FormatEPUB:
		return "epub"
	case FormatRTF:
		return "rtf"
	}
	return "txt"
}

// byExtension maps known filename suffixes to their format. Extensions are
// a hint only: magic-byte evidence wins whenever a signature is present,
// because user-supplied URLs routinely carry wrong or missing extensions.
var byExtension = map[string]Format{
	".pdf":      FormatPDF,
	".docx":     FormatWord,
	".doc":      FormatWord,
	".pptx":     FormatPresentation,
	".ppt":      FormatPresentation,
	".xlsx":     FormatSpreadsheet,
	".xls":      FormatSpreadsheetLegacy,
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".epub":     FormatEPUB,
	".rtf":      FormatRTF,
}

var (
	sigPDF      = []byte("%PDF")
	sigZIP      = []byte("PK\x03\x04")
	sigCompound = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	sigRTF      = []byte("{\\rtf")
)

// sniffWindow bounds how much of the byte stream signature checks inspect.
const sniffWindow = 1000

// Detect classifies a document by content signature first, falling back to
// the declared filename's extension, then to plain text. It is total: it
// never fails, for any input.
func Detect(declaredName string, data []byte) Format {
	ext := strings.ToLower(filepath.Ext(declaredName))
	if f, ok := sniff(data, ext); ok {
		return f
	}
	if f, ok := byExtension[ext]; ok {
		return f
	}
	return FormatText
}

func sniff(data []byte, ext string) (Format, bool) {
	head := data
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}
	switch {
	case bytes.HasPrefix(head, sigPDF):
		return FormatPDF, true
	case bytes.HasPrefix(head, sigZIP):
		return sniffZIP(head, ext)
	case bytes.HasPrefix(head, sigCompound):
		return sniffCompound(ext), true
	case bytes.HasPrefix(head, sigRTF):
		return FormatRTF, true
	}
	if bytes.Contains(bytes.ToLower(head), []byte("<html")) {
		return FormatHTML, true
	}
	return FormatText, false
}

// sniffZIP disambiguates the shared ZIP envelope by looking for a
// format-identifying inner path fragment near the head of the archive.
// The central directory is out of reach within the sniff window, but the
// first local file header's name is enough in practice: OOXML writers put
// [Content_Types].xml plus a format directory first, and EPUB mandates a
// leading "mimetype" entry containing "epub".
func sniffZIP(head []byte, ext string) (Format, bool) {
	switch {
	case bytes.Contains(head, []byte("word/")):
		return FormatWord, true
	case bytes.Contains(head, []byte("ppt/")):
		return FormatPresentation, true
	case bytes.Contains(head, []byte("xl/")):
		return FormatSpreadsheet, true
	case bytes.Contains(head, []byte("epub")):
		return FormatEPUB, true
	}
	// Bare ZIP with no recognizable inner marker: trust a ZIP-family
	// extension if one was declared, otherwise let the caller fall through
	// to the plain-text default.
	switch ext {
	case ".docx":
		return FormatWord, true
	case ".pptx":
		return FormatPresentation, true
	case ".xlsx":
		return FormatSpreadsheet, true
	case ".epub":
		return FormatEPUB, true
	}
	return FormatText, false
}

// sniffCompound resolves the OLE compound-document signature, which is
// shared by legacy Excel, Word and PowerPoint files, via the extension.
// An uninformative extension defaults to the legacy spreadsheet reader;
// that is a guess, so it is surfaced in the debug log.
func sniffCompound(ext string) Format {
	switch ext {
	case ".doc":
		return FormatWord
	case ".ppt":
		return FormatPresentation
	case ".xls":
		return FormatSpreadsheetLegacy
	}
	log.Debug().Str("ext", ext).Msg("compound document with uninformative extension; assuming legacy spreadsheet")
	return FormatSpreadsheetLegacy
}
