package docformat

import (
	"archive/zip"
	"bytes"
	"testing"
)

func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := f.Write([]byte("x")); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestDetect_PDFSignatureBeatsExtension(t *testing.T) {
	data := []byte("%PDF-1.4 rest of file")
	if got := Detect("report.unknown", data); got != FormatPDF {
		t.Fatalf("expected pdf, got %s", got)
	}
	if got := Detect("report.txt", data); got != FormatPDF {
		t.Fatalf("expected pdf despite lying extension, got %s", got)
	}
	if got := Detect("", data); got != FormatPDF {
		t.Fatalf("expected pdf with no filename, got %s", got)
	}
}

func TestDetect_ZIPInnerPaths(t *testing.T) {
	cases := []struct {
		inner string
		want  Format
	}{
		{"word/document.xml", FormatWord},
		{"ppt/slides/slide1.xml", FormatPresentation},
		{"xl/workbook.xml", FormatSpreadsheet},
	}
	for _, tc := range cases {
		data := zipWith(t, tc.inner)
		if got := Detect("archive.zip", data); got != tc.want {
			t.Fatalf("inner %q: expected %s, got %s", tc.inner, tc.want, got)
		}
		if got := Detect("", data); got != tc.want {
			t.Fatalf("inner %q without filename: expected %s, got %s", tc.inner, tc.want, got)
		}
	}
}

func TestDetect_EPUBMimetypeEntry(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.Write([]byte("application/epub+zip")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := Detect("book.bin", buf.Bytes()); got != FormatEPUB {
		t.Fatalf("expected epub, got %s", got)
	}
}

func TestDetect_BareZIPFallsBackToExtensionThenText(t *testing.T) {
	data := zipWith(t, "random.bin")
	if got := Detect("notes.docx", data); got != FormatWord {
		t.Fatalf("expected docx from extension candidate, got %s", got)
	}
	if got := Detect("archive.zip", data); got != FormatText {
		t.Fatalf("expected plain-text default for bare zip, got %s", got)
	}
}

func TestDetect_CompoundDocumentTieBreak(t *testing.T) {
	sig := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00, 0x00}
	cases := []struct {
		name string
		want Format
	}{
		{"ledger.xls", FormatSpreadsheetLegacy},
		{"memo.doc", FormatWord},
		{"deck.ppt", FormatPresentation},
		{"mystery.bin", FormatSpreadsheetLegacy},
		{"", FormatSpreadsheetLegacy},
	}
	for _, tc := range cases {
		if got := Detect(tc.name, sig); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestDetect_RTFAndHTMLSignatures(t *testing.T) {
	if got := Detect("file.dat", []byte(`{\rtf1\ansi hello}`)); got != FormatRTF {
		t.Fatalf("expected rtf, got %s", got)
	}
	if got := Detect("file.dat", []byte("<!doctype html>\n<HTML><body>hi</body></HTML>")); got != FormatHTML {
		t.Fatalf("expected html, got %s", got)
	}
}

func TestDetect_ExtensionTable(t *testing.T) {
	cases := map[string]Format{
		"a.pdf":      FormatPDF,
		"a.DOCX":     FormatWord,
		"a.pptx":     FormatPresentation,
		"a.xlsx":     FormatSpreadsheet,
		"a.xls":      FormatSpreadsheetLegacy,
		"a.md":       FormatMarkdown,
		"a.markdown": FormatMarkdown,
		"a.htm":      FormatHTML,
		"a.epub":     FormatEPUB,
		"a.rtf":      FormatRTF,
		"a.text":     FormatText,
	}
	body := []byte("no signature here, just text")
	for name, want := range cases {
		if got := Detect(name, body); got != want {
			t.Fatalf("%q: expected %s, got %s", name, want, got)
		}
	}
}

func TestDetect_IsTotal(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0x00},
		{0xFF, 0xFE, 0x00},
		[]byte("PK\x03"),
		[]byte("plain old text"),
		bytes.Repeat([]byte{0xD0}, 5000),
	}
	names := []string{"", ".", "x", "weird.name.with.dots", "no-extension", "trailing."}
	for _, data := range inputs {
		for _, name := range names {
			got := Detect(name, data)
			if got.String() == "" {
				t.Fatalf("detect returned unnamed format for %q", name)
			}
		}
	}
	if got := Detect("anything.xyz", []byte("unrecognizable")); got != FormatText {
		t.Fatalf("expected plain-text default, got %s", got)
	}
}
