package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luminastudy/studygen/internal/docformat"
	"github.com/luminastudy/studygen/internal/fetch"
)

func testServer(t *testing.T, routes map[string]func(w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h(w)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAcquire_TextDocument(t *testing.T) {
	body := strings.Repeat("Useful study material about photosynthesis. ", 10)
	srv := testServer(t, map[string]func(http.ResponseWriter){
		"/notes.txt": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(body))
		},
	})

	c := &Coordinator{Client: &fetch.Client{}}
	src, err := c.Acquire(context.Background(), srv.URL+"/notes.txt")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if src.Format != docformat.FormatText {
		t.Fatalf("format %s", src.Format)
	}
	if src.DeclaredName != "notes.txt" {
		t.Fatalf("declared name %q", src.DeclaredName)
	}
	if len(src.ContentID) != 12 {
		t.Fatalf("content id %q has length %d", src.ContentID, len(src.ContentID))
	}
	if src.Size != len(body) {
		t.Fatalf("size %d, want %d", src.Size, len(body))
	}
	if src.Text != strings.TrimSpace(body) {
		t.Fatalf("text %q", src.Text)
	}
}

func TestAcquire_ContentIDTracksBytes(t *testing.T) {
	srv := testServer(t, map[string]func(http.ResponseWriter){
		"/a.txt": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(strings.Repeat("identical bytes here. ", 10)))
		},
		"/b.txt": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(strings.Repeat("identical bytes here. ", 10)))
		},
		"/c.txt": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(strings.Repeat("different bytes here. ", 10)))
		},
	})

	c := &Coordinator{Client: &fetch.Client{}}
	a, err := c.Acquire(context.Background(), srv.URL+"/a.txt")
	if err != nil {
		t.Fatalf("a: %v", err)
	}
	b, err := c.Acquire(context.Background(), srv.URL+"/b.txt")
	if err != nil {
		t.Fatalf("b: %v", err)
	}
	cc, err := c.Acquire(context.Background(), srv.URL+"/c.txt")
	if err != nil {
		t.Fatalf("c: %v", err)
	}
	if a.ContentID != b.ContentID {
		t.Fatalf("identical bytes got different ids: %s vs %s", a.ContentID, b.ContentID)
	}
	if a.ContentID == cc.ContentID {
		t.Fatal("different bytes got the same id")
	}
}

func TestAcquire_SignatureBeatsExtension(t *testing.T) {
	srv := testServer(t, map[string]func(http.ResponseWriter){
		"/report.unknown": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte("%PDF-1.4 not actually parseable"))
		},
	})

	c := &Coordinator{Client: &fetch.Client{}}
	_, err := c.Acquire(context.Background(), srv.URL+"/report.unknown")
	// The bytes carry a PDF signature, so the PDF extractor must run and
	// report a structural failure rather than the text path silently
	// succeeding.
	if err == nil {
		t.Fatal("expected extraction failure for fake PDF")
	}
	var ae *AcquisitionError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AcquisitionError, got %T", err)
	}
}

func TestAcquire_InsufficientContent(t *testing.T) {
	srv := testServer(t, map[string]func(http.ResponseWriter){
		"/tiny.txt": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte("too short"))
		},
	})

	c := &Coordinator{Client: &fetch.Client{}}
	src, err := c.Acquire(context.Background(), srv.URL+"/tiny.txt")
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("expected ErrInsufficientContent, got %v", err)
	}
	if src == nil {
		t.Fatal("expected source alongside the sentinel error")
	}
	if src.Text != "too short" {
		t.Fatalf("text %q", src.Text)
	}
}

func TestAcquire_MinTextCharsOverride(t *testing.T) {
	srv := testServer(t, map[string]func(http.ResponseWriter){
		"/tiny.txt": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte("just enough text here"))
		},
	})

	c := &Coordinator{Client: &fetch.Client{}, MinTextChars: 5}
	if _, err := c.Acquire(context.Background(), srv.URL+"/tiny.txt"); err != nil {
		t.Fatalf("acquire with lowered threshold: %v", err)
	}
}

func TestAcquire_FetchFailure(t *testing.T) {
	srv := testServer(t, nil)

	c := &Coordinator{Client: &fetch.Client{}}
	_, err := c.Acquire(context.Background(), srv.URL+"/missing.pdf")
	var ae *AcquisitionError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AcquisitionError, got %v", err)
	}
	if ae.URL != srv.URL+"/missing.pdf" {
		t.Fatalf("error url %q", ae.URL)
	}
}
