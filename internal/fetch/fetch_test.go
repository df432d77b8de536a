package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/luminastudy/studygen/internal/cache"
)

func TestGet_ContentDispositionName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="lecture notes.pdf"`)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 body"))
	}))
	defer srv.Close()

	c := &Client{}
	res, err := c.Get(context.Background(), srv.URL+"/download")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if res.DeclaredName != "lecture notes.pdf" {
		t.Fatalf("declared name %q", res.DeclaredName)
	}
	if res.ContentType != "application/pdf" {
		t.Fatalf("content type %q", res.ContentType)
	}
	if string(res.Body) != "%PDF-1.4 body" {
		t.Fatalf("body %q", res.Body)
	}
}

func TestGet_NameFromURLPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := &Client{}
	res, err := c.Get(context.Background(), srv.URL+"/docs/study%20guide.docx")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if res.DeclaredName != "study guide.docx" {
		t.Fatalf("declared name %q", res.DeclaredName)
	}
}

func TestGet_FallbackName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := &Client{}
	res, err := c.Get(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if res.DeclaredName != FallbackName {
		t.Fatalf("declared name %q, want %q", res.DeclaredName, FallbackName)
	}
}

func TestGet_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Client{}
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestGet_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	if _, err := c.Get(context.Background(), "ftp://example.com/file.pdf"); err == nil {
		t.Fatal("expected scheme error")
	}
	if _, err := c.Get(context.Background(), "file:///etc/passwd"); err == nil {
		t.Fatal("expected scheme error")
	}
}

func TestGet_CacheAvoidsSecondRequest(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("cached body"))
	}))
	defer srv.Close()

	c := &Client{Cache: &cache.DocCache{Dir: t.TempDir()}}
	first, err := c.Get(context.Background(), srv.URL+"/notes.txt")
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	second, err := c.Get(context.Background(), srv.URL+"/notes.txt")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 origin hit, got %d", hits.Load())
	}
	if string(second.Body) != string(first.Body) || second.DeclaredName != first.DeclaredName {
		t.Fatalf("cache hit diverged: %+v vs %+v", second, first)
	}
}

func TestDeclaredNameResolution(t *testing.T) {
	mustURL := func(s string) *url.URL {
		u, err := url.Parse(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return u
	}
	cases := []struct {
		disposition string
		u           *url.URL
		want        string
	}{
		{`attachment; filename="a.pdf"`, mustURL("http://x/b.txt"), "a.pdf"},
		{`attachment; filename=""`, mustURL("http://x/b.txt"), "b.txt"},
		{"", mustURL("http://x/dir/c%20d.md"), "c d.md"},
		{"", mustURL("http://x/"), FallbackName},
		{"", nil, FallbackName},
		{"not a disposition ;;;", mustURL("http://x/e.html"), "e.html"},
	}
	for _, tc := range cases {
		if got := declaredName(tc.disposition, tc.u); got != tc.want {
			t.Fatalf("disposition=%q url=%v: got %q, want %q", tc.disposition, tc.u, got, tc.want)
		}
	}
}
