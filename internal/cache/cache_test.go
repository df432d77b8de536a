package cache

import (
	"context"
	"testing"
)

func TestDocCacheRoundTrip(t *testing.T) {
	c := &DocCache{Dir: t.TempDir()}
	ctx := context.Background()

	if _, _, err := c.Load(ctx, "http://example.com/a.pdf"); err == nil {
		t.Fatal("expected miss on empty cache")
	}

	meta := DocMeta{ContentType: "application/pdf", DeclaredName: "a.pdf"}
	body := []byte("%PDF-1.4 content")
	if err := c.Save(ctx, "http://example.com/a.pdf", meta, body); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, gotMeta, err := c.Load(ctx, "http://example.com/a.pdf")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("body %q", got)
	}
	if gotMeta.ContentType != meta.ContentType || gotMeta.DeclaredName != meta.DeclaredName {
		t.Fatalf("meta %+v", gotMeta)
	}
	if gotMeta.SavedAt.IsZero() {
		t.Fatal("expected SavedAt to be stamped")
	}

	if _, _, err := c.Load(ctx, "http://example.com/other.pdf"); err == nil {
		t.Fatal("expected miss for different URL")
	}
}

func TestReplyCacheRoundTrip(t *testing.T) {
	c := &ReplyCache{Dir: t.TempDir()}
	ctx := context.Background()
	key := KeyFrom("test-model", "system\n\nuser prompt")

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}
	if err := c.Save(ctx, key, []byte(`{"overview":"x"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(b) != `{"overview":"x"}` {
		t.Fatalf("got %q", b)
	}
}

func TestKeyFromIsStableAndDistinct(t *testing.T) {
	a := KeyFrom("m", "p")
	if a != KeyFrom("m", "p") {
		t.Fatal("key not deterministic")
	}
	if a == KeyFrom("m2", "p") || a == KeyFrom("m", "p2") {
		t.Fatal("key ignores inputs")
	}
	if len(a) != 64 {
		t.Fatalf("key length %d", len(a))
	}
}
