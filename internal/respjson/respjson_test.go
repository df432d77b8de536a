package respjson

import (
	"errors"
	"strings"
	"testing"
)

func TestUnmarshal_Direct(t *testing.T) {
	var v struct {
		Overview string `json:"overview"`
	}
	if err := Unmarshal(`{"overview":"x"}`, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Overview != "x" {
		t.Fatalf("got %q", v.Overview)
	}
}

func TestUnmarshal_FencedWithTag(t *testing.T) {
	var v struct {
		Overview string `json:"overview"`
	}
	raw := "```json\n{\"overview\":\"x\"}\n```"
	if err := Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Overview != "x" {
		t.Fatalf("got %q", v.Overview)
	}
}

func TestUnmarshal_UnpairedFences(t *testing.T) {
	var v struct {
		Overview string `json:"overview"`
	}
	for _, raw := range []string{
		"```json\n{\"overview\":\"open only\"}",
		"{\"overview\":\"open only\"}\n```",
		"```\n{\"overview\":\"open only\"}\n```",
	} {
		v.Overview = ""
		if err := Unmarshal(raw, &v); err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if v.Overview != "open only" {
			t.Fatalf("%q: got %q", raw, v.Overview)
		}
	}
}

func TestUnmarshal_EmbeddedInProse(t *testing.T) {
	var v struct {
		Cues []string `json:"cues"`
	}
	raw := "Sure! Here are your notes:\n\n{\"cues\": [\"a\", \"b\"]}\n\nLet me know if you need more."
	if err := Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(v.Cues) != 2 || v.Cues[0] != "a" {
		t.Fatalf("got %#v", v.Cues)
	}
}

func TestUnmarshal_BracesInsideStrings(t *testing.T) {
	var v struct {
		Notes string `json:"notes"`
	}
	raw := "reply: {\"notes\": \"set {x} and \\\"y\\\" here\"} trailing"
	if err := Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Notes != `set {x} and "y" here` {
		t.Fatalf("got %q", v.Notes)
	}
}

func TestUnmarshal_ArrayPayload(t *testing.T) {
	var v []struct {
		Front string `json:"front"`
	}
	raw := "Here you go:\n[{\"front\":\"q1\"},{\"front\":\"q2\"}]"
	if err := Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(v) != 2 || v[1].Front != "q2" {
		t.Fatalf("got %#v", v)
	}
}

func TestUnmarshal_NoStructure(t *testing.T) {
	var v map[string]any
	err := Unmarshal("I could not produce the requested output.", &v)
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Reply == "" {
		t.Fatal("expected reply diagnostic")
	}
}

func TestUnmarshal_DiagnosticTruncated(t *testing.T) {
	long := strings.Repeat("x", 2000)
	var v map[string]any
	err := Unmarshal(long, &v)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if len(pe.Reply) > maxDiagnosticLen+3 {
		t.Fatalf("diagnostic not truncated: %d bytes", len(pe.Reply))
	}
}

func TestUnmarshal_MissingFieldsZeroValue(t *testing.T) {
	var v struct {
		Overview   string   `json:"overview"`
		KeyPoints  []string `json:"keyPoints"`
		Conclusion string   `json:"conclusion"`
	}
	if err := Unmarshal(`{"overview":"only this"}`, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Overview != "only this" || v.KeyPoints != nil || v.Conclusion != "" {
		t.Fatalf("got %#v", v)
	}
}
