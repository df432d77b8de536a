// Command backend-stub serves a minimal OpenAI-compatible endpoint that
// answers each studygen artifact prompt with canned JSON, wrapped in a
// code fence the way real models tend to. It lets the full pipeline run
// offline.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "stub-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sys := ""
		if len(req.Messages) > 0 {
			sys = req.Messages[0].Content
		}
		content := "```json\n" + cannedReply(sys) + "\n```"
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "stub",
			"object": "chat.completion",
			"model":  model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	})

	log.Printf("backend-stub listening on %s (model %s)", addr, model)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// cannedReply matches the artifact kind by its system prompt wording.
func cannedReply(sys string) string {
	switch {
	case strings.Contains(sys, "summaries"):
		return `{"overview":"A stub overview of the document.","keyPoints":[{"point":"First idea","details":"Stub detail"}],"conclusion":"Stub conclusion."}`
	case strings.Contains(sys, "Cornell Notes"):
		return `{"cues":["What is the topic?"],"notes":["The topic is covered in the document."],"summary":"Stub summary."}`
	case strings.Contains(sys, "flashcards"):
		return `[{"front":"Stub question?","back":"Stub answer.","difficulty":"easy","tags":["stub"]}]`
	case strings.Contains(sys, "multiple-choice"):
		return `{"questions":[{"type":"multiple_choice","question":"Stub?","options":["A) Yes","B) No","C) Maybe","D) Unsure"],"correctAnswer":"A","explanation":"Because stub.","difficulty":"easy"}]}`
	case strings.Contains(sys, "concept maps"):
		return `{"root":"Stub Topic","branches":[{"topic":"Subtopic","children":["Detail"]}]}`
	}
	return `{}`
}
