// Package generate drives the generation backend through one structured
// request per requested artifact kind and recovers validated artifacts
// from the replies.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rs/zerolog/log"

	"github.com/luminastudy/studygen/internal/artifact"
	"github.com/luminastudy/studygen/internal/cache"
	"github.com/luminastudy/studygen/internal/llm"
	"github.com/luminastudy/studygen/internal/respjson"
)

// Options carries caller hints for artifact generation.
type Options struct {
	// FlashcardCount is the requested number of cards. Zero means the
	// default of 30.
	FlashcardCount int
	// QuizQuestionCount is the requested number of questions. Zero means
	// the default of 20.
	QuizQuestionCount int
	// Difficulty steers flashcards and quiz. Empty means mixed.
	Difficulty artifact.Difficulty
}

func (o Options) flashcardCount() int {
	if o.FlashcardCount > 0 {
		return o.FlashcardCount
	}
	return 30
}

func (o Options) quizQuestionCount() int {
	if o.QuizQuestionCount > 0 {
		return o.QuizQuestionCount
	}
	return 20
}

func (o Options) difficulty() artifact.Difficulty {
	if o.Difficulty != "" {
		return o.Difficulty
	}
	return artifact.DifficultyMixed
}

// Result maps each requested kind to its parsed artifact or its error.
// A kind appears in exactly one of the two maps.
type Result struct {
	Artifacts map[artifact.Kind]any
	Errors    map[artifact.Kind]error
}

// Generator submits per-kind requests to the backend. Each kind's
// request/reply/parse cycle is an independent unit of work; one kind
// failing or timing out cannot corrupt or abort its siblings.
type Generator struct {
	Client llm.Client
	Model  string
	Cache  *cache.ReplyCache
}

type kindOutcome struct {
	kind  artifact.Kind
	value any
	err   error
}

// Generate runs one request per requested kind concurrently and collects
// the outcomes. Unknown kinds are reported as per-kind errors. The caller
// context bounds every in-flight call; cancellation surfaces as per-kind
// failures, never as a whole-document one.
func (g *Generator) Generate(ctx context.Context, text, filename string, kinds []artifact.Kind, opts Options) Result {
	res := Result{
		Artifacts: make(map[artifact.Kind]any, len(kinds)),
		Errors:    make(map[artifact.Kind]error),
	}
	if g.Client == nil || strings.TrimSpace(g.Model) == "" {
		err := errors.New("generator not configured")
		for _, k := range kinds {
			res.Errors[k] = err
		}
		return res
	}

	outcomes := make(chan kindOutcome, len(kinds))
	for _, kind := range kinds {
		go func(k artifact.Kind) {
			value, err := g.generateKind(ctx, k, text, filename, opts)
			outcomes <- kindOutcome{kind: k, value: value, err: err}
		}(kind)
	}
	for range kinds {
		o := <-outcomes
		if o.err != nil {
			log.Warn().Err(o.err).Str("kind", string(o.kind)).Msg("artifact generation failed")
			res.Errors[o.kind] = o.err
			continue
		}
		res.Artifacts[o.kind] = o.value
	}
	return res
}

func (g *Generator) generateKind(ctx context.Context, kind artifact.Kind, text, filename string, opts Options) (any, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown artifact kind %q", kind)
	}
	spec := kindSpecs[kind]
	system := spec.system
	user := userPrompt(kind, filename, excerptFor(kind, text), opts)

	reply, err := g.complete(ctx, system, user, spec.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("%s backend call: %w", kind, err)
	}
	return parseKind(kind, reply)
}

// complete performs one chat call, consulting the reply cache first.
func (g *Generator) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	var key string
	if g.Cache != nil {
		key = cache.KeyFrom(g.Model, system+"\n\n"+user)
		if raw, ok, _ := g.Cache.Get(ctx, key); ok {
			var cached struct {
				Reply string `json:"reply"`
			}
			if err := json.Unmarshal(raw, &cached); err == nil && cached.Reply != "" {
				return cached.Reply, nil
			}
		}
	}
	resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		N:           1,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in backend reply")
	}
	reply := resp.Choices[0].Message.Content
	if strings.TrimSpace(reply) == "" {
		return "", errors.New("empty backend reply")
	}
	if g.Cache != nil {
		payload, _ := json.Marshal(map[string]string{"reply": reply})
		_ = g.Cache.Save(ctx, key, payload)
	}
	return reply, nil
}

// parseKind recovers the kind's expected shape from the raw reply.
// Validation is shape-only: a syntactically valid but empty artifact
// (zero questions, zero cards) is still accepted; only a reply with no
// coercible JSON structure fails.
func parseKind(kind artifact.Kind, reply string) (any, error) {
	switch kind {
	case artifact.KindSummary:
		var v artifact.Summary
		if err := respjson.Unmarshal(reply, &v); err != nil {
			return nil, err
		}
		return v, nil
	case artifact.KindCornellNotes:
		var v artifact.CornellNotes
		if err := respjson.Unmarshal(reply, &v); err != nil {
			return nil, err
		}
		return v, nil
	case artifact.KindFlashcards:
		var v []artifact.Flashcard
		if err := respjson.Unmarshal(reply, &v); err != nil {
			return nil, err
		}
		return v, nil
	case artifact.KindQuiz:
		var v artifact.Quiz
		if err := respjson.Unmarshal(reply, &v); err != nil {
			return nil, err
		}
		return v, nil
	case artifact.KindConceptMap:
		var v artifact.ConceptMap
		if err := respjson.Unmarshal(reply, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown artifact kind %q", kind)
}
