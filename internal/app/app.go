package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/luminastudy/studygen/internal/artifact"
	"github.com/luminastudy/studygen/internal/cache"
	"github.com/luminastudy/studygen/internal/export"
	"github.com/luminastudy/studygen/internal/fetch"
	"github.com/luminastudy/studygen/internal/generate"
	"github.com/luminastudy/studygen/internal/ingest"
	"github.com/luminastudy/studygen/internal/llm"
)

// ErrNoDocuments is returned when neither the input file nor the flags
// yield any document URLs.
var ErrNoDocuments = errors.New("no document URLs provided")

// Statistics summarizes the processed text and generated artifacts for
// one document.
type Statistics struct {
	TextLength        int    `json:"textLength"`
	WordCount         int    `json:"wordCount"`
	EstimatedReadTime string `json:"estimatedReadTime"`
	FlashcardCount    int    `json:"flashcardCount"`
	QuizQuestionCount int    `json:"quizQuestionCount"`
}

// Record is the caller-facing summary for one input document. One record
// is emitted per URL: acquisition failures produce a failed record, and
// per-kind generation failures leave the document successful with the
// kind absent from Artifacts.
type Record struct {
	ContentID   string                `json:"contentId,omitempty"`
	Filename    string                `json:"filename,omitempty"`
	SourceURL   string                `json:"sourceUrl"`
	Format      string                `json:"format,omitempty"`
	ProcessedAt time.Time             `json:"processedAt"`
	Artifacts   map[artifact.Kind]any `json:"studyMaterials,omitempty"`
	Exports     map[string]string     `json:"exports,omitempty"`
	Statistics  *Statistics           `json:"statistics,omitempty"`
	Status      string                `json:"status"`
	Error       string                `json:"error,omitempty"`
}

// App wires the acquisition coordinator, the generation orchestrator and
// the export collaborator into one per-document pipeline.
type App struct {
	cfg         Config
	coordinator *ingest.Coordinator
	generator   *generate.Generator
}

// New builds the pipeline from configuration. The backend credential is
// taken from cfg only; nothing here reads ambient process state.
func New(cfg Config) (*App, error) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if len(cfg.Kinds) == 0 {
		cfg.Kinds = DefaultKinds
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	var docCache *cache.DocCache
	var replyCache *cache.ReplyCache
	if cfg.CacheDir != "" {
		docCache = &cache.DocCache{Dir: filepath.Join(cfg.CacheDir, "docs")}
		replyCache = &cache.ReplyCache{Dir: filepath.Join(cfg.CacheDir, "replies")}
	}

	client := llm.New(llm.Config{BaseURL: cfg.LLMBaseURL, APIKey: cfg.LLMAPIKey})
	return &App{
		cfg: cfg,
		coordinator: &ingest.Coordinator{
			Client: &fetch.Client{
				HTTPClient:        &http.Client{},
				UserAgent:         "studygen/1.0 (+https://github.com/luminastudy/studygen)",
				PerRequestTimeout: timeout,
				Cache:             docCache,
				RedirectMaxHops:   5,
				MaxConcurrent:     8,
			},
			MinTextChars: cfg.MinTextChars,
		},
		generator: &generate.Generator{
			Client: client,
			Model:  cfg.LLMModel,
			Cache:  replyCache,
		},
	}, nil
}

// Run processes every configured document URL sequentially and appends
// one record per document to results.jsonl in the output directory.
// Documents are independent: a failure is recorded and the run continues.
func (a *App) Run(ctx context.Context) error {
	urls, err := a.documentURLs()
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return ErrNoDocuments
	}
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	results, err := os.OpenFile(filepath.Join(a.cfg.OutputDir, "results.jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}
	defer results.Close()
	enc := json.NewEncoder(results)

	log.Info().Int("documents", len(urls)).Msg("processing documents")
	for i, url := range urls {
		log.Info().Str("url", url).Msgf("[%d/%d] processing", i+1, len(urls))
		rec := a.processOne(ctx, url)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return nil
}

// processOne runs the full pipeline for a single document URL and always
// returns a record.
func (a *App) processOne(ctx context.Context, url string) Record {
	rec := Record{SourceURL: url, ProcessedAt: time.Now().UTC(), Status: "success"}

	src, err := a.coordinator.Acquire(ctx, url)
	switch {
	case errors.Is(err, ingest.ErrInsufficientContent):
		// Content-quality gate, not a hard failure: record the document
		// without artifacts and move on.
		log.Warn().Str("url", url).Msg("insufficient text extracted; skipping generation")
		fillSource(&rec, src)
		return rec
	case err != nil:
		log.Error().Err(err).Str("url", url).Msg("acquisition failed")
		rec.Status = "failed"
		rec.Error = err.Error()
		return rec
	}
	fillSource(&rec, src)
	log.Info().Stringer("format", src.Format).Int("chars", len(src.Text)).Msg("text extracted")

	result := a.generator.Generate(ctx, src.Text, src.DeclaredName, a.cfg.Kinds, generate.Options{
		FlashcardCount:    a.cfg.FlashcardCount,
		QuizQuestionCount: a.cfg.QuizQuestionCount,
		Difficulty:        a.cfg.Difficulty,
	})
	rec.Artifacts = result.Artifacts
	fillArtifactStats(&rec, result.Artifacts)

	set, err := export.Build(result.Artifacts, export.Meta{
		Filename:    src.DeclaredName,
		SourceURL:   url,
		ProcessedAt: rec.ProcessedAt,
	})
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("export rendering failed")
		return rec
	}
	written, err := export.Write(a.cfg.OutputDir, src.ContentID, set)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("export write failed")
		return rec
	}
	rec.Exports = written
	return rec
}

func (a *App) documentURLs() ([]string, error) {
	urls := append([]string(nil), a.cfg.URLs...)
	if a.cfg.InputPath != "" {
		raw, err := os.ReadFile(a.cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		for _, line := range strings.Split(string(raw), "\n") {
			if s := strings.TrimSpace(line); s != "" {
				urls = append(urls, s)
			}
		}
	}
	return urls, nil
}

func fillSource(rec *Record, src *ingest.Source) {
	if src == nil {
		return
	}
	rec.ContentID = src.ContentID
	rec.Filename = src.DeclaredName
	rec.Format = src.Format.String()
	words := len(strings.Fields(src.Text))
	rec.Statistics = &Statistics{
		TextLength:        len(src.Text),
		WordCount:         words,
		EstimatedReadTime: fmt.Sprintf("%dm", words/200),
	}
}

func fillArtifactStats(rec *Record, artifacts map[artifact.Kind]any) {
	if rec.Statistics == nil {
		return
	}
	if cards, ok := artifacts[artifact.KindFlashcards].([]artifact.Flashcard); ok {
		rec.Statistics.FlashcardCount = len(cards)
	}
	if quiz, ok := artifacts[artifact.KindQuiz].(artifact.Quiz); ok {
		rec.Statistics.QuizQuestionCount = len(quiz.Questions)
	}
}
