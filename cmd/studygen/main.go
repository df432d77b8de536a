package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/luminastudy/studygen/internal/app"
	"github.com/luminastudy/studygen/internal/artifact"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env is a convenience for local runs; missing files are fine.
	_ = godotenv.Load()

	var (
		inputPath    string
		outputDir    string
		configPath   string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		kindsFlag    string
		flashcards   int
		quizCount    int
		difficulty   string
		fetchTimeout time.Duration
		minChars     int
		cacheDir     string
		verbose      bool
	)

	flag.StringVar(&inputPath, "input", "", "Path to newline-separated list of document URLs")
	flag.StringVar(&outputDir, "output", app.DefaultOutputDir, "Directory for exports and results.jsonl")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file (flags win over file values)")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the generation backend")
	flag.StringVar(&kindsFlag, "kinds", "", "Comma-separated artifact kinds (summary,cornellNotes,flashcards,quiz,conceptMap); empty means all")
	flag.IntVar(&flashcards, "flashcards", app.DefaultFlashcardCount, "Number of flashcards to request")
	flag.IntVar(&quizCount, "quiz.questions", app.DefaultQuizQuestionCount, "Number of quiz questions to request")
	flag.StringVar(&difficulty, "difficulty", string(app.DefaultDifficulty), "Difficulty for flashcards and quiz: easy|medium|hard|mixed")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", app.DefaultFetchTimeout, "Per-document download timeout")
	flag.IntVar(&minChars, "min.textChars", 0, "Minimum usable text length (0 uses the default)")
	flag.StringVar(&cacheDir, "cache.dir", "", "Cache directory for documents and backend replies; empty disables caching")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		InputPath:         inputPath,
		URLs:              flag.Args(),
		OutputDir:         outputDir,
		LLMBaseURL:        llmBaseURL,
		LLMModel:          llmModel,
		LLMAPIKey:         llmKey,
		FlashcardCount:    flashcards,
		QuizQuestionCount: quizCount,
		Difficulty:        artifact.Difficulty(difficulty),
		FetchTimeout:      fetchTimeout,
		MinTextChars:      minChars,
		CacheDir:          cacheDir,
		Verbose:           verbose,
	}
	if kinds, err := parseKinds(kindsFlag); err != nil {
		log.Fatal().Err(err).Msg("invalid -kinds")
	} else {
		cfg.Kinds = kinds
	}
	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config file")
		}
		cfg, err = app.MergeFileConfig(cfg, fc)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config file")
		}
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func parseKinds(csv string) ([]artifact.Kind, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	var kinds []artifact.Kind
	for _, part := range strings.Split(csv, ",") {
		k := artifact.Kind(strings.TrimSpace(part))
		if !k.Valid() {
			return nil, fmt.Errorf("unknown artifact kind %q", k)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(context.Background())
}
