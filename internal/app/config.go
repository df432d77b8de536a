package app

import (
	"time"

	"github.com/luminastudy/studygen/internal/artifact"
)

// Config holds runtime configuration for the pipeline.
type Config struct {
	// InputPath points to a newline-separated list of document URLs.
	// URLs may also be given directly in the URL list.
	InputPath string
	URLs      []string
	OutputDir string

	// Backend
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Generation
	Kinds             []artifact.Kind
	FlashcardCount    int
	QuizQuestionCount int
	Difficulty        artifact.Difficulty

	// Acquisition
	FetchTimeout time.Duration
	MinTextChars int

	// Behavior
	CacheDir string
	Verbose  bool
}

// DefaultKinds is used when no artifact kinds are configured.
var DefaultKinds = artifact.AllKinds

// Flag defaults, shared between flag registration and the config-file
// merge so a file value can override a default the flag parser already
// wrote into Config.
const (
	DefaultOutputDir         = "studygen-out"
	DefaultFlashcardCount    = 30
	DefaultQuizQuestionCount = 20
	DefaultDifficulty        = artifact.DifficultyMixed
	DefaultFetchTimeout      = 60 * time.Second
)
