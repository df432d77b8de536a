package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/luminastudy/studygen/internal/artifact"
)

// FileConfig is the YAML config file schema. Nested sections map
// naturally to flags and env variables; values from the file sit beneath
// flags, which always win.
type FileConfig struct {
	Input     string   `yaml:"input"`
	OutputDir string   `yaml:"outputDir"`
	URLs      []string `yaml:"urls"`

	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Generate struct {
		Kinds         []string `yaml:"kinds"`
		Flashcards    int      `yaml:"flashcards"`
		QuizQuestions int      `yaml:"quizQuestions"`
		Difficulty    string   `yaml:"difficulty"`
	} `yaml:"generate"`

	Fetch struct {
		Timeout      string `yaml:"timeout"`
		MinTextChars int    `yaml:"minTextChars"`
	} `yaml:"fetch"`

	CacheDir string `yaml:"cacheDir"`
	Verbose  bool   `yaml:"verbose"`
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config file: %w", err)
	}
	return fc, nil
}

// MergeFileConfig fills cfg fields from the file config. Flags already
// applied to cfg keep precedence; a field still equal to its registered
// flag default counts as unset, so file values are not shadowed by
// defaults the flag parser wrote into cfg.
func MergeFileConfig(cfg Config, fc FileConfig) (Config, error) {
	if cfg.InputPath == "" {
		cfg.InputPath = fc.Input
	}
	if (cfg.OutputDir == "" || cfg.OutputDir == DefaultOutputDir) && fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if len(cfg.URLs) == 0 {
		cfg.URLs = append(cfg.URLs, fc.URLs...)
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if len(cfg.Kinds) == 0 {
		for _, k := range fc.Generate.Kinds {
			kind := artifact.Kind(k)
			if !kind.Valid() {
				return cfg, fmt.Errorf("unknown artifact kind %q in config file", k)
			}
			cfg.Kinds = append(cfg.Kinds, kind)
		}
	}
	if (cfg.FlashcardCount == 0 || cfg.FlashcardCount == DefaultFlashcardCount) && fc.Generate.Flashcards > 0 {
		cfg.FlashcardCount = fc.Generate.Flashcards
	}
	if (cfg.QuizQuestionCount == 0 || cfg.QuizQuestionCount == DefaultQuizQuestionCount) && fc.Generate.QuizQuestions > 0 {
		cfg.QuizQuestionCount = fc.Generate.QuizQuestions
	}
	if (cfg.Difficulty == "" || cfg.Difficulty == DefaultDifficulty) && fc.Generate.Difficulty != "" {
		cfg.Difficulty = artifact.Difficulty(fc.Generate.Difficulty)
	}
	if (cfg.FetchTimeout == 0 || cfg.FetchTimeout == DefaultFetchTimeout) && fc.Fetch.Timeout != "" {
		d, err := time.ParseDuration(fc.Fetch.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("parse fetch timeout: %w", err)
		}
		cfg.FetchTimeout = d
	}
	if cfg.MinTextChars == 0 {
		cfg.MinTextChars = fc.Fetch.MinTextChars
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = fc.CacheDir
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}
