package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface the generation orchestrator needs from
// a chat backend. It mirrors CreateChatCompletion so any OpenAI-compatible
// or local server can stand in, and so tests can substitute fakes.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ModelLister is an optional capability for preflight connectivity checks.
// Callers detect availability with a type assertion.
type ModelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Config carries the backend endpoint and credential. The key is threaded
// here explicitly; core logic never reads it from the process environment.
type Config struct {
	BaseURL string
	APIKey  string
}

// OpenAIProvider adapts *openai.Client to the Client/ModelLister interfaces.
type OpenAIProvider struct {
	Inner *openai.Client
}

// New builds a provider for an OpenAI-compatible endpoint.
func New(cfg Config) *OpenAIProvider {
	transport := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		transport.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(transport)}
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

func (p *OpenAIProvider) ListModels(ctx context.Context) (openai.ModelsList, error) {
	return p.Inner.ListModels(ctx)
}
