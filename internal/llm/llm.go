// Package llm is the provider boundary: one capability interface with
// interchangeable backends. The response parser downstream is shared and
// provider-agnostic; providers differ only in transport.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"contract-analyzer/internal/config"
	"contract-analyzer/internal/scan"
)

// Input carries everything one analysis request needs.
type Input struct {
	CompanyName string
	Text        string
	SearchTerms []string
	Stats       scan.Stats
	FailedDocs  []string
}

// Client abstracts an LLM backend for contract analysis.
type Client interface {
	// Analyze sends the company's document text and returns the model's
	// raw response text, unparsed.
	Analyze(ctx context.Context, in Input) (string, error)
	// Ping verifies the backend is reachable before a run starts.
	Ping(ctx context.Context) error
}

// ErrEmptyInput is returned when there is no text to analyze.
var ErrEmptyInput = errors.New("no text to analyze")

// New selects a provider implementation from configuration.
func New(cfg config.Config, logger *slog.Logger) (Client, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.LLMTimeoutSeconds, logger), nil
	case "perplexity":
		return NewPerplexity(cfg.PerplexityBaseURL, cfg.PerplexityModel, cfg.PerplexityAPIKey, cfg.LLMTimeoutSeconds, logger)
	case "gemini":
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
}
