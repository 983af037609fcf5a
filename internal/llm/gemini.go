package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// Gemini talks to the Gemini API through the official GenAI SDK.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	log     *slog.Logger
}

// NewGemini returns a Gemini client. baseURL may be empty to use the SDK's
// default endpoint.
func NewGemini(apiKey, model, baseURL string, logger *slog.Logger) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return &Gemini{apiKey: apiKey, model: model, baseURL: baseURL, log: logger}, nil
}

func (c *Gemini) newClient(ctx context.Context) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	return genai.NewClient(ctx, cfg)
}

// Analyze sends the analysis prompt and returns the model's raw reply text.
func (c *Gemini) Analyze(ctx context.Context, in Input) (string, error) {
	if strings.TrimSpace(in.Text) == "" {
		return "", ErrEmptyInput
	}

	client, err := c.newClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	c.log.Info("sending analysis request", "provider", "gemini", "model", c.model, "company", in.CompanyName)

	result, err := client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(BuildPrompt(in)),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini analysis for %s: %w", in.CompanyName, err)
	}
	return result.Text(), nil
}

// Ping issues a minimal generation so a bad key or unreachable endpoint is
// caught before the run starts.
func (c *Gemini) Ping(ctx context.Context) error {
	client, err := c.newClient(ctx)
	if err != nil {
		return fmt.Errorf("cannot initialize gemini client: %w", err)
	}
	if _, err := client.Models.GenerateContent(ctx, c.model, genai.Text("Hello"), nil); err != nil {
		return fmt.Errorf("gemini not available: %w", err)
	}
	return nil
}
