package gemini

import (
	"context"
	"fmt"
	"strings"

	"resolveia-be/pkg/llm"

	genai "google.golang.org/genai"
)

// defaultTemperature keeps the primary backend deterministic enough for
// item judgement. Callers may override per request.
const defaultTemperature = 0.1

// Provider is a thin wrapper around the official genai client. It only
// focuses on the API call itself; fallback and diagnostics are applied
// by the orchestrator.
type Provider struct {
	cli   *genai.Client
	model string
}

var _ llm.Provider = &Provider{}

func New(ctx context.Context, apiKey, model string) (*Provider, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Provider{cli: cli, model: model}, nil
}

func (p *Provider) Name() string { return "Gemini" }

func (p *Provider) Complete(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := &llm.Options{
		Temperature: defaultTemperature,
		Model:       p.model,
	}
	for _, o := range options {
		o(opts)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(opts.Temperature)),
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}

	resp, err := p.cli.Models.GenerateContent(ctx, opts.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		cfg,
	)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
