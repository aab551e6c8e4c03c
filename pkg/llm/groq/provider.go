package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resolveia-be/pkg/llm"
)

// ModelFamily is resolved once at construction instead of re-deriving
// it from the model identifier on every call.
type ModelFamily int

const (
	// FamilyStandard covers the llama/mixtral style instruct models.
	FamilyStandard ModelFamily = iota
	// FamilyReasoning covers the gpt-oss reasoning models, which need a
	// high temperature and a larger completion budget.
	FamilyReasoning
)

// fallbackModel is a known-good default attempted once when the
// configured model fails. The configured "premium" model may be
// unavailable or misspelled; this keeps the request served.
const (
	fallbackModel       = "llama-3.3-70b-versatile"
	fallbackTemperature = 0.3

	reasoningTemperature = 1.0
	reasoningMaxTokens   = 8192
	reasoningEffort      = "medium"

	standardTemperature = 0.1
	standardMaxTokens   = 4096
)

// ResolveFamily classifies a Groq model identifier.
func ResolveFamily(model string) ModelFamily {
	lower := strings.ToLower(model)
	if strings.Contains(lower, "oss") || strings.Contains(lower, "120b") {
		return FamilyReasoning
	}
	return FamilyStandard
}

type Provider struct {
	apiKey  string
	baseURL string
	model   string
	family  ModelFamily
	client  *http.Client
}

var _ llm.Provider = &Provider{}

func New(apiKey, baseURL, model string) *Provider {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	if model == "" {
		model = fallbackModel
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		family:  ResolveFamily(model),
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *Provider) Name() string { return "Groq" }

// Family exposes the resolved model family, mostly for diagnostics.
func (p *Provider) Family() ModelFamily { return p.family }

// BaseModel is the model used for auxiliary low-temperature calls such
// as transcript cleaning.
func (p *Provider) BaseModel() string { return fallbackModel }

// --- Request/Response structs (OpenAI-compatible chat completions) ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         float64       `json:"temperature"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
	TopP                float64       `json:"top_p,omitempty"`
	ReasoningEffort     string        `json:"reasoning_effort,omitempty"`
	Stream              bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete calls the configured model with the profile of its family.
// When that call fails it retries exactly once against the hardcoded
// default model at a middle-ground temperature before reporting the
// failure to the caller.
func (p *Provider) Complete(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := p.defaultOptions()
	for _, o := range options {
		o(opts)
	}

	text, err := p.call(ctx, prompt, opts)
	if err == nil {
		return text, nil
	}

	if opts.Model == fallbackModel {
		return "", err
	}

	retryOpts := &llm.Options{
		Model:       fallbackModel,
		Temperature: fallbackTemperature,
	}
	text, retryErr := p.call(ctx, prompt, retryOpts)
	if retryErr != nil {
		return "", fmt.Errorf("groq %s failed (%v); fallback %s failed: %w",
			opts.Model, err, fallbackModel, retryErr)
	}
	return text, nil
}

func (p *Provider) defaultOptions() *llm.Options {
	if p.family == FamilyReasoning {
		return &llm.Options{
			Model:           p.model,
			Temperature:     reasoningTemperature,
			MaxTokens:       reasoningMaxTokens,
			ReasoningEffort: reasoningEffort,
		}
	}
	return &llm.Options{
		Model:       p.model,
		Temperature: standardTemperature,
		MaxTokens:   standardMaxTokens,
	}
}

func (p *Provider) call(ctx context.Context, prompt string, opts *llm.Options) (string, error) {
	reqPayload := chatRequest{
		Model:               opts.Model,
		Messages:            []chatMessage{{Role: "user", Content: prompt}},
		Temperature:         opts.Temperature,
		MaxCompletionTokens: opts.MaxTokens,
		TopP:                1,
		ReasoningEffort:     opts.ReasoningEffort,
		Stream:              false,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := p.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("groq error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
