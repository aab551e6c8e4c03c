package llm

import (
	"context"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature     float64
	MaxTokens       int
	Model           string // Override default model
	ReasoningEffort string // "low", "medium", "high" for reasoning-family models
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithReasoningEffort(effort string) Option {
	return func(o *Options) {
		o.ReasoningEffort = effort
	}
}

// Provider defines the contract for any text-generation backend.
// A call is single-shot and synchronous; streaming is not part of the
// contract even when the underlying transport supports it.
type Provider interface {
	// Complete sends a single prompt to the model and returns the
	// generated text. Transport and validation errors are returned to
	// the caller; the fallback policy lives in the orchestrator.
	Complete(ctx context.Context, prompt string, options ...Option) (string, error)

	// Name identifies the backend in diagnostics and source labels.
	Name() string
}
