package factory

import (
	"context"
	"fmt"

	"resolveia-be/pkg/llm"
	"resolveia-be/pkg/llm/gemini"
	"resolveia-be/pkg/llm/groq"
)

// Backend pairs a provider with its startup availability. A backend
// whose credentials failed at startup is recorded and skipped at
// attempt time, never retried within a request.
type Backend struct {
	Name      string
	Provider  llm.Provider
	Available bool
	Reason    string // why unavailable, for the /status report
}

// Set holds the two configured backends in their fixed roles.
type Set struct {
	Primary   Backend // Gemini
	Secondary Backend // Groq
}

// NewBackendSet configures both backends, tolerating partial failure:
// a missing key disables that backend without failing startup.
func NewBackendSet(ctx context.Context, geminiKey, geminiModel, groqKey, groqModel string) *Set {
	set := &Set{}

	if geminiKey == "" {
		set.Primary = Backend{Name: "Gemini", Reason: "GEMINI_API_KEY not set"}
	} else if p, err := gemini.New(ctx, geminiKey, geminiModel); err != nil {
		set.Primary = Backend{Name: "Gemini", Reason: fmt.Sprintf("gemini init failed: %v", err)}
	} else {
		set.Primary = Backend{Name: p.Name(), Provider: p, Available: true}
	}

	if groqKey == "" {
		set.Secondary = Backend{Name: "Groq", Reason: "GROQ_API_KEY not set"}
	} else {
		p := groq.New(groqKey, "", groqModel)
		set.Secondary = Backend{Name: p.Name(), Provider: p, Available: true}
	}

	return set
}

// Ordered returns the attempt order for the given secondary-first flag.
func (s *Set) Ordered(secondaryFirst bool) []Backend {
	if secondaryFirst {
		return []Backend{s.Secondary, s.Primary}
	}
	return []Backend{s.Primary, s.Secondary}
}
