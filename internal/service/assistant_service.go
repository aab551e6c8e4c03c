package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"resolveia-be/pkg/knowledge"
	"resolveia-be/pkg/llm"
	"resolveia-be/pkg/llm/factory"
	"resolveia-be/pkg/prompt"
	"resolveia-be/pkg/retrieval"
	"resolveia-be/pkg/store"
	"resolveia-be/pkg/verdict"
)

// Source labels attached to every answer.
const (
	SourceSystem  = "system"
	SourceOffline = "offline"
)

// lookupMinQueryLen: queries at or below this length skip the external
// knowledge lookup entirely.
const lookupMinQueryLen = 15

const supportingTextTag = "[SUPPORTING TEXT] "

// Answer is the outcome of one request cycle. Every failure path
// produces an Answer; Process never returns an error and never panics.
type Answer struct {
	Text   string
	Source string
}

// Attempt records one backend try for the aggregated offline report.
type Attempt struct {
	Backend string
	Reason  string
}

func (a Attempt) String() string {
	return fmt.Sprintf("%s: %s", a.Backend, a.Reason)
}

// IAssistantService sequences retrieval, prompt construction, the
// ordered backend attempts and the phase-specific response parsing.
type IAssistantService interface {
	Process(ctx context.Context, session *store.Session, query string) Answer
}

type assistantService struct {
	retriever retrieval.Retriever
	lookup    *knowledge.Client
	builder   *prompt.Builder
	backends  *factory.Set
	timeout   time.Duration
	llmLogger *log.Logger
}

func NewAssistantService(
	retriever retrieval.Retriever,
	lookup *knowledge.Client,
	builder *prompt.Builder,
	backends *factory.Set,
	completionTimeout time.Duration,
	llmLogger *log.Logger,
) IAssistantService {
	if llmLogger == nil {
		llmLogger = log.New(io.Discard, "", 0)
	}
	return &assistantService{
		retriever: retriever,
		lookup:    lookup,
		builder:   builder,
		backends:  backends,
		timeout:   completionTimeout,
		llmLogger: llmLogger,
	}
}

// InitLLMLogger opens the dedicated pipeline log file, falling back to
// stdout when the directory cannot be created.
func InitLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (s *assistantService) Process(ctx context.Context, session *store.Session, query string) Answer {
	// 1. Primary context. The stub retriever never fails, but the
	// contract allows a real index to come back empty.
	material, err := s.retriever.Retrieve(ctx, query)
	if err != nil || strings.TrimSpace(material) == "" {
		if err != nil {
			s.llmLogger.Printf("[PROCESS] retrieval failed: %v", err)
		}
		return Answer{
			Text:   "No material found on this subject in the knowledge base.",
			Source: SourceSystem,
		}
	}

	var parts []string

	// Stored supporting text precedes everything the user asks later,
	// including the retrieved material, which embeds the query itself.
	if session.SupportingText != "" {
		parts = append(parts, supportingTextTag+session.SupportingText)
	}
	parts = append(parts, material)

	// 2. Supplementary lookup, only for queries long enough to carry a
	// searchable subject. Empty results concatenate harmlessly.
	if s.lookup != nil && utf8.RuneCountInString(query) > lookupMinQueryLen {
		if extra := s.lookup.Lookup(ctx, query); extra != "" {
			parts = append(parts, extra)
		}
	}

	// 3. Prompt.
	finalPrompt := s.builder.Build(query, strings.Join(parts, "\n\n"), session.Phase)

	// 4-6. Ordered attempts, first non-empty response wins.
	raw, source, attempts := s.attemptBackends(ctx, finalPrompt, session.Priority)
	if raw == "" {
		return Answer{
			Text:   s.offlineMessage(attempts),
			Source: SourceOffline,
		}
	}

	// 7. Phase-specific parsing.
	if session.Phase == store.PhaseJudgement {
		result := verdict.Parse(raw)
		s.llmLogger.Printf("[PROCESS] verdict=%s via %s", result.Verdict, source)
		return Answer{Text: result.Text, Source: source}
	}
	return Answer{Text: strings.TrimSpace(raw), Source: source}
}

// attemptBackends walks the priority-ordered backend list. Failures and
// empty responses are recorded as diagnostics and never abort the loop.
func (s *assistantService) attemptBackends(ctx context.Context, finalPrompt string, priority store.Priority) (string, string, []Attempt) {
	ordered := s.backends.Ordered(priority == store.PrioritySecondary)

	var attempts []Attempt
	for _, backend := range ordered {
		if !backend.Available {
			attempts = append(attempts, Attempt{Backend: backend.Name, Reason: "unavailable: " + backend.Reason})
			continue
		}

		s.llmLogger.Printf("[PROCESS] trying %s", backend.Name)
		raw, err := s.complete(ctx, backend.Provider, finalPrompt)
		if err != nil {
			attempts = append(attempts, Attempt{Backend: backend.Name, Reason: err.Error()})
			s.llmLogger.Printf("[PROCESS] %s failed: %v", backend.Name, err)
			continue
		}
		if strings.TrimSpace(raw) == "" {
			attempts = append(attempts, Attempt{Backend: backend.Name, Reason: "empty response"})
			continue
		}
		return raw, backend.Name, attempts
	}
	return "", "", attempts
}

func (s *assistantService) complete(ctx context.Context, provider llm.Provider, finalPrompt string) (text string, err error) {
	// A panicking provider must not take the consumer down; convert it
	// to a recorded failure like any other.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return provider.Complete(callCtx, finalPrompt)
}

func (s *assistantService) offlineMessage(attempts []Attempt) string {
	reasons := make([]string, len(attempts))
	for i, a := range attempts {
		reasons[i] = a.String()
	}
	return "No model backend produced an answer. " + strings.Join(reasons, "; ")
}
