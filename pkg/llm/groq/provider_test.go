package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveFamily(t *testing.T) {
	tests := []struct {
		model string
		want  ModelFamily
	}{
		{"openai/gpt-oss-120b", FamilyReasoning},
		{"gpt-OSS-20b", FamilyReasoning},
		{"some-120b-preview", FamilyReasoning},
		{"llama-3.3-70b-versatile", FamilyStandard},
		{"mixtral-8x7b-32768", FamilyStandard},
		{"", FamilyStandard},
	}

	for _, tt := range tests {
		if got := ResolveFamily(tt.model); got != tt.want {
			t.Errorf("ResolveFamily(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}

func okResponse(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return b
}

func TestCompleteReasoningProfile(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write(okResponse("VERDICT: AFFIRMED"))
	}))
	defer srv.Close()

	p := New("test-key", srv.URL, "openai/gpt-oss-120b")

	text, err := p.Complete(context.Background(), "judge this item")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "VERDICT: AFFIRMED" {
		t.Errorf("Complete() = %q", text)
	}
	if got.Model != "openai/gpt-oss-120b" {
		t.Errorf("Model = %q", got.Model)
	}
	if got.Temperature != reasoningTemperature {
		t.Errorf("Temperature = %v, want %v", got.Temperature, reasoningTemperature)
	}
	if got.MaxCompletionTokens != reasoningMaxTokens {
		t.Errorf("MaxCompletionTokens = %d, want %d", got.MaxCompletionTokens, reasoningMaxTokens)
	}
	if got.ReasoningEffort != reasoningEffort {
		t.Errorf("ReasoningEffort = %q, want %q", got.ReasoningEffort, reasoningEffort)
	}
}

func TestCompleteStandardProfile(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write(okResponse("ok"))
	}))
	defer srv.Close()

	p := New("test-key", srv.URL, "llama-3.3-70b-versatile")

	if _, err := p.Complete(context.Background(), "hello"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got.Temperature != standardTemperature {
		t.Errorf("Temperature = %v, want %v", got.Temperature, standardTemperature)
	}
	if got.MaxCompletionTokens != standardMaxTokens {
		t.Errorf("MaxCompletionTokens = %d, want %d", got.MaxCompletionTokens, standardMaxTokens)
	}
	if got.ReasoningEffort != "" {
		t.Errorf("ReasoningEffort = %q, want empty", got.ReasoningEffort)
	}
}

func TestCompleteFallsBackToDefaultModel(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)

		if req.Model != fallbackModel {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"model not found"}}`))
			return
		}
		if req.Temperature != fallbackTemperature {
			t.Errorf("fallback Temperature = %v, want %v", req.Temperature, fallbackTemperature)
		}
		w.Write(okResponse("recovered"))
	}))
	defer srv.Close()

	p := New("test-key", srv.URL, "openai/gpt-oss-120b")

	text, err := p.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "recovered" {
		t.Errorf("Complete() = %q", text)
	}
	if len(models) != 2 || models[0] != "openai/gpt-oss-120b" || models[1] != fallbackModel {
		t.Errorf("attempted models = %v", models)
	}
}

func TestCompleteBothModelsFail(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := New("test-key", srv.URL, "openai/gpt-oss-120b")

	if _, err := p.Complete(context.Background(), "hello"); err == nil {
		t.Fatal("Complete() expected error, got nil")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (configured model + one fallback)", calls)
	}
}

func TestCompleteNoSecondRetryWhenAlreadyOnFallbackModel(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := New("test-key", srv.URL, fallbackModel)

	if _, err := p.Complete(context.Background(), "hello"); err == nil {
		t.Fatal("Complete() expected error, got nil")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
