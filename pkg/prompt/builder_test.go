package prompt

import (
	"strings"
	"testing"

	"resolveia-be/pkg/store"
)

func TestBuildJudgementEmbedsInputs(t *testing.T) {
	b := NewBuilder(nil)

	got := b.Build("o Brasil participa do G20", "[RAG CONTEXT] material", store.PhaseJudgement)

	if !strings.Contains(got, "o Brasil participa do G20") {
		t.Error("prompt missing query")
	}
	if !strings.Contains(got, "[RAG CONTEXT] material") {
		t.Error("prompt missing context")
	}
	for _, marker := range []string{"VERDICT: AFFIRMED", "VERDICT: CONTRADICTED", "VERDICT: UNSUPPORTED"} {
		if !strings.Contains(got, marker) {
			t.Errorf("prompt missing marker %q", marker)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder(nil)

	for _, phase := range []store.Phase{store.PhaseJudgement, store.PhaseDiscursive} {
		first := b.Build("query", "context", phase)
		second := b.Build("query", "context", phase)
		if first != second {
			t.Errorf("phase %s: prompts differ between identical calls", phase)
		}
	}
}

func TestDiscursiveRenderersContract(t *testing.T) {
	renderers := map[string]Renderer{
		"dictation": DictationRenderer{},
		"essay":     EssayRenderer{},
	}

	for name, r := range renderers {
		t.Run(name, func(t *testing.T) {
			got := r.Render("explique o Mercosul", "[RAG CONTEXT] bloco regional")

			if !strings.Contains(got, "explique o Mercosul") {
				t.Error("missing query")
			}
			if !strings.Contains(got, "[RAG CONTEXT] bloco regional") {
				t.Error("missing context")
			}
			if !strings.Contains(strings.ToUpper(got), "VERBALIZE THE PUNCTUATION") {
				t.Error("missing verbalized punctuation instruction")
			}
			if !strings.Contains(got, "lines") {
				t.Error("missing line-count band")
			}
			if !strings.Contains(got, "numbered lists") {
				t.Error("missing structural-marker prohibition")
			}
		})
	}
}

func TestBuildDiscursiveUsesRendererStrategy(t *testing.T) {
	dictation := NewBuilder(DictationRenderer{}).Build("q", "c", store.PhaseDiscursive)
	essay := NewBuilder(EssayRenderer{}).Build("q", "c", store.PhaseDiscursive)

	if dictation == essay {
		t.Error("renderer strategies should produce distinct templates")
	}
	if !strings.Contains(dictation, "Get ready for dictation") {
		t.Error("dictation template missing opening instruction")
	}
}
