package router

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name            string
		prompt          string
		wantMode        Mode
		wantCleanPrompt string
	}{
		{
			name:            "plain query",
			prompt:          "Julgue o item: o Brasil participa do G20.",
			wantMode:        ModeAsk,
			wantCleanPrompt: "Julgue o item: o Brasil participa do G20.",
		},
		{
			name:            "save with texto de apoio",
			prompt:          "Texto de apoio: a Constituição de 1988 estabelece os fundamentos da República.",
			wantMode:        ModeSaveContext,
			wantCleanPrompt: "a Constituição de 1988 estabelece os fundamentos da República.",
		},
		{
			name:            "save with texto base",
			prompt:          "texto base o Mercosul foi criado em 1991",
			wantMode:        ModeSaveContext,
			wantCleanPrompt: "o Mercosul foi criado em 1991",
		},
		{
			name:            "clear command",
			prompt:          "Limpar texto de apoio.",
			wantMode:        ModeClearContext,
			wantCleanPrompt: "",
		},
		{
			name:            "clear short form",
			prompt:          "apagar texto",
			wantMode:        ModeClearContext,
			wantCleanPrompt: "",
		},
		{
			name:            "clear phrase inside a sentence stays a query",
			prompt:          "limpar texto de lei é tarefa do legislador",
			wantMode:        ModeAsk,
			wantCleanPrompt: "limpar texto de lei é tarefa do legislador",
		},
		{
			name:            "item query is not a save command",
			prompt:          "Item 5: a política externa brasileira é pautada pela não intervenção.",
			wantMode:        ModeAsk,
			wantCleanPrompt: "Item 5: a política externa brasileira é pautada pela não intervenção.",
		},
		{
			name:            "save with empty remainder",
			prompt:          "texto de apoio",
			wantMode:        ModeSaveContext,
			wantCleanPrompt: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.prompt)

			if result.Mode != tt.wantMode {
				t.Errorf("Mode = %s, want %s", result.Mode, tt.wantMode)
			}
			if result.CleanPrompt != tt.wantCleanPrompt {
				t.Errorf("CleanPrompt = %q, want %q", result.CleanPrompt, tt.wantCleanPrompt)
			}
			if result.OriginalPrompt != tt.prompt {
				t.Errorf("OriginalPrompt = %q, want %q", result.OriginalPrompt, tt.prompt)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	if !Parse("texto de apoio").IsEmpty() {
		t.Error("save command with no body should be empty")
	}
	if Parse("texto de apoio: conteúdo").IsEmpty() {
		t.Error("save command with body should not be empty")
	}
}
