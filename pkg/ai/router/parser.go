package router

import (
	"strings"
)

// Spoken command phrases - ORDER MATTERS for parsing (check longer phrase first)
var (
	savePhrases = []string{
		"salvar texto de apoio",
		"texto de apoio",
		"salvar texto",
		"guardar texto",
		"texto base",
	}
	clearPhrases = []string{
		"limpar texto de apoio",
		"apagar texto de apoio",
		"limpar texto",
		"apagar texto",
	}
)

// Mode classifies what a transcribed voice message asks the assistant to do.
type Mode string

const (
	ModeAsk          Mode = "ASK"          // Default: judge or answer the query
	ModeSaveContext  Mode = "SAVE_CONTEXT" // Store the dictated passage as supporting text
	ModeClearContext Mode = "CLEAR_CONTEXT"
)

// ParsedPrompt contains routing information extracted from a transcript.
type ParsedPrompt struct {
	OriginalPrompt string // Full original transcript
	CleanPrompt    string // Transcript without the command phrase
	Mode           Mode
}

// Parse classifies a transcript. A transcript that starts with a
// save-context phrase stores the remainder as the supporting text; a
// clear phrase wipes the slot; anything else is a regular query.
func Parse(prompt string) *ParsedPrompt {
	trimmed := strings.TrimSpace(prompt)
	lower := strings.ToLower(trimmed)

	for _, phrase := range clearPhrases {
		if matchesPhrase(lower, phrase) {
			return &ParsedPrompt{
				OriginalPrompt: prompt,
				CleanPrompt:    "",
				Mode:           ModeClearContext,
			}
		}
	}

	for _, phrase := range savePhrases {
		if strings.HasPrefix(lower, phrase) {
			rest := strings.TrimSpace(trimmed[len(phrase):])
			rest = strings.TrimLeft(rest, ":.,;- ")
			return &ParsedPrompt{
				OriginalPrompt: prompt,
				CleanPrompt:    rest,
				Mode:           ModeSaveContext,
			}
		}
	}

	return &ParsedPrompt{
		OriginalPrompt: prompt,
		CleanPrompt:    trimmed,
		Mode:           ModeAsk,
	}
}

// IsEmpty reports whether nothing useful remains after the command phrase.
func (p *ParsedPrompt) IsEmpty() bool {
	return strings.TrimSpace(p.CleanPrompt) == ""
}

// matchesPhrase accepts the phrase alone or followed by punctuation
// only; "limpar texto" inside a longer sentence stays a regular query.
func matchesPhrase(lower, phrase string) bool {
	if !strings.HasPrefix(lower, phrase) {
		return false
	}
	rest := strings.TrimSpace(lower[len(phrase):])
	return strings.Trim(rest, ".,;:!- ") == ""
}
