package transcript

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"resolveia-be/pkg/llm"
)

// minLen below which cleaning is a no-op; there is nothing to fix in a
// fragment that short.
const minLen = 5

// Cleaner reformats raw speech-to-text output into punctuated prose via
// one low-temperature call to the secondary backend's base model. It
// fails open: on any error the raw transcript is returned unchanged so
// the pipeline is never blocked.
type Cleaner struct {
	provider  llm.Provider
	baseModel string
	logger    *log.Logger
}

func NewCleaner(provider llm.Provider, baseModel string, logger *log.Logger) *Cleaner {
	return &Cleaner{provider: provider, baseModel: baseModel, logger: logger}
}

func (c *Cleaner) Clean(ctx context.Context, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) < minLen {
		return raw
	}
	if c.provider == nil {
		return raw
	}

	cleaned, err := c.provider.Complete(ctx, buildInstruction(trimmed),
		llm.WithModel(c.baseModel),
		llm.WithTemperature(0.1),
	)
	if err != nil || strings.TrimSpace(cleaned) == "" {
		if err != nil && c.logger != nil {
			c.logger.Printf("[TRANSCRIPT] cleaning failed, keeping raw text: %v", err)
		}
		return raw
	}
	return cleaned
}

func buildInstruction(raw string) string {
	var p strings.Builder

	p.WriteString("Reformat the raw speech transcription below. Rules:\n")
	p.WriteString("1. Add punctuation and capitalization.\n")
	p.WriteString("2. Fix obvious phonetic mis-transcriptions using the surrounding context.\n")
	p.WriteString("3. Normalize spoken exam patterns: a spoken \"item\" followed by a number becomes \"Item N\".\n")
	p.WriteString("4. Capitalize proper nouns and acronyms.\n")
	p.WriteString("5. Return ONLY the corrected text, nothing else.\n\n")
	p.WriteString("RAW TRANSCRIPTION:\n")
	p.WriteString(raw)

	return p.String()
}
