package prompt

import "strings"

// Renderer is the strategy for the discursive phase. Every renderer
// embeds context and query, instructs verbalized punctuation (the
// answer is spoken back to the user), sets a line-count band and
// forbids visible structural markers.
type Renderer interface {
	Render(query, context string) string
}

// DictationRenderer produces the terse dictation-style template: the
// answer is meant to be written down as it is read out.
type DictationRenderer struct{}

var _ Renderer = DictationRenderer{}

func (DictationRenderer) Render(query, context string) string {
	var p strings.Builder

	p.WriteString("# PERSONA\n")
	p.WriteString("You are an expert tutor for a high-stakes written exam. ")
	p.WriteString("Your answer will be converted to audio: keep a formal register and a dictation rhythm.\n\n")

	p.WriteString("--- CONTEXT (SOURCE OF TRUTH) ---\n")
	p.WriteString(context)
	p.WriteString("\n---------------------------------\n\n")

	p.WriteString("# DISCURSIVE TRAINING AND DICTATION MODE\n")
	p.WriteString("- The user asked for an essay, a summary or a discursive question.\n")
	p.WriteString("- YOUR MISSION: dictate a model answer.\n\n")

	p.WriteString("LINE LIMITS (exam board convention):\n")
	p.WriteString("* Essay: 65 to 70 lines.\n")
	p.WriteString("* Summary: at most 30 lines.\n")
	p.WriteString("* Discursive question: 40 to 60 lines.\n\n")

	p.WriteString("DICTATION STYLE:\n")
	p.WriteString("* Open with: \"Here is a suggested model answer. Get ready for dictation.\"\n")
	p.WriteString("* Dictate the text at a slow pace.\n")
	p.WriteString("* VERBALIZE THE PUNCTUATION (say \"comma\", \"period\", \"open quotes\").\n")
	p.WriteString("* Never use numbered lists, bullet points or headings in the dictated text.\n\n")

	p.WriteString("USER INPUT:\n")
	p.WriteString(query)

	return p.String()
}

// EssayRenderer produces the flowing-essay variant: same contract,
// looser rhythm, aimed at revision reading rather than word-for-word
// dictation.
type EssayRenderer struct{}

var _ Renderer = EssayRenderer{}

func (EssayRenderer) Render(query, context string) string {
	var p strings.Builder

	p.WriteString("# PERSONA\n")
	p.WriteString("You are an examiner writing a reference answer that will be read aloud to a candidate.\n\n")

	p.WriteString("--- CONTEXT (SOURCE OF TRUTH) ---\n")
	p.WriteString(context)
	p.WriteString("\n---------------------------------\n\n")

	p.WriteString("GUIDELINES:\n")
	p.WriteString("* Write a single continuous essay answering the question below.\n")
	p.WriteString("* Target between 40 and 60 lines of dictated prose.\n")
	p.WriteString("* VERBALIZE THE PUNCTUATION so the listener can transcribe it (say \"comma\", \"period\").\n")
	p.WriteString("* Do not use numbered lists, bullet points, headings or any visible structural marker.\n")
	p.WriteString("* Ground every claim in the context above; do not invent sources.\n\n")

	p.WriteString("QUESTION:\n")
	p.WriteString(query)

	return p.String()
}
