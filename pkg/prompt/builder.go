package prompt

import (
	"strings"

	"resolveia-be/pkg/store"
)

// Builder renders the instruction prompt for one backend call. It is a
// pure function of (query, context, phase): no escaping or sanitizing
// is performed on either input.
type Builder struct {
	discursive Renderer
}

func NewBuilder(discursive Renderer) *Builder {
	if discursive == nil {
		discursive = DictationRenderer{}
	}
	return &Builder{discursive: discursive}
}

// Build renders the template for the given phase with the context and
// query embedded verbatim.
func (b *Builder) Build(query, context string, phase store.Phase) string {
	if phase == store.PhaseJudgement {
		return buildJudgement(query, context)
	}
	return b.discursive.Render(query, context)
}

func buildJudgement(query, context string) string {
	var p strings.Builder

	p.WriteString("ACT AS A LOGICAL CLASSIFIER OF TRUE/FALSE EXAM ITEMS.\n\n")

	p.WriteString("--- CONTEXT (SOURCE OF TRUTH) ---\n")
	p.WriteString(context)
	p.WriteString("\n---------------------------------\n\n")

	p.WriteString("USER INPUT: \"")
	p.WriteString(query)
	p.WriteString("\"\n\n")

	p.WriteString("YOUR TASK:\n")
	p.WriteString("1. Identify the key facts (dates, names, concepts).\n")
	p.WriteString("2. Check whether the context supports those facts.\n")
	p.WriteString("3. Check whether any cause-and-effect relation is stated correctly.\n")
	p.WriteString("4. Watch for trap words (\"only\", \"except\", \"never\").\n\n")

	p.WriteString("STRICT OUTPUT RULES:\n")
	p.WriteString("1. If the statement is true according to the context -> answer: \"VERDICT: AFFIRMED\"\n")
	p.WriteString("2. If the statement is false according to the context -> answer: \"VERDICT: CONTRADICTED\"\n")
	p.WriteString("3. If the context does not mention the subject -> answer: \"VERDICT: UNSUPPORTED\"\n\n")

	p.WriteString("FORBIDDEN:\n")
	p.WriteString("- Do NOT greet the user.\n")
	p.WriteString("- Do NOT explain the reason.\n")
	p.WriteString("- Do NOT use final punctuation.\n")
	p.WriteString("- Do NOT complete the sentence around the verdict.\n\n")

	p.WriteString("Your answer must contain EXACTLY ONE of the three verdict lines above.")

	return p.String()
}
