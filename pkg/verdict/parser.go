package verdict

import "strings"

// Verdict is the constrained outcome of a judgement-phase request.
type Verdict string

const (
	Affirmed     Verdict = "AFFIRMED"
	Contradicted Verdict = "CONTRADICTED"
	Unsupported  Verdict = "UNSUPPORTED"
	// Malformed covers backend output that carries none of the three
	// markers; the raw text is surfaced for manual audit instead of
	// being dropped.
	Malformed Verdict = "MALFORMED"
)

const nonStandardPrefix = "Non-standard response:\n"

// Result is what the user sees for a judgement request.
type Result struct {
	Verdict Verdict
	// Text is the user-facing rendering: the verdict token, or the raw
	// backend output behind a warning prefix when malformed.
	Text string
}

// Parse matches the raw backend text against the three verdict markers,
// tolerating a missing space after the colon and any letter case.
// Exactly one outcome is produced; Parse never fails.
func Parse(raw string) Result {
	upper := strings.ToUpper(raw)

	switch {
	case hasMarker(upper, "AFFIRMED"):
		return Result{Verdict: Affirmed, Text: string(Affirmed)}
	case hasMarker(upper, "CONTRADICTED"):
		return Result{Verdict: Contradicted, Text: string(Contradicted)}
	case hasMarker(upper, "UNSUPPORTED"):
		return Result{Verdict: Unsupported, Text: string(Unsupported) + " (content not found)"}
	default:
		return Result{Verdict: Malformed, Text: nonStandardPrefix + raw}
	}
}

func hasMarker(upper, token string) bool {
	return strings.Contains(upper, "VERDICT: "+token) ||
		strings.Contains(upper, "VERDICT:"+token)
}
