package verdict

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Verdict
	}{
		{"affirmed with space", "VERDICT: AFFIRMED", Affirmed},
		{"affirmed without space", "VERDICT:AFFIRMED", Affirmed},
		{"affirmed lowercase", "verdict: affirmed", Affirmed},
		{"affirmed embedded in reasoning", "After checking the facts... VERDICT: AFFIRMED", Affirmed},
		{"contradicted with space", "VERDICT: CONTRADICTED", Contradicted},
		{"contradicted without space", "verdict:contradicted", Contradicted},
		{"unsupported with space", "VERDICT: UNSUPPORTED", Unsupported},
		{"unsupported without space", "VERDICT:UNSUPPORTED", Unsupported},
		{"no marker", "Eu acho que está errado", Malformed},
		{"empty input", "", Malformed},
		{"marker word without prefix", "The item is AFFIRMED", Malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if got.Verdict != tt.want {
				t.Errorf("Parse(%q).Verdict = %s, want %s", tt.raw, got.Verdict, tt.want)
			}
		})
	}
}

func TestParseUnsupportedTagged(t *testing.T) {
	got := Parse("VERDICT: UNSUPPORTED")
	if !strings.Contains(got.Text, "content not found") {
		t.Errorf("Text = %q, want content-not-found tag", got.Text)
	}
}

func TestParseMalformedKeepsRawText(t *testing.T) {
	raw := "Eu acho que está errado"
	got := Parse(raw)

	if !strings.HasPrefix(got.Text, nonStandardPrefix) {
		t.Errorf("Text = %q, want warning prefix", got.Text)
	}
	if !strings.Contains(got.Text, raw) {
		t.Errorf("Text = %q, must keep the raw output for audit", got.Text)
	}
}
