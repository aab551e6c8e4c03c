package transcript

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resolveia-be/pkg/llm"
)

type fakeProvider struct {
	reply string
	err   error
	calls int
	opts  llm.Options
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls++
	for _, o := range options {
		o(&f.opts)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestCleanShortInputIsNoOp(t *testing.T) {
	p := &fakeProvider{reply: "should not be used"}
	c := NewCleaner(p, "llama-3.3-70b-versatile", nil)

	if got := c.Clean(context.Background(), "oi"); got != "oi" {
		t.Errorf("Clean() = %q, want input unchanged", got)
	}
	if p.calls != 0 {
		t.Errorf("provider calls = %d, want 0", p.calls)
	}
}

func TestCleanUsesBaseModelLowTemperature(t *testing.T) {
	p := &fakeProvider{reply: "Item 5: o Brasil participa do G20."}
	c := NewCleaner(p, "llama-3.3-70b-versatile", nil)

	got := c.Clean(context.Background(), "item cinco o brasil participa do g20")
	if got != "Item 5: o Brasil participa do G20." {
		t.Errorf("Clean() = %q", got)
	}
	if p.opts.Model != "llama-3.3-70b-versatile" {
		t.Errorf("Model = %q", p.opts.Model)
	}
	if p.opts.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1", p.opts.Temperature)
	}
}

func TestCleanFailsOpen(t *testing.T) {
	p := &fakeProvider{err: errors.New("backend down")}
	c := NewCleaner(p, "llama-3.3-70b-versatile", nil)

	raw := "julgue o item seguinte sobre o mercosul"
	if got := c.Clean(context.Background(), raw); got != raw {
		t.Errorf("Clean() = %q, want raw text on failure", got)
	}
}

func TestCleanIgnoresEmptyReply(t *testing.T) {
	p := &fakeProvider{reply: "   "}
	c := NewCleaner(p, "llama-3.3-70b-versatile", nil)

	raw := "julgue o item seguinte"
	if got := c.Clean(context.Background(), raw); got != raw {
		t.Errorf("Clean() = %q, want raw text on empty reply", got)
	}
}

func TestInstructionEmbedsTranscript(t *testing.T) {
	got := buildInstruction("o brasil participa do g20")
	if !strings.Contains(got, "o brasil participa do g20") {
		t.Error("instruction missing raw transcript")
	}
}
