package memory

import (
	"testing"
	"time"

	"resolveia-be/pkg/store"
)

func TestGetOrCreateAppliesDefaults(t *testing.T) {
	r := NewSessionRepository(time.Hour, store.PhaseJudgement, store.PrioritySecondary)

	sess := r.GetOrCreate("chat-1")
	if sess.Phase != store.PhaseJudgement {
		t.Errorf("Phase = %s", sess.Phase)
	}
	if sess.Priority != store.PrioritySecondary {
		t.Errorf("Priority = %s", sess.Priority)
	}
	if sess.SupportingText != "" {
		t.Errorf("SupportingText = %q, want empty", sess.SupportingText)
	}
}

func TestSessionsAreIsolatedPerChat(t *testing.T) {
	r := NewSessionRepository(time.Hour, store.PhaseJudgement, store.PrioritySecondary)

	a := r.GetOrCreate("chat-a")
	a.Phase = store.PhaseDiscursive
	a.SupportingText = "texto do chat a"
	r.Save(a)

	b := r.GetOrCreate("chat-b")
	if b.Phase != store.PhaseJudgement {
		t.Errorf("chat-b Phase = %s, want default", b.Phase)
	}
	if b.SupportingText != "" {
		t.Error("supporting text leaked across chats")
	}

	again := r.GetOrCreate("chat-a")
	if again.SupportingText != "texto do chat a" {
		t.Errorf("chat-a SupportingText = %q", again.SupportingText)
	}
}

func TestExpiredSessionFallsBackToDefaults(t *testing.T) {
	r := NewSessionRepository(20*time.Millisecond, store.PhaseJudgement, store.PrioritySecondary)

	sess := r.GetOrCreate("chat-1")
	sess.SupportingText = "expira logo"
	r.Save(sess)

	time.Sleep(50 * time.Millisecond)

	fresh := r.GetOrCreate("chat-1")
	if fresh.SupportingText != "" {
		t.Errorf("SupportingText = %q, want expired", fresh.SupportingText)
	}
}
