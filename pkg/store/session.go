package store

import "time"

// Phase selects the answer mode for a chat.
type Phase string

// Priority selects the order in which model backends are attempted.
type Priority string

const (
	// PhaseJudgement asks for a single-token verdict (exam item judging).
	PhaseJudgement Phase = "1"
	// PhaseDiscursive asks for a long-form dictation-style answer.
	PhaseDiscursive Phase = "2"

	// PriorityPrimary tries the primary (Gemini) backend first.
	PriorityPrimary Priority = "primary"
	// PrioritySecondary tries the secondary (Groq) backend first.
	PrioritySecondary Priority = "secondary"
)

// Session is the per-chat state kept in memory between voice messages.
// It replaces what used to be process-wide globals: phase, backend
// priority and the single supporting-text slot are all keyed by chat.
type Session struct {
	ChatID   string   `json:"chat_id"`
	Phase    Phase    `json:"phase"`
	Priority Priority `json:"priority"`

	// SupportingText is the user-dictated passage prepended to later
	// queries as extra context. Single slot, overwritten on each save.
	SupportingText string `json:"supporting_text"`

	LastQuery string    `json:"last_query"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidPhase reports whether p is one of the two known phases.
func ValidPhase(p Phase) bool {
	return p == PhaseJudgement || p == PhaseDiscursive
}

// ValidPriority reports whether p is one of the two known priorities.
func ValidPriority(p Priority) bool {
	return p == PriorityPrimary || p == PrioritySecondary
}
