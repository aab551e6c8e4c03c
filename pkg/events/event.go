package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CYCLE_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used across the pipeline.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the voice pipeline.
const (
	TypeCycleCompleted = "CYCLE_COMPLETED" // one voice message fully answered
	TypeCycleFailed    = "CYCLE_FAILED"
	TypeContextSaved   = "CONTEXT_SAVED" // supporting-text slot written
)

// NewCycleCompleted builds the event published after a request cycle.
func NewCycleCompleted(chatID, source string, elapsed time.Duration) Event {
	return BaseEvent{
		Type: TypeCycleCompleted,
		Data: map[string]interface{}{
			"chat_id":    chatID,
			"source":     source,
			"elapsed_ms": elapsed.Milliseconds(),
		},
		OccurredAt: time.Now(),
	}
}

// NewCycleFailed builds the event published when a cycle errors out.
func NewCycleFailed(chatID, reason string) Event {
	return BaseEvent{
		Type: TypeCycleFailed,
		Data: map[string]interface{}{
			"chat_id": chatID,
			"reason":  reason,
		},
		OccurredAt: time.Now(),
	}
}
