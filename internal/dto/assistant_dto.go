package dto

// AskRequest is the direct JSON entry into the pipeline, bypassing the
// voice front-end. Phase and Priority override the chat session when
// present.
type AskRequest struct {
	ChatID   string `json:"chat_id" validate:"required"`
	Query    string `json:"query" validate:"required,min=1"`
	Phase    string `json:"phase" validate:"omitempty,oneof=1 2"`
	Priority string `json:"priority" validate:"omitempty,oneof=primary secondary"`
}

// AskResponse mirrors what the Telegram front-end replies in text form.
type AskResponse struct {
	Response string `json:"response"`
	Source   string `json:"source"`
}

// StatusResponse is the dashboard report.
type StatusResponse struct {
	Environment      string        `json:"environment"`
	UptimeSeconds    int64         `json:"uptime_seconds"`
	PrimaryBackend   BackendStatus `json:"primary_backend"`
	SecondaryBackend BackendStatus `json:"secondary_backend"`
	DefaultPhase     string        `json:"default_phase"`
	DefaultPriority  string        `json:"default_priority"`
}

type BackendStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// VoiceTaskMessage is the payload published to the voice work queue for
// every incoming Telegram voice note.
type VoiceTaskMessage struct {
	ChatID    int64  `json:"chat_id"`
	MessageID int    `json:"message_id"`
	FileID    string `json:"file_id"`
	Sender    string `json:"sender"`
}
